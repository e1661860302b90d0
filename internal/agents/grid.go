package agents

import (
	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

func step(c world.Vec2, m move.Move) world.Vec2 {
	v, ok := m.Vector()
	if !ok {
		return c
	}
	return world.Vec2{X: c.X + v[0], Y: c.Y + v[1]}
}

func manhattan(a, b world.Vec2) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// occupied collects every cell taken by a train head or wagon.
func occupied(v *world.View) map[world.Vec2]bool {
	occ := make(map[world.Vec2]bool)
	for _, t := range v.Trains {
		if !t.Alive {
			continue
		}
		occ[v.Cell(t.Position)] = true
		for _, w := range t.Wagons {
			occ[v.Cell(w)] = true
		}
	}
	return occ
}

// safeMoves lists headings that neither reverse the train nor step into a
// wall or an occupied cell, in stable order.
func safeMoves(v *world.View, own world.Train) []move.Move {
	head := v.Cell(own.Position)
	occ := occupied(v)
	var out []move.Move
	for _, m := range move.Directions() {
		if own.Direction.IsDirection() && m == own.Direction.Opposite() {
			continue
		}
		next := step(head, m)
		if !v.InBounds(next) || occ[next] {
			continue
		}
		out = append(out, m)
	}
	return out
}
