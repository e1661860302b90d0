package agents

import (
	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

// Greedy heads for the closest passenger and, once it carries DeliverAt
// wagons, for the closest delivery cell. It sheds wagons past MaxWagons.
type Greedy struct {
	DeliverAt int
	MaxWagons int
}

func NewGreedy() *Greedy {
	return &Greedy{DeliverAt: 3, MaxWagons: 10}
}

func (g *Greedy) DecideMove(v *world.View, self string) move.Move {
	own, ok := v.Train(self)
	if !ok {
		return 0
	}
	if g.MaxWagons > 0 && len(own.Wagons) > g.MaxWagons {
		return move.Drop
	}

	safe := safeMoves(v, own)
	if len(safe) == 0 {
		return own.Direction
	}
	head := v.Cell(own.Position)
	target, ok := g.target(v, own, head)
	if !ok {
		for _, m := range safe {
			if m == own.Direction {
				return m
			}
		}
		return safe[0]
	}

	best, bestDist := safe[0], -1
	for _, m := range safe {
		d := manhattan(step(head, m), target)
		if bestDist < 0 || d < bestDist || (d == bestDist && m == own.Direction) {
			best, bestDist = m, d
		}
	}
	return best
}

func (g *Greedy) target(v *world.View, own world.Train, head world.Vec2) (world.Vec2, bool) {
	var cells []world.Vec2
	if len(own.Wagons) >= g.DeliverAt {
		cells = v.DeliveryCells()
	}
	if len(cells) == 0 {
		for _, p := range v.Passengers {
			cells = append(cells, v.Cell(p.Position))
		}
	}
	if len(cells) == 0 {
		return world.Vec2{}, false
	}
	best := cells[0]
	for _, c := range cells[1:] {
		if manhattan(head, c) < manhattan(head, best) {
			best = c
		}
	}
	return best, true
}
