package agents

import (
	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

// Loop replays a fixed list of moves, one per tick, forever.
type Loop struct {
	moves []move.Move
	i     int
}

// NewLoop defaults to a clockwise square.
func NewLoop(moves ...move.Move) *Loop {
	if len(moves) == 0 {
		moves = []move.Move{move.Right, move.Right, move.Down, move.Down, move.Left, move.Left, move.Up, move.Up}
	}
	return &Loop{moves: moves}
}

func (l *Loop) DecideMove(*world.View, string) move.Move {
	m := l.moves[l.i%len(l.moves)]
	l.i++
	return m
}
