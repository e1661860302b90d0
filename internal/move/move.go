package move

import (
	"fmt"
	"strings"
)

// Move is one per-tick request of an agent. Only the constants below are
// valid; every other value (including the zero value) means "no move".
type Move int

const (
	Up Move = iota + 1
	Down
	Left
	Right
	Drop
)

// Vector is the wire value of a direction: a grid step [dx, dy] with y
// growing downwards.
type Vector [2]int

var vectors = map[Move]Vector{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

var names = map[Move]string{
	Up:    "UP",
	Down:  "DOWN",
	Left:  "LEFT",
	Right: "RIGHT",
	Drop:  "DROP",
}

func (m Move) Valid() bool {
	return m >= Up && m <= Drop
}

// IsDirection reports whether m changes the heading (any valid move but Drop).
func (m Move) IsDirection() bool {
	return m >= Up && m <= Right
}

// Vector returns the wire value of a direction. ok is false for Drop and
// invalid moves.
func (m Move) Vector() (v Vector, ok bool) {
	v, ok = vectors[m]
	return v, ok
}

// Opposite returns the reverse heading, or m itself when m is not a direction.
func (m Move) Opposite() Move {
	switch m {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return m
}

func (m Move) String() string {
	if n, ok := names[m]; ok {
		return n
	}
	return fmt.Sprintf("INVALID(%d)", int(m))
}

// Directions lists the four headings in a stable order.
func Directions() []Move {
	return []Move{Up, Down, Left, Right}
}

// FromVector maps a wire vector back to its direction. Unknown vectors
// yield an invalid Move.
func FromVector(v Vector) Move {
	for m, mv := range vectors {
		if mv == v {
			return m
		}
	}
	return 0
}

// Parse accepts the names printed by String, case-insensitively.
func Parse(s string) (Move, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for m, n := range names {
		if n == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown move %q", s)
}
