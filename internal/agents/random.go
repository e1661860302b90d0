package agents

import (
	"math/rand"

	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

// Random wanders: it keeps its heading most of the time, turns to a random
// safe heading otherwise and now and then drops a wagon.
type Random struct {
	rng *rand.Rand

	TurnChance float64
	DropChance float64
}

func NewRandom(seed int64) *Random {
	return &Random{
		rng:        rand.New(rand.NewSource(seed)),
		TurnChance: 0.2,
		DropChance: 0.02,
	}
}

func (r *Random) DecideMove(v *world.View, self string) move.Move {
	own, ok := v.Train(self)
	if !ok {
		return 0
	}
	if len(own.Wagons) > 0 && r.rng.Float64() < r.DropChance {
		return move.Drop
	}
	safe := safeMoves(v, own)
	if len(safe) == 0 {
		return own.Direction
	}
	for _, m := range safe {
		if m == own.Direction && r.rng.Float64() >= r.TurnChance {
			return m
		}
	}
	return safe[r.rng.Intn(len(safe))]
}
