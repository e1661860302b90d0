// Package agents holds the concrete decision strategies a client can run.
package agents

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
	"github.com/lilia29-lab/I-like-trains/internal/move"
)

// Options carries the per-kind knobs; each strategy reads only its own.
type Options struct {
	Seed int64
	// Loop is the move cycle for the loop agent; empty means a square.
	Loop []move.Move
}

type factory func(Options) agent.MoveStrategy

var registry = map[string]factory{
	"greedy": func(Options) agent.MoveStrategy { return NewGreedy() },
	"random": func(o Options) agent.MoveStrategy { return NewRandom(o.Seed) },
	"loop":   func(o Options) agent.MoveStrategy { return NewLoop(o.Loop...) },
}

// New returns the strategy registered under kind.
func New(kind string, opts Options) (agent.MoveStrategy, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, fmt.Errorf("unknown agent kind %q (have %s)", kind, strings.Join(Kinds(), ", "))
	}
	return f(opts), nil
}

func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
