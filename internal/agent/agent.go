package agent

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

// ErrMissingOwnTrain means the world view has no train for the agent's own
// nickname while a heading comparison was needed. The view is stale or
// misrouted; callers should not continue.
var ErrMissingOwnTrain = errors.New("own train missing from world view")

// MoveStrategy is the decision policy of a concrete agent. It must not
// block. Returning a value outside the Move set is allowed and means "keep
// going".
type MoveStrategy interface {
	DecideMove(view *world.View, self string) move.Move
}

type StrategyFunc func(view *world.View, self string) move.Move

func (f StrategyFunc) DecideMove(view *world.View, self string) move.Move { return f(view, self) }

// Network sends commands to the game server. Both calls are fire-and-forget.
type Network interface {
	SendDirectionChange(v move.Vector) error
	SendDropWagonRequest() error
}

// Journal receives one record per tick that consulted the strategy.
type Journal interface {
	RecordDecision(d Decision)
}

type Config struct {
	Nickname string
	Network  Network
	Strategy MoveStrategy

	Logger  *log.Logger
	Journal Journal
	Now     func() time.Time
}

type Agent struct {
	nickname string
	network  Network
	strategy MoveStrategy
	logger   *log.Logger
	journal  Journal
	now      func() time.Time

	view atomic.Pointer[world.View]

	mu              sync.Mutex
	state           State
	deathTime       time.Time
	respawnCooldown time.Duration
	stats           Stats
}

// New builds an agent that has not spawned yet: it waits for the server
// to confirm a spawn before Tick does anything.
func New(cfg Config) (*Agent, error) {
	nick := strings.TrimSpace(cfg.Nickname)
	if nick == "" {
		return nil, fmt.Errorf("agent: empty nickname")
	}
	if cfg.Network == nil {
		return nil, fmt.Errorf("agent %s: nil network", nick)
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("agent %s: nil strategy", nick)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	a := &Agent{
		nickname: nick,
		network:  cfg.Network,
		strategy: cfg.Strategy,
		logger:   cfg.Logger,
		journal:  cfg.Journal,
		now:      cfg.Now,
		state:    WaitingForRespawn,
	}
	a.deathTime = a.now()
	a.view.Store(&world.View{})
	return a, nil
}

func (a *Agent) Nickname() string { return a.nickname }

// View returns the snapshot currently installed. It is never nil.
func (a *Agent) View() *world.View { return a.view.Load() }

// Refresh installs a new snapshot wholesale. A concurrent or later Tick sees
// either the previous view or this one, never a mix.
func (a *Agent) Refresh(v *world.View) {
	if v == nil {
		v = &world.View{}
	}
	a.view.Store(v)
}

// Tick runs one decision cycle and sends at most one command.
func (a *Agent) Tick() (Outcome, error) {
	a.mu.Lock()
	a.stats.Ticks++
	alive := a.state == Alive
	a.mu.Unlock()
	if !alive {
		return OutcomeInactive, nil
	}

	v := a.view.Load()
	if !v.Ready() {
		return OutcomeNoView, nil
	}

	m := a.strategy.DecideMove(v, a.nickname)
	d := Decision{
		Time:     a.now().UTC(),
		Tick:     v.Tick,
		Nickname: a.nickname,
		Move:     m.String(),
	}

	var (
		out     Outcome
		sendErr error
	)
	switch {
	case !m.Valid():
		// No command keeps the current heading.
		out = OutcomeInvalid
	case m == move.Drop:
		out = OutcomeDropped
		sendErr = a.network.SendDropWagonRequest()
	default:
		own, ok := v.Train(a.nickname)
		if !ok {
			d.Outcome = OutcomeAborted.String()
			a.count(OutcomeAborted, false)
			a.record(d)
			return OutcomeAborted, fmt.Errorf("%w: %q", ErrMissingOwnTrain, a.nickname)
		}
		d.Current = own.Direction.String()
		if own.Direction == m {
			out = OutcomeUnchanged
			break
		}
		vec, _ := m.Vector()
		out = OutcomeTurned
		sendErr = a.network.SendDirectionChange(vec)
	}

	d.Outcome = out.String()
	if sendErr != nil {
		d.SendError = sendErr.Error()
		a.logger.Printf("agent %s: send %s: %v", a.nickname, m, sendErr)
	}
	a.count(out, sendErr != nil)
	a.record(d)
	return out, nil
}

func (a *Agent) record(d Decision) {
	if a.journal != nil {
		a.journal.RecordDecision(d)
	}
}
