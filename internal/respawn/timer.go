package respawn

import (
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

// Lifecycle is the part of an agent the timer drives.
type Lifecycle interface {
	State() agent.State
	DeathTime() time.Time
	RespawnCooldown() time.Duration
	Died(at time.Time, cooldown time.Duration)
	AwaitRespawn() bool
	Respawned()
}

// Timer owns the Dead -> WaitingForRespawn -> Alive triggers. The agent
// only reads the resulting state.
type Timer struct {
	a               Lifecycle
	defaultCooldown time.Duration
	retryEvery      time.Duration

	lastRequest time.Time
}

func NewTimer(a Lifecycle, defaultCooldown, retryEvery time.Duration) *Timer {
	if retryEvery <= 0 {
		retryEvery = 2 * time.Second
	}
	return &Timer{a: a, defaultCooldown: defaultCooldown, retryEvery: retryEvery}
}

// OnDeath handles a death reported by the server. remaining is the cooldown
// the server announced; zero falls back to the configured default.
func (t *Timer) OnDeath(now time.Time, remaining time.Duration) {
	if remaining <= 0 {
		remaining = t.defaultCooldown
	}
	t.a.Died(now, remaining)
	t.lastRequest = time.Time{}
}

// Poll reports whether a respawn request should be sent now: once when the
// cooldown has elapsed, then again every retry interval while the server
// has not confirmed the spawn.
func (t *Timer) Poll(now time.Time) bool {
	switch t.a.State() {
	case agent.Dead:
		if t.Remaining(now) > 0 {
			return false
		}
		if !t.a.AwaitRespawn() {
			return false
		}
	case agent.WaitingForRespawn:
		if !t.lastRequest.IsZero() && now.Sub(t.lastRequest) < t.retryEvery {
			return false
		}
	default:
		return false
	}
	t.lastRequest = now
	return true
}

// Remaining is the cooldown left for a dead agent, zero otherwise.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if t.a.State() != agent.Dead {
		return 0
	}
	left := t.a.RespawnCooldown() - now.Sub(t.a.DeathTime())
	if left < 0 {
		return 0
	}
	return left
}

func (t *Timer) OnSpawned() {
	t.a.Respawned()
	t.lastRequest = time.Time{}
}
