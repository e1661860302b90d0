package agent

import "time"

// Outcome says what a Tick did.
type Outcome int

const (
	OutcomeInactive  Outcome = iota // not alive, strategy not consulted
	OutcomeNoView                   // no complete world view yet
	OutcomeInvalid                  // strategy returned a non-move
	OutcomeDropped                  // drop-wagon request sent
	OutcomeUnchanged                // same heading, nothing sent
	OutcomeTurned                   // direction change sent
	OutcomeAborted                  // precondition failure, see the returned error
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInactive:
		return "INACTIVE"
	case OutcomeNoView:
		return "NO_VIEW"
	case OutcomeInvalid:
		return "INVALID"
	case OutcomeDropped:
		return "DROPPED"
	case OutcomeUnchanged:
		return "UNCHANGED"
	case OutcomeTurned:
		return "TURNED"
	case OutcomeAborted:
		return "ABORTED"
	}
	return "UNKNOWN"
}

// Sent reports whether the outcome put a command on the wire.
func (o Outcome) Sent() bool {
	return o == OutcomeDropped || o == OutcomeTurned
}

// Decision is the journal record of one tick that reached the strategy.
type Decision struct {
	Time      time.Time `json:"time"`
	Tick      uint64    `json:"tick"`
	Nickname  string    `json:"nickname"`
	Move      string    `json:"move"`
	Current   string    `json:"current,omitempty"`
	Outcome   string    `json:"outcome"`
	SendError string    `json:"send_error,omitempty"`
}

type Stats struct {
	Ticks      uint64 `json:"ticks"`
	Decisions  uint64 `json:"decisions"`
	Turns      uint64 `json:"turns"`
	Drops      uint64 `json:"drops"`
	Unchanged  uint64 `json:"unchanged"`
	Invalid    uint64 `json:"invalid"`
	Aborted    uint64 `json:"aborted"`
	Sent       uint64 `json:"sent"`
	SendErrors uint64 `json:"send_errors"`
}

// Status is a point-in-time copy of the agent's lifecycle and counters.
type Status struct {
	Nickname        string        `json:"nickname"`
	State           string        `json:"state"`
	DeathTime       time.Time     `json:"death_time"`
	RespawnCooldown time.Duration `json:"respawn_cooldown_ns"`
	ViewTick        uint64        `json:"view_tick"`
	Stats           Stats         `json:"stats"`
}

func (a *Agent) Status() Status {
	v := a.view.Load()
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		Nickname:        a.nickname,
		State:           a.state.String(),
		DeathTime:       a.deathTime,
		RespawnCooldown: a.respawnCooldown,
		ViewTick:        v.Tick,
		Stats:           a.stats,
	}
}

func (a *Agent) count(o Outcome, sendFailed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Decisions++
	switch o {
	case OutcomeTurned:
		a.stats.Turns++
	case OutcomeDropped:
		a.stats.Drops++
	case OutcomeUnchanged:
		a.stats.Unchanged++
	case OutcomeInvalid:
		a.stats.Invalid++
	case OutcomeAborted:
		a.stats.Aborted++
	}
	switch {
	case sendFailed:
		a.stats.SendErrors++
	case o.Sent():
		a.stats.Sent++
	}
}
