package agent

import "time"

// State is the lifecycle of the agent's train. Transitions are driven from
// outside (respawn timer, server events); the agent only reads it on Tick.
type State int

const (
	Alive State = iota
	Dead
	WaitingForRespawn
)

func (s State) String() string {
	switch s {
	case Alive:
		return "ALIVE"
	case Dead:
		return "DEAD"
	case WaitingForRespawn:
		return "WAITING_FOR_RESPAWN"
	}
	return "UNKNOWN"
}

func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Agent) DeathTime() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deathTime
}

func (a *Agent) RespawnCooldown() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.respawnCooldown
}

// Died records a death at the given time. cooldown is how long the server
// makes the train wait before a respawn may be requested.
func (a *Agent) Died(at time.Time, cooldown time.Duration) {
	if cooldown < 0 {
		cooldown = 0
	}
	a.mu.Lock()
	a.state = Dead
	a.deathTime = at
	a.respawnCooldown = cooldown
	a.mu.Unlock()
	a.logger.Printf("agent %s died (cooldown=%s)", a.nickname, cooldown)
}

// AwaitRespawn moves a dead agent to WaitingForRespawn. It reports false
// (and changes nothing) in any other state.
func (a *Agent) AwaitRespawn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Dead {
		return false
	}
	a.state = WaitingForRespawn
	return true
}

// Respawned marks the train alive again. The server is authoritative, so
// this is accepted from both Dead and WaitingForRespawn.
func (a *Agent) Respawned() {
	a.mu.Lock()
	prev := a.state
	a.state = Alive
	a.mu.Unlock()
	if prev != Alive {
		a.logger.Printf("agent %s spawned", a.nickname)
	}
}
