package ws

import "github.com/lilia29-lab/I-like-trains/internal/protocol"

type EventKind int

const (
	EventWelcome EventKind = iota + 1
	EventState
	EventDeath
	EventSpawned
	EventError
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventWelcome:
		return "WELCOME"
	case EventState:
		return "STATE"
	case EventDeath:
		return "DEATH"
	case EventSpawned:
		return "SPAWNED"
	case EventError:
		return "ERROR"
	case EventDisconnected:
		return "DISCONNECTED"
	}
	return "UNKNOWN"
}

// Event is one decoded server message. Only the field matching Kind is set.
type Event struct {
	Kind EventKind

	Welcome protocol.WelcomeMsg
	State   protocol.StateMsg
	Death   protocol.DeathMsg
	Error   protocol.ErrorMsg

	// Err is the read error for EventDisconnected.
	Err error
}
