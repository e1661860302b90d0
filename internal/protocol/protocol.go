package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	// client -> server
	TypeHello     = "HELLO"
	TypeDirection = "DIRECTION"
	TypeDropWagon = "DROP_WAGON"
	TypeRespawn   = "RESPAWN"

	// server -> client
	TypeWelcome = "WELCOME"
	TypeState   = "STATE"
	TypeDeath   = "DEATH"
	TypeSpawned = "SPAWNED"
	TypeError   = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

func IsSupportedVersion(v string) bool {
	return v == Version
}
