package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Nickname        string `json:"nickname"`
	AgentKind       string `json:"agent_kind,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Nickname        string `json:"nickname"`
	SessionID       string `json:"session_id,omitempty"`
	TickRateHz      int    `json:"tick_rate_hz,omitempty"`
}

// STATE (server -> client): full world snapshot, replaces the previous one.
type StateMsg struct {
	Type            string               `json:"type"`
	ProtocolVersion string               `json:"protocol_version"`
	Tick            uint64               `json:"tick"`
	CellSize        int                  `json:"cell_size"`
	GameWidth       int                  `json:"game_width"`
	GameHeight      int                  `json:"game_height"`
	Trains          map[string]TrainWire `json:"trains"`
	Passengers      []PassengerWire      `json:"passengers"`
	DeliveryZone    *DeliveryZoneWire    `json:"delivery_zone"`
}

type TrainWire struct {
	Position  [2]int   `json:"position"`
	Direction [2]int   `json:"direction"`
	Wagons    [][2]int `json:"wagons,omitempty"`
	Score     int      `json:"score"`
	Alive     bool     `json:"alive"`
}

type PassengerWire struct {
	Position [2]int `json:"position"`
	Value    int    `json:"value"`
}

type DeliveryZoneWire struct {
	Position [2]int `json:"position"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// DEATH (server -> client)
type DeathMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RemainingMs     int64  `json:"remaining_ms,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// SPAWNED (server -> client)
type SpawnedMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}

// DIRECTION (client -> server)
type DirectionMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Direction       [2]int `json:"direction"`
}

// DROP_WAGON and RESPAWN (client -> server) carry no payload.
type CommandMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

func NewDirection(d [2]int) DirectionMsg {
	return DirectionMsg{Type: TypeDirection, ProtocolVersion: Version, Direction: d}
}

func NewDropWagon() CommandMsg {
	return CommandMsg{Type: TypeDropWagon, ProtocolVersion: Version}
}

func NewRespawn() CommandMsg {
	return CommandMsg{Type: TypeRespawn, ProtocolVersion: Version}
}
