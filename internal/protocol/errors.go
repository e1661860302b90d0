package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Session/lifecycle.
	ErrNicknameTaken = "E_NICKNAME_TAKEN"
	ErrGameFull      = "E_GAME_FULL"
	ErrNotAlive      = "E_NOT_ALIVE"
	ErrCooldown      = "E_COOLDOWN"

	// Command layer.
	ErrBadRequest = "E_BAD_REQUEST"
	ErrNoWagon    = "E_NO_WAGON"
	ErrRateLimit  = "E_RATE_LIMIT"
	ErrInternal   = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrNicknameTaken:   {},
	ErrGameFull:        {},
	ErrNotAlive:        {},
	ErrCooldown:        {},
	ErrBadRequest:      {},
	ErrNoWagon:         {},
	ErrRateLimit:       {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// IsFatalCode reports codes after which the session cannot continue.
func IsFatalCode(code string) bool {
	return code == ErrNicknameTaken || code == ErrGameFull
}
