package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	cases := []string{
		"",
		ErrProtoBadRequest,
		ErrNicknameTaken,
		ErrGameFull,
		ErrNotAlive,
		ErrCooldown,
		ErrBadRequest,
		ErrNoWagon,
		ErrRateLimit,
		ErrInternal,
	}
	for _, c := range cases {
		if !IsKnownCode(c) {
			t.Fatalf("expected known code: %q", c)
		}
	}
	if IsKnownCode("E_NOT_DEFINED") {
		t.Fatalf("expected unknown code rejected")
	}
}

func TestIsFatalCode(t *testing.T) {
	if !IsFatalCode(ErrNicknameTaken) || !IsFatalCode(ErrGameFull) {
		t.Fatalf("expected session-ending codes to be fatal")
	}
	if IsFatalCode(ErrRateLimit) {
		t.Fatalf("rate limit should not be fatal")
	}
}
