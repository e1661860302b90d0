package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/lilia29-lab/I-like-trains/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	validate := func(typ, raw string) {
		t.Helper()
		if err := v.Validate(typ, []byte(raw)); err != nil {
			t.Fatalf("validate %s: %v", typ, err)
		}
	}

	validate(protocol.TypeHello, `{"type":"HELLO","protocol_version":"1.0","nickname":"bot1","agent_kind":"greedy"}`)
	validate(protocol.TypeWelcome, `{"type":"WELCOME","protocol_version":"1.0","nickname":"bot1","session_id":"s1","tick_rate_hz":10}`)
	validate(protocol.TypeState, `{
	  "type":"STATE",
	  "protocol_version":"1.0",
	  "tick":12,
	  "cell_size":20,
	  "game_width":30,
	  "game_height":20,
	  "trains":{"bot1":{"position":[40,60],"direction":[1,0],"wagons":[[20,60]],"score":3,"alive":true}},
	  "passengers":[{"position":[100,100],"value":2}],
	  "delivery_zone":{"position":[200,200],"width":40,"height":40}
	}`)
	validate(protocol.TypeDeath, `{"type":"DEATH","protocol_version":"1.0","remaining_ms":5000}`)

	for _, msg := range []any{protocol.NewDirection([2]int{0, -1}), protocol.NewDropWagon(), protocol.NewRespawn()} {
		b, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		base, err := protocol.DecodeBase(b)
		if err != nil {
			t.Fatalf("DecodeBase: %v", err)
		}
		validate(base.Type, string(b))
	}
}

func TestSchemas_RejectMalformed(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	bad := map[string]string{
		protocol.TypeState:     `{"type":"STATE","protocol_version":"1.0","tick":1,"cell_size":20,"game_width":30,"game_height":20,"trains":{}}`,
		protocol.TypeDirection: `{"type":"DIRECTION","protocol_version":"1.0","direction":[2,0]}`,
		protocol.TypeHello:     `{"type":"HELLO","protocol_version":"1.0","nickname":""}`,
	}
	for typ, raw := range bad {
		if err := v.Validate(typ, []byte(raw)); err == nil {
			t.Fatalf("expected %s sample to be rejected", typ)
		}
	}
	if err := v.Validate("UNKNOWN", []byte(`{}`)); err != nil {
		t.Fatalf("unknown types should pass, got %v", err)
	}
}
