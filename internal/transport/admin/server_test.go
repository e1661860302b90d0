package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

type fixedStatus agent.Status

func (f fixedStatus) Status() agent.Status { return agent.Status(f) }

func TestStatusEndpoint(t *testing.T) {
	src := fixedStatus{Nickname: "bot", State: "ALIVE", Stats: agent.Stats{Turns: 4}}
	h := NewServer(src, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	var got agent.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Nickname != "bot" || got.State != "ALIVE" || got.Stats.Turns != 4 {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestRemoteRejectedByDefault(t *testing.T) {
	s := NewServer(fixedStatus{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "203.0.113.9:4000"

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}

	s.AllowRemote = true
	rec = httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}
