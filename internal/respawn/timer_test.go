package respawn

import (
	"testing"
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

type nopNetwork struct{}

func (nopNetwork) SendDirectionChange(move.Vector) error { return nil }
func (nopNetwork) SendDropWagonRequest() error           { return nil }

func newAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.New(agent.Config{
		Nickname: "bot",
		Network:  nopNetwork{},
		Strategy: agent.StrategyFunc(func(*world.View, string) move.Move { return move.Up }),
	})
	if err != nil {
		t.Fatalf("agent.New: %v", err)
	}
	return a
}

func TestTimerCooldown(t *testing.T) {
	a := newAgent(t)
	a.Respawned()
	tm := NewTimer(a, 3*time.Second, time.Second)

	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tm.OnDeath(t0, 5*time.Second)
	if a.State() != agent.Dead {
		t.Fatalf("state = %v, want DEAD", a.State())
	}
	if got := tm.Remaining(t0.Add(2 * time.Second)); got != 3*time.Second {
		t.Fatalf("Remaining = %v, want 3s", got)
	}
	if tm.Poll(t0.Add(4 * time.Second)) {
		t.Fatalf("must not request respawn before cooldown")
	}
	if !tm.Poll(t0.Add(5 * time.Second)) {
		t.Fatalf("expected respawn request once cooldown elapsed")
	}
	if a.State() != agent.WaitingForRespawn {
		t.Fatalf("state = %v, want WAITING_FOR_RESPAWN", a.State())
	}
	if tm.Poll(t0.Add(5*time.Second + 500*time.Millisecond)) {
		t.Fatalf("must not re-request within retry interval")
	}
	if !tm.Poll(t0.Add(6 * time.Second)) {
		t.Fatalf("expected retry after interval")
	}

	tm.OnSpawned()
	if a.State() != agent.Alive {
		t.Fatalf("state = %v, want ALIVE", a.State())
	}
	if tm.Poll(t0.Add(10 * time.Second)) {
		t.Fatalf("alive agents never request respawn")
	}
}

func TestTimerDefaultCooldown(t *testing.T) {
	a := newAgent(t)
	a.Respawned()
	tm := NewTimer(a, 2*time.Second, 0)

	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tm.OnDeath(t0, 0)
	if a.RespawnCooldown() != 2*time.Second {
		t.Fatalf("cooldown = %v, want default 2s", a.RespawnCooldown())
	}
	if tm.Poll(t0.Add(time.Second)) {
		t.Fatalf("too early")
	}
	if !tm.Poll(t0.Add(2 * time.Second)) {
		t.Fatalf("expected request at default cooldown")
	}
}

func TestTimerInitialSpawnRequest(t *testing.T) {
	a := newAgent(t)
	tm := NewTimer(a, time.Second, time.Second)
	now := time.Now()
	if !tm.Poll(now) {
		t.Fatalf("fresh agent should ask for a spawn")
	}
	if tm.Poll(now) {
		t.Fatalf("second poll in the same instant must not repeat")
	}
}
