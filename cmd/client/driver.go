package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
	"github.com/lilia29-lab/I-like-trains/internal/protocol"
	"github.com/lilia29-lab/I-like-trains/internal/respawn"
	"github.com/lilia29-lab/I-like-trains/internal/transport/ws"
	"github.com/lilia29-lab/I-like-trains/internal/world"
)

type session interface {
	agent.Network
	SendRespawnRequest() error
	Events() <-chan ws.Event
}

type lifecycleRecorder interface {
	RecordLifecycle(event string, at time.Time, cooldown time.Duration)
}

// driver is the only goroutine touching the agent: refreshes and ticks
// are serialized by its select loop.
type driver struct {
	agent *agent.Agent
	timer *respawn.Timer
	sess  session
	rec   lifecycleRecorder
	log   *log.Logger
	now   func() time.Time
}

func (d *driver) run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-d.sess.Events():
			if !ok {
				return fmt.Errorf("connection closed")
			}
			if err := d.handle(ev); err != nil {
				return err
			}
		case now := <-ticks:
			if err := d.tick(now); err != nil {
				return err
			}
		}
	}
}

func (d *driver) handle(ev ws.Event) error {
	switch ev.Kind {
	case ws.EventWelcome:
		d.log.Printf("WELCOME nickname=%s session=%s tick_rate=%d", ev.Welcome.Nickname, ev.Welcome.SessionID, ev.Welcome.TickRateHz)
	case ws.EventState:
		d.agent.Refresh(world.FromState(ev.State))
	case ws.EventDeath:
		now := d.now()
		cooldown := time.Duration(ev.Death.RemainingMs) * time.Millisecond
		d.timer.OnDeath(now, cooldown)
		d.record("DEATH", now, d.agent.RespawnCooldown())
	case ws.EventSpawned:
		d.timer.OnSpawned()
		// The last view predates the spawn and may not hold our train yet.
		d.agent.Refresh(nil)
		d.record("SPAWNED", d.now(), 0)
	case ws.EventError:
		d.log.Printf("server error %s: %s", ev.Error.Code, ev.Error.Message)
		if protocol.IsFatalCode(ev.Error.Code) {
			return fmt.Errorf("server refused session: %s", ev.Error.Code)
		}
	case ws.EventDisconnected:
		return fmt.Errorf("disconnected: %w", ev.Err)
	}
	return nil
}

func (d *driver) tick(now time.Time) error {
	if d.timer.Poll(now) {
		if err := d.sess.SendRespawnRequest(); err != nil {
			d.log.Printf("respawn request: %v", err)
		} else {
			d.record("RESPAWN_REQUEST", now, 0)
		}
	}
	if _, err := d.agent.Tick(); err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	return nil
}

func (d *driver) record(event string, at time.Time, cooldown time.Duration) {
	if d.rec != nil {
		d.rec.RecordLifecycle(event, at, cooldown)
	}
}
