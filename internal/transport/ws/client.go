package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lilia29-lab/I-like-trains/internal/move"
	"github.com/lilia29-lab/I-like-trains/internal/protocol"
)

var (
	ErrClosed    = errors.New("ws: connection closed")
	ErrQueueFull = errors.New("ws: send queue full")
)

type Config struct {
	URL       string
	Nickname  string
	AgentKind string

	// SendQueue bounds outbound commands waiting for the writer.
	SendQueue int
	// Validator, when set, drops inbound messages that fail their schema.
	Validator *protocol.Validator
	Logger    *log.Logger
}

// Client is one game session over a websocket. Outbound commands are queued
// and written by a single goroutine; inbound messages are decoded by another
// and delivered on Events.
type Client struct {
	cfg  Config
	conn *websocket.Conn
	log  *log.Logger

	out    chan []byte
	events chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
	closed    atomic.Bool
}

// Dial connects, sends HELLO and starts the reader and writer goroutines.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Nickname) == "" {
		return nil, fmt.Errorf("ws: empty nickname")
	}
	if cfg.SendQueue <= 0 {
		cfg.SendQueue = 8
	}
	if cfg.SendQueue > 64 {
		cfg.SendQueue = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	d := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, resp, err := d.DialContext(ctx, cfg.URL, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		Nickname:        cfg.Nickname,
		AgentKind:       cfg.AgentKind,
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send HELLO: %w", err)
	}

	cctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg:    cfg,
		conn:   conn,
		log:    cfg.Logger,
		out:    make(chan []byte, cfg.SendQueue),
		events: make(chan Event, 16),
		ctx:    cctx,
		cancel: cancel,
	}
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.writeLoop()
	}()
	go func() {
		defer c.wg.Done()
		c.readLoop()
	}()
	return c, nil
}

// Events is closed once the connection is gone.
func (c *Client) Events() <-chan Event { return c.events }

func (c *Client) SendDirectionChange(v move.Vector) error {
	return c.send(protocol.NewDirection([2]int(v)))
}

func (c *Client) SendDropWagonRequest() error {
	return c.send(protocol.NewDropWagon())
}

func (c *Client) SendRespawnRequest() error {
	return c.send(protocol.NewRespawn())
}

func (c *Client) send(v any) error {
	if c.closed.Load() || c.ctx.Err() != nil {
		return ErrClosed
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case c.out <- b:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.cancel()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		err = c.conn.Close()
		c.wg.Wait()
	})
	return err
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case b := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				c.log.Printf("write: %v", err)
				c.cancel()
				_ = c.conn.Close()
				return
			}
		}
	}
}

func (c *Client) readLoop() {
	defer close(c.events)
	defer c.cancel()

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !c.closed.Load() {
				c.emit(Event{Kind: EventDisconnected, Err: err})
			}
			return
		}
		ev, ok := c.decode(msg)
		if !ok {
			continue
		}
		if !c.emit(ev) {
			return
		}
	}
}

func (c *Client) decode(msg []byte) (Event, bool) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return Event{}, false
	}
	if !protocol.IsSupportedVersion(base.ProtocolVersion) {
		c.log.Printf("drop %s: protocol_version=%q", base.Type, base.ProtocolVersion)
		return Event{}, false
	}
	if c.cfg.Validator != nil {
		if err := c.cfg.Validator.Validate(base.Type, msg); err != nil {
			c.log.Printf("drop %s: %v", base.Type, err)
			return Event{}, false
		}
	}

	var ev Event
	switch base.Type {
	case protocol.TypeWelcome:
		ev.Kind = EventWelcome
		err = json.Unmarshal(msg, &ev.Welcome)
	case protocol.TypeState:
		ev.Kind = EventState
		err = json.Unmarshal(msg, &ev.State)
	case protocol.TypeDeath:
		ev.Kind = EventDeath
		err = json.Unmarshal(msg, &ev.Death)
	case protocol.TypeSpawned:
		ev.Kind = EventSpawned
	case protocol.TypeError:
		ev.Kind = EventError
		err = json.Unmarshal(msg, &ev.Error)
		if err == nil && !protocol.IsKnownCode(ev.Error.Code) {
			c.log.Printf("unknown error code %q: %s", ev.Error.Code, ev.Error.Message)
		}
	default:
		return Event{}, false
	}
	if err != nil {
		c.log.Printf("decode %s: %v", base.Type, err)
		return Event{}, false
	}
	return ev, true
}

func (c *Client) emit(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.ctx.Done():
		return false
	}
}
