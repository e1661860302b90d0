package tuning

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lilia29-lab/I-like-trains/internal/move"
)

// Tuning is the client configuration. Flags in cmd/client override it.
type Tuning struct {
	ServerURL string `yaml:"server_url"`
	Nickname  string `yaml:"nickname"`
	Agent     string `yaml:"agent"`
	Seed      int64  `yaml:"seed"`

	// LoopMoves is the cycle for agent=loop, e.g. [RIGHT, DOWN, LEFT, UP].
	LoopMoves []string `yaml:"loop_moves"`

	TickRateHz               int `yaml:"tick_rate_hz"`
	DefaultRespawnCooldownMs int `yaml:"default_respawn_cooldown_ms"`
	RespawnRetryMs           int `yaml:"respawn_retry_ms"`
	SendQueue                int `yaml:"send_queue"`

	DataDir         string `yaml:"data_dir"`
	DisableDB       bool   `yaml:"disable_db"`
	ValidateSchemas bool   `yaml:"validate_schemas"`
	AdminAddr       string `yaml:"admin_addr"`
}

func Defaults() Tuning {
	return Tuning{
		ServerURL:                "ws://localhost:5555/v1/ws",
		Nickname:                 "bot",
		Agent:                    "greedy",
		Seed:                     1,
		TickRateHz:               10,
		DefaultRespawnCooldownMs: 5000,
		RespawnRetryMs:           2000,
		SendQueue:                8,
		DataDir:                  "./data",
		ValidateSchemas:          true,
	}
}

// Load reads path over the defaults: keys missing from the file keep
// their default value.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if strings.TrimSpace(t.ServerURL) == "" {
		return fmt.Errorf("server_url is required")
	}
	if strings.TrimSpace(t.Nickname) == "" {
		return fmt.Errorf("nickname is required")
	}
	if t.TickRateHz <= 0 || t.TickRateHz > 120 {
		return fmt.Errorf("tick_rate_hz must be in 1..120, got %d", t.TickRateHz)
	}
	if t.DefaultRespawnCooldownMs < 0 {
		return fmt.Errorf("default_respawn_cooldown_ms must not be negative")
	}
	if t.SendQueue < 0 {
		return fmt.Errorf("send_queue must not be negative")
	}
	if _, err := t.Loop(); err != nil {
		return err
	}
	return nil
}

// Loop parses LoopMoves. DROP is allowed; an unknown name is an error.
func (t Tuning) Loop() ([]move.Move, error) {
	out := make([]move.Move, 0, len(t.LoopMoves))
	for i, s := range t.LoopMoves {
		m, err := move.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("loop_moves[%d]: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (t Tuning) TickInterval() time.Duration {
	return time.Second / time.Duration(t.TickRateHz)
}

func (t Tuning) DefaultRespawnCooldown() time.Duration {
	return time.Duration(t.DefaultRespawnCooldownMs) * time.Millisecond
}

func (t Tuning) RespawnRetry() time.Duration {
	return time.Duration(t.RespawnRetryMs) * time.Millisecond
}
