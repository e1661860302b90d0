package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
	"github.com/lilia29-lab/I-like-trains/internal/agents"
	"github.com/lilia29-lab/I-like-trains/internal/persistence/indexdb"
	persistlog "github.com/lilia29-lab/I-like-trains/internal/persistence/log"
	"github.com/lilia29-lab/I-like-trains/internal/protocol"
	"github.com/lilia29-lab/I-like-trains/internal/respawn"
	"github.com/lilia29-lab/I-like-trains/internal/transport/admin"
	"github.com/lilia29-lab/I-like-trains/internal/transport/ws"
	"github.com/lilia29-lab/I-like-trains/internal/tuning"
)

func main() {
	var (
		configPath = flag.String("config", "./configs/tuning.yaml", "client config (defaults are used when missing)")
		url        = flag.String("url", "", "game server ws url (overrides config)")
		name       = flag.String("name", "", "train nickname (overrides config)")
		kind       = flag.String("agent", "", "agent kind: "+strings.Join(agents.Kinds(), "|")+" (overrides config)")
		seed       = flag.Int64("seed", 0, "strategy seed (overrides config when non-zero)")
		dataDir    = flag.String("data", "", "runtime data directory (overrides config)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite session index")
		adminAddr  = flag.String("admin", "", "admin http listen address (overrides config; empty keeps config)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[client] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", *configPath)
		tune = tuning.Defaults()
	}
	if s := strings.TrimSpace(*url); s != "" {
		tune.ServerURL = s
	}
	if s := strings.TrimSpace(*name); s != "" {
		tune.Nickname = s
	}
	if s := strings.TrimSpace(*kind); s != "" {
		tune.Agent = s
	}
	if *seed != 0 {
		tune.Seed = *seed
	}
	if s := strings.TrimSpace(*dataDir); s != "" {
		tune.DataDir = s
	}
	if *disableDB {
		tune.DisableDB = true
	}
	if s := strings.TrimSpace(*adminAddr); s != "" {
		tune.AdminAddr = s
	}
	if err := tune.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	if err := run(tune, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(tune tuning.Tuning, logger *log.Logger) error {
	loop, err := tune.Loop()
	if err != nil {
		return err
	}
	strategy, err := agents.New(tune.Agent, agents.Options{Seed: tune.Seed, Loop: loop})
	if err != nil {
		return err
	}

	var validator *protocol.Validator
	if tune.ValidateSchemas {
		if validator, err = protocol.NewValidator(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := ws.Dial(dialCtx, ws.Config{
		URL:       tune.ServerURL,
		Nickname:  tune.Nickname,
		AgentKind: tune.Agent,
		SendQueue: tune.SendQueue,
		Validator: validator,
		Logger:    logger,
	})
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()

	sessionDir := filepath.Join(tune.DataDir, "sessions", tune.Nickname)
	decisions := persistlog.NewDecisionLogger(sessionDir, logger)
	defer decisions.Close()
	journals := []agent.Journal{decisions}

	var rec lifecycleRecorder
	if !tune.DisableDB {
		idx, err := indexdb.OpenSQLite(filepath.Join(tune.DataDir, "index", "client.sqlite"))
		if err != nil {
			return err
		}
		defer idx.Close()
		id := idx.StartSession(tune.Nickname, tune.Agent, tune.ServerURL)
		defer idx.EndSession()
		logger.Printf("session %s indexed", id)
		journals = append(journals, idx)
		rec = idx
	}

	a, err := agent.New(agent.Config{
		Nickname: tune.Nickname,
		Network:  client,
		Strategy: strategy,
		Logger:   logger,
		Journal:  agent.MultiJournal(journals...),
	})
	if err != nil {
		return err
	}

	if tune.AdminAddr != "" {
		srv := &http.Server{
			Addr:              tune.AdminAddr,
			Handler:           admin.NewServer(a, logger).Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("admin http: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Printf("admin listening on %s", tune.AdminAddr)
	}

	d := &driver{
		agent: a,
		timer: respawn.NewTimer(a, tune.DefaultRespawnCooldown(), tune.RespawnRetry()),
		sess:  client,
		rec:   rec,
		log:   logger,
		now:   time.Now,
	}

	ticker := time.NewTicker(tune.TickInterval())
	defer ticker.Stop()

	logger.Printf("playing as %s (agent=%s, %d Hz) on %s", tune.Nickname, tune.Agent, tune.TickRateHz, tune.ServerURL)
	err = d.run(ctx, ticker.C)
	st := a.Status()
	logger.Printf("stopped: ticks=%d turns=%d drops=%d sent=%d send_errors=%d", st.Stats.Ticks, st.Stats.Turns, st.Stats.Drops, st.Stats.Sent, st.Stats.SendErrors)
	return err
}
