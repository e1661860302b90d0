package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

// SQLiteIndex is a queryable read model of client sessions: one row per
// session, per decision and per lifecycle event. Writes go through a single
// goroutine and are dropped when it falls behind; the JSONL decision log
// remains the source of truth.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed  atomic.Bool
	session atomic.Pointer[string]
}

type reqKind int

const (
	reqSessionStart reqKind = iota + 1
	reqSessionEnd
	reqDecision
	reqLifecycle
)

type req struct {
	kind reqKind

	session   sessionRow
	decision  agent.Decision
	lifecycle lifecycleRow
	sessionID string
	at        time.Time
}

type sessionRow struct {
	ID        string
	Nickname  string
	AgentKind string
	ServerURL string
	StartedAt time.Time
}

type lifecycleRow struct {
	Event    string
	At       time.Time
	Cooldown time.Duration
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 8192),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			nickname TEXT NOT NULL,
			agent_kind TEXT NOT NULL,
			server_url TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS decisions (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			view_tick INTEGER NOT NULL,
			move TEXT NOT NULL,
			current TEXT,
			outcome TEXT NOT NULL,
			send_error TEXT,
			at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_outcome ON decisions(session_id, outcome);`,
		`CREATE TABLE IF NOT EXISTS lifecycle (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			event TEXT NOT NULL,
			cooldown_ms INTEGER NOT NULL,
			at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// StartSession registers a new session and makes it the target of later
// records. It returns the session id.
func (s *SQLiteIndex) StartSession(nickname, agentKind, serverURL string) string {
	id := uuid.NewString()
	if s == nil || s.closed.Load() {
		return id
	}
	s.session.Store(&id)
	// Blocking send: rows below reference the session.
	s.ch <- req{kind: reqSessionStart, session: sessionRow{
		ID:        id,
		Nickname:  nickname,
		AgentKind: agentKind,
		ServerURL: serverURL,
		StartedAt: time.Now().UTC(),
	}}
	return id
}

func (s *SQLiteIndex) EndSession() {
	id := s.currentSession()
	if id == "" {
		return
	}
	s.enqueue(req{kind: reqSessionEnd, sessionID: id, at: time.Now().UTC()})
}

// RecordDecision satisfies agent.Journal.
func (s *SQLiteIndex) RecordDecision(d agent.Decision) {
	id := s.currentSession()
	if id == "" {
		return
	}
	s.enqueue(req{kind: reqDecision, sessionID: id, decision: d})
}

// RecordLifecycle stores a lifecycle event (DEATH, RESPAWN_REQUEST, SPAWNED).
func (s *SQLiteIndex) RecordLifecycle(event string, at time.Time, cooldown time.Duration) {
	id := s.currentSession()
	if id == "" {
		return
	}
	s.enqueue(req{kind: reqLifecycle, sessionID: id, lifecycle: lifecycleRow{Event: event, At: at.UTC(), Cooldown: cooldown}})
}

func (s *SQLiteIndex) currentSession() string {
	if s == nil || s.closed.Load() {
		return ""
	}
	p := s.session.Load()
	if p == nil {
		return ""
	}
	return *p
}

func (s *SQLiteIndex) enqueue(r req) {
	select {
	case s.ch <- r:
	default:
		// Drop if the indexer falls behind.
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertSession, _ := s.db.Prepare(`INSERT OR REPLACE INTO sessions(id,nickname,agent_kind,server_url,started_at) VALUES(?,?,?,?,?)`)
	endSession, _ := s.db.Prepare(`UPDATE sessions SET ended_at=? WHERE id=?`)
	insertDecision, _ := s.db.Prepare(`INSERT OR REPLACE INTO decisions(session_id,seq,view_tick,move,current,outcome,send_error,at) VALUES(?,?,?,?,?,?,?,?)`)
	insertLifecycle, _ := s.db.Prepare(`INSERT OR REPLACE INTO lifecycle(session_id,seq,event,cooldown_ms,at) VALUES(?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertSession, endSession, insertDecision, insertLifecycle} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = 2 * time.Second

		decisionSeq  = map[string]int{}
		lifecycleSeq = map[string]int{}
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	exec := func(st *sql.Stmt, args ...any) {
		if st == nil {
			return
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return
		}
		opCount++
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqSessionStart:
			exec(insertSession, r.session.ID, r.session.Nickname, r.session.AgentKind, r.session.ServerURL, r.session.StartedAt.Format(time.RFC3339Nano))
			// Sessions are rare; make them visible immediately.
			commit()
			continue
		case reqSessionEnd:
			exec(endSession, r.at.Format(time.RFC3339Nano), r.sessionID)
		case reqDecision:
			decisionSeq[r.sessionID]++
			d := r.decision
			exec(insertDecision, r.sessionID, decisionSeq[r.sessionID], int64(d.Tick), d.Move, nullable(d.Current), d.Outcome, nullable(d.SendError), d.Time.Format(time.RFC3339Nano))
		case reqLifecycle:
			lifecycleSeq[r.sessionID]++
			l := r.lifecycle
			exec(insertLifecycle, r.sessionID, lifecycleSeq[r.sessionID], l.Event, l.Cooldown.Milliseconds(), l.At.Format(time.RFC3339Nano))
		}
		if tx != nil && (opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait) {
			commit()
		}
	}
	commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
