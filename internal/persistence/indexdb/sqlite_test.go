package indexdb

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

func TestSQLiteIndex_SessionRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	id := idx.StartSession("bot", "greedy", "ws://localhost:8080/v1/ws")
	if id == "" {
		t.Fatalf("empty session id")
	}
	now := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)
	idx.RecordDecision(agent.Decision{Time: now, Tick: 5, Nickname: "bot", Move: "UP", Current: "RIGHT", Outcome: "TURNED"})
	idx.RecordDecision(agent.Decision{Time: now, Tick: 6, Nickname: "bot", Move: "DROP", Outcome: "DROPPED", SendError: "queue full"})
	idx.RecordLifecycle("DEATH", now, 5*time.Second)
	idx.EndSession()
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var (
		nick  string
		ended sql.NullString
	)
	if err := db.QueryRow(`SELECT nickname, ended_at FROM sessions WHERE id=?`, id).Scan(&nick, &ended); err != nil {
		t.Fatalf("Scan session: %v", err)
	}
	if nick != "bot" || !ended.Valid {
		t.Fatalf("session mismatch: nick=%q ended=%v", nick, ended)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM decisions WHERE session_id=?`, id).Scan(&n); err != nil {
		t.Fatalf("count decisions: %v", err)
	}
	if n != 2 {
		t.Fatalf("decisions = %d, want 2", n)
	}

	var sendErr sql.NullString
	if err := db.QueryRow(`SELECT send_error FROM decisions WHERE session_id=? AND seq=2`, id).Scan(&sendErr); err != nil {
		t.Fatalf("Scan decision: %v", err)
	}
	if sendErr.String != "queue full" {
		t.Fatalf("send_error = %q", sendErr.String)
	}

	var (
		event    string
		cooldown int64
	)
	if err := db.QueryRow(`SELECT event, cooldown_ms FROM lifecycle WHERE session_id=?`, id).Scan(&event, &cooldown); err != nil {
		t.Fatalf("Scan lifecycle: %v", err)
	}
	if event != "DEATH" || cooldown != 5000 {
		t.Fatalf("lifecycle mismatch: %s %d", event, cooldown)
	}
}

func TestSQLiteIndex_NoSessionNoRows(t *testing.T) {
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	idx.RecordDecision(agent.Decision{Move: "UP", Outcome: "TURNED"})
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Recording after close is a no-op.
	idx.RecordLifecycle("SPAWNED", time.Now(), 0)
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
