package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type sessionRow struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AgentKind string `json:"agent_kind"`
	ServerURL string `json:"server_url"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Decisions int    `json:"decisions"`
}

type outcomeRow struct {
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
	Count     int    `json:"count"`
}

type lifecycleRow struct {
	SessionID  string `json:"session_id"`
	Seq        int64  `json:"seq"`
	Event      string `json:"event"`
	CooldownMs int64  `json:"cooldown_ms"`
	At         string `json:"at"`
}

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	session := fs.String("session", "", "session id (outcomes, lifecycle; defaults to latest)")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	q := "sessions"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}
	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = filepath.Join(*dataDir, "index", "client.sqlite")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := runQuery(db, os.Stdout, q, *session, *limit); err != nil {
		fmt.Fprintln(os.Stderr, q+":", err)
		os.Exit(1)
	}
}

func runQuery(db *sql.DB, w io.Writer, q, session string, limit int) error {
	if limit <= 0 {
		limit = 20
	}
	if q != "sessions" && session == "" {
		id, err := latestSession(db)
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("no sessions found")
		}
		session = id
	}

	switch q {
	case "sessions":
		rows, err := db.Query(`SELECT s.id,s.nickname,s.agent_kind,s.server_url,s.started_at,COALESCE(s.ended_at,''),
			(SELECT COUNT(*) FROM decisions d WHERE d.session_id=s.id)
			FROM sessions s ORDER BY s.started_at DESC LIMIT ?`, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var r sessionRow
			if err := rows.Scan(&r.ID, &r.Nickname, &r.AgentKind, &r.ServerURL, &r.StartedAt, &r.EndedAt, &r.Decisions); err != nil {
				return err
			}
			printJSON(w, r)
		}
		return rows.Err()

	case "outcomes":
		rows, err := db.Query(`SELECT outcome,COUNT(*) FROM decisions WHERE session_id=? GROUP BY outcome ORDER BY outcome`, session)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r := outcomeRow{SessionID: session}
			if err := rows.Scan(&r.Outcome, &r.Count); err != nil {
				return err
			}
			printJSON(w, r)
		}
		return rows.Err()

	case "lifecycle":
		rows, err := db.Query(`SELECT seq,event,cooldown_ms,at FROM lifecycle WHERE session_id=? ORDER BY seq LIMIT ?`, session, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r := lifecycleRow{SessionID: session}
			if err := rows.Scan(&r.Seq, &r.Event, &r.CooldownMs, &r.At); err != nil {
				return err
			}
			printJSON(w, r)
		}
		return rows.Err()

	default:
		return fmt.Errorf("unknown query %q (sessions, outcomes, lifecycle)", q)
	}
}

func latestSession(db *sql.DB) (string, error) {
	var id string
	err := db.QueryRow(`SELECT id FROM sessions ORDER BY started_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
