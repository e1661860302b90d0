package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
)

func TestSummaryPrint(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	var s summary
	s.add(agent.Decision{Time: t0, Move: "UP", Outcome: "TURNED"})
	s.add(agent.Decision{Time: t0.Add(time.Minute), Move: "UP", Outcome: "UNCHANGED"})
	s.add(agent.Decision{Time: t0.Add(2 * time.Minute), Move: "DROP", Outcome: "DROPPED", SendError: "queue full"})

	var buf bytes.Buffer
	s.print(&buf, 1)
	out := buf.String()
	for _, want := range []string{"decisions=3 files=1 send_errors=1", "move     UP", "outcome  DROPPED"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	var s summary
	var buf bytes.Buffer
	s.print(&buf, 2)
	if got := buf.String(); got != "decisions=0 files=2 send_errors=0\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
