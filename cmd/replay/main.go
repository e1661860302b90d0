package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/lilia29-lab/I-like-trains/internal/agent"
	persistlog "github.com/lilia29-lab/I-like-trains/internal/persistence/log"
)

func main() {
	var (
		dir      = flag.String("decisions", "", "dir containing decisions-*.jsonl.zst")
		nickname = flag.String("name", "", "only count decisions of this nickname (optional)")
	)
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "missing -decisions")
		os.Exit(2)
	}

	files, err := persistlog.ListDecisionFiles(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list decisions:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no decision files found in", *dir)
		os.Exit(1)
	}

	var s summary
	for _, path := range files {
		if err := persistlog.ReadDecisions(path, func(d agent.Decision) error {
			if *nickname == "" || d.Nickname == *nickname {
				s.add(d)
			}
			return nil
		}); err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
	}
	s.print(os.Stdout, len(files))
}

type summary struct {
	total      uint64
	sendErrors uint64
	outcomes   map[string]uint64
	moves      map[string]uint64
	first      agent.Decision
	last       agent.Decision
}

func (s *summary) add(d agent.Decision) {
	if s.outcomes == nil {
		s.outcomes = map[string]uint64{}
		s.moves = map[string]uint64{}
		s.first = d
	}
	s.total++
	s.outcomes[d.Outcome]++
	s.moves[d.Move]++
	if d.SendError != "" {
		s.sendErrors++
	}
	s.last = d
}

func (s *summary) print(w io.Writer, files int) {
	fmt.Fprintf(w, "decisions=%s files=%d send_errors=%s\n", humanize.Comma(int64(s.total)), files, humanize.Comma(int64(s.sendErrors)))
	if s.total == 0 {
		return
	}
	fmt.Fprintf(w, "span: %s .. %s (%s)\n",
		s.first.Time.Format("2006-01-02 15:04:05"), s.last.Time.Format("2006-01-02 15:04:05"),
		humanize.RelTime(s.first.Time, s.last.Time, "", "later"))
	printCounts(w, "outcome", s.outcomes, s.total)
	printCounts(w, "move", s.moves, s.total)
}

func printCounts(w io.Writer, label string, m map[string]uint64, total uint64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		pct := 100 * float64(m[k]) / float64(total)
		fmt.Fprintf(w, "  %-8s %-10s %10s  %5.1f%%\n", label, k, humanize.Comma(int64(m[k])), pct)
	}
}
