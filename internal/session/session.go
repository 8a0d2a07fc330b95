// Package session aggregates ledger exports into per-session and
// per-player money results.
package session

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/railbird/railbird/internal/ingest"
)

// Session is one sitting: every player's net result, keyed by canonical
// name.
type Session struct {
	Start time.Time
	Nets  map[string]int
}

// Build turns ledger files into sessions, one per file. Rows for the
// same person (after canonicalization) merge: rebuys show up as separate
// ledger lines. A nil canonicalize keeps raw names.
func Build(files [][]ingest.LedgerRow, canonicalize func(string) string) []Session {
	sessions := make([]Session, 0, len(files))
	for _, rows := range files {
		if len(rows) == 0 {
			continue
		}
		session := Session{Nets: make(map[string]int)}
		for _, row := range rows {
			name := row.Raw()
			if canonicalize != nil {
				name = canonicalize(name)
			}
			session.Nets[name] += row.Net
			if session.Start.IsZero() || (!row.SessionStart.IsZero() && row.SessionStart.Before(session.Start)) {
				session.Start = row.SessionStart
			}
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Start.Before(sessions[j].Start) })
	return sessions
}

// PlayerSummary is one player's record across sessions.
type PlayerSummary struct {
	Player      string
	Sessions    int
	Wins        int
	Losses      int
	Net         int
	BiggestWin  int
	BiggestLoss int
	MeanNet     float64
	StdDevNet   float64
}

// Summarize folds sessions into per-player records, sorted by total net
// descending. Break-even sessions count as neither win nor loss.
func Summarize(sessions []Session) []PlayerSummary {
	nets := make(map[string][]float64)
	summaries := make(map[string]*PlayerSummary)

	for _, session := range sessions {
		for player, net := range session.Nets {
			s, ok := summaries[player]
			if !ok {
				s = &PlayerSummary{Player: player}
				summaries[player] = s
			}
			s.Sessions++
			s.Net += net
			nets[player] = append(nets[player], float64(net))
			switch {
			case net > 0:
				s.Wins++
				if net > s.BiggestWin {
					s.BiggestWin = net
				}
			case net < 0:
				s.Losses++
				if net < s.BiggestLoss {
					s.BiggestLoss = net
				}
			}
		}
	}

	out := make([]PlayerSummary, 0, len(summaries))
	for player, s := range summaries {
		s.MeanNet = stat.Mean(nets[player], nil)
		if len(nets[player]) > 1 {
			s.StdDevNet = stat.StdDev(nets[player], nil)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net > out[j].Net
		}
		return out[i].Player < out[j].Player
	})
	return out
}
