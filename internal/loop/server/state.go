package server

import (
	"sort"
	"time"

	"github.com/tomz197/fruitcatch/internal/loop/config"
)

// ScoreEntry represents a single entry on the leaderboard.
type ScoreEntry struct {
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	At         time.Time `json:"at"`
	seq        uint64    // Submission order, for deterministic tie-break when scores are equal
}

// PlayerEntry is a connected player as shown on the scoreboard.
type PlayerEntry struct {
	Username   string `json:"username"`
	Phase      string `json:"phase"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Snapshot is an immutable view of the scoreboard for clients and the web feed.
type Snapshot struct {
	TopScores []ScoreEntry  `json:"top_scores"`
	Players   []PlayerEntry `json:"players"`
	Sessions  uint64        `json:"sessions"` // Rounds finished since start
}

// Leaderboard keeps the best finished rounds, highest first.
type Leaderboard struct {
	entries []ScoreEntry
	size    int
	seq     uint64
}

// NewLeaderboard returns a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	if size <= 0 {
		size = config.TopScoresShown
	}
	return &Leaderboard{size: size}
}

// Submit records a finished round. It reports whether the entry made the board.
func (l *Leaderboard) Submit(e ScoreEntry) bool {
	l.seq++
	e.seq = l.seq
	if len(l.entries) == l.size && e.Score <= l.entries[len(l.entries)-1].Score {
		return false
	}
	l.entries = append(l.entries, e)
	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].Score != l.entries[j].Score {
			return l.entries[i].Score > l.entries[j].Score
		}
		return l.entries[i].seq < l.entries[j].seq
	})
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
	return true
}

// Entries returns a copy of the board.
func (l *Leaderboard) Entries() []ScoreEntry {
	out := make([]ScoreEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
