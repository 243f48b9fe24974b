// Package history keeps the append-only ledger of concluded games.
package history

import (
	"sync"
	"time"

	"github.com/playmesh/tictactoe/game/engine"
)

// Entry is the immutable summary of one concluded game.
type Entry struct {
	GameID     string        `json:"game_id"`
	Mode       engine.Mode   `json:"mode"`
	Status     engine.Status `json:"status"`
	Winner     engine.Mark   `json:"winner,omitempty"`
	Moves      int           `json:"moves"`
	PlayerX    string        `json:"player_x,omitempty"`
	PlayerO    string        `json:"player_o,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// NewEntry summarizes a concluded game.
func NewEntry(g *engine.Game) Entry {
	return Entry{
		GameID:     g.ID,
		Mode:       g.Mode,
		Status:     g.Status,
		Winner:     g.Winner,
		Moves:      len(g.Moves),
		PlayerX:    g.PlayerX,
		PlayerO:    g.PlayerO,
		CreatedAt:  g.CreatedAt,
		FinishedAt: g.FinishedAt,
	}
}

// Ledger is a concurrency-safe, append-only record of concluded games.
// Entries are stored in conclusion order and listed most recent first.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records one concluded game. Entries are never mutated afterwards.
func (l *Ledger) Append(e Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// List returns entries most recent first. A non-empty playerID restricts
// the result to games that identity participated in, on either slot.
func (l *Ledger) List(playerID string) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Entry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if playerID != "" && e.PlayerX != playerID && e.PlayerO != playerID {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Snapshot returns the entries in append order, for persistence.
func (l *Ledger) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Restore replaces the ledger contents, preserving the given order. Used
// when reloading persisted state at startup.
func (l *Ledger) Restore(entries []Entry) {
	l.mu.Lock()
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
	l.mu.Unlock()
}
