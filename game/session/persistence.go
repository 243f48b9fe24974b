package session

import (
	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

// Persistence is the durable-store interface for the two server artifacts:
// the full game registry snapshot and the history ledger. Implementations
// must preserve ledger order; registry order is irrelevant.
type Persistence interface {
	// SaveGames overwrites the registry snapshot.
	SaveGames(games []*engine.Game) error

	// LoadGames reads the registry snapshot. A missing artifact yields an
	// empty slice, not an error.
	LoadGames() ([]*engine.Game, error)

	// SaveHistory overwrites the ledger artifact, preserving order.
	SaveHistory(entries []history.Entry) error

	// LoadHistory reads the ledger artifact in its persisted order.
	LoadHistory() ([]history.Entry, error)
}
