package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/playmesh/tictactoe/game/engine"
)

// ErrGameNotFound reports an unknown game identifier.
var ErrGameNotFound = errors.New("game not found")

// slot pairs one game with the mutex that serializes its transitions.
type slot struct {
	mu   sync.Mutex
	game *engine.Game
}

// Store is the in-memory game registry. The registry lock guards the map;
// each slot's own mutex guards that game's state. Games are retained until
// process exit.
type Store struct {
	mu    sync.RWMutex
	games map[string]*slot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{games: make(map[string]*slot)}
}

// Create allocates a game with a fresh random identifier and registers it.
func (s *Store) Create(mode engine.Mode, playerID string) *engine.Game {
	g := engine.NewGame(uuid.NewString(), mode, playerID)

	s.mu.Lock()
	s.games[g.ID] = &slot{game: g}
	s.mu.Unlock()

	return g.Clone()
}

// Get returns a copy of the game, safe to read without coordination.
func (s *Store) Get(id string) (*engine.Game, error) {
	sl, err := s.slot(id)
	if err != nil {
		return nil, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.game.Clone(), nil
}

// List returns copies of all games, in no particular order.
func (s *Store) List() []*engine.Game {
	s.mu.RLock()
	slots := make([]*slot, 0, len(s.games))
	for _, sl := range s.games {
		slots = append(slots, sl)
	}
	s.mu.RUnlock()

	result := make([]*engine.Game, 0, len(slots))
	for _, sl := range slots {
		sl.mu.Lock()
		result = append(result, sl.game.Clone())
		sl.mu.Unlock()
	}
	return result
}

// WithExclusive runs fn against the game under its exclusive section and
// commits the result. fn receives a working copy; when it returns an error
// nothing is committed, so a failed transition leaves no partial state.
// Mutations on distinct games proceed in parallel.
func (s *Store) WithExclusive(id string, fn func(g *engine.Game) error) (*engine.Game, error) {
	sl, err := s.slot(id)
	if err != nil {
		return nil, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	work := sl.game.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	sl.game = work
	return work.Clone(), nil
}

// Join binds playerID to the open slot of a waiting game.
func (s *Store) Join(id, playerID string) (*engine.Game, error) {
	return s.WithExclusive(id, func(g *engine.Game) error {
		return g.Join(playerID)
	})
}

// Count returns the number of registered games.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Snapshot returns copies of all games for persistence. Ordering is
// irrelevant for the registry artifact.
func (s *Store) Snapshot() []*engine.Game {
	return s.List()
}

// Restore registers previously persisted games, replacing any with the same
// identifier. Used once at startup before the server accepts traffic.
func (s *Store) Restore(games []*engine.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range games {
		if g == nil || g.ID == "" {
			continue
		}
		s.games[g.ID] = &slot{game: g.Clone()}
	}
}

func (s *Store) slot(id string) (*slot, error) {
	s.mu.RLock()
	sl, ok := s.games[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrGameNotFound
	}
	return sl, nil
}
