package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/playmesh/tictactoe/game/advisor"
	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
	"github.com/playmesh/tictactoe/game/session"
)

// gameServiceImpl implements GameService on top of the session store.
type gameServiceImpl struct {
	store     *session.Store
	ledger    *history.Ledger
	advisor   advisor.Advisor
	publisher Publisher
	saver     Notifier
}

// NewGameService creates the game service. publisher and saver may be nil;
// publication and persistence are then skipped.
func NewGameService(store *session.Store, ledger *history.Ledger, adv advisor.Advisor, publisher Publisher, saver Notifier) GameService {
	return &gameServiceImpl{
		store:     store,
		ledger:    ledger,
		advisor:   adv,
		publisher: publisher,
		saver:     saver,
	}
}

// CreateGame registers a fresh game. An empty playerID gets a generated
// identity, which the caller reads back from the game's slot X binding.
func (s *gameServiceImpl) CreateGame(ctx context.Context, mode engine.Mode, playerID string) (*engine.Game, error) {
	if mode != engine.ModeMultiplayer && mode != engine.ModeAI {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if playerID == "" {
		playerID = uuid.NewString()
	}

	g := s.store.Create(mode, playerID)
	s.markDirty()
	return g, nil
}

// JoinGame binds playerID to the open slot of a waiting game.
func (s *gameServiceImpl) JoinGame(ctx context.Context, gameID, playerID string) (*engine.Game, error) {
	g, err := s.store.Join(gameID, playerID)
	if err != nil {
		return nil, err
	}

	s.markDirty()
	s.publish(g)
	return g, nil
}

// GetGame returns a snapshot of the game.
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*engine.Game, error) {
	return s.store.Get(gameID)
}

// ListGames returns snapshots of all games.
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*engine.Game, error) {
	return s.store.List(), nil
}

// SubmitMove validates and applies one move for playerID. Checks run in
// order: game exists, game active, requester is a participant, it is the
// requester's turn, the cell is legal.
func (s *gameServiceImpl) SubmitMove(ctx context.Context, gameID, playerID string, position int) (*engine.Game, error) {
	concluded := false
	g, err := s.store.WithExclusive(gameID, func(g *engine.Game) error {
		if g.Status != engine.StatusActive {
			return fmt.Errorf("%w: status %s", engine.ErrGameNotActive, g.Status)
		}
		mark, ok := g.MarkOf(playerID)
		if !ok {
			return ErrNotAParticipant
		}
		if mark != g.CurrentPlayer {
			return ErrNotYourTurn
		}
		if err := g.ApplyMove(position, mark); err != nil {
			return err
		}
		concluded = g.Concluded()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.conclude(g, concluded)
	return g, nil
}

// RequestAIMove produces and applies the automated participant's move. The
// suggestion is obtained outside the exclusive section; legality is
// re-validated once inside it.
func (s *gameServiceImpl) RequestAIMove(ctx context.Context, gameID string) (*engine.Game, error) {
	snapshot, err := s.store.Get(gameID)
	if err != nil {
		return nil, err
	}
	if snapshot.Mode != engine.ModeAI {
		return nil, fmt.Errorf("%w: not an ai game", ErrNotApplicable)
	}
	if snapshot.Status != engine.StatusActive || snapshot.CurrentPlayer != engine.MarkO {
		return nil, fmt.Errorf("%w: not the automated participant's turn", ErrNotApplicable)
	}

	position, err := s.advisor.Suggest(ctx, snapshot.Board, engine.MarkO)
	if err != nil {
		return nil, err
	}

	concluded := false
	g, err := s.store.WithExclusive(gameID, func(g *engine.Game) error {
		// The board may have changed since the snapshot; re-check before
		// applying.
		if g.Status != engine.StatusActive || g.CurrentPlayer != engine.MarkO {
			return fmt.Errorf("%w: state changed", ErrNotApplicable)
		}
		if err := g.ApplyMove(position, engine.MarkO); err != nil {
			return err
		}
		concluded = g.Concluded()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.conclude(g, concluded)
	return g, nil
}

// History lists concluded games, most recent first, optionally filtered to
// one participant identity.
func (s *gameServiceImpl) History(ctx context.Context, playerID string) ([]history.Entry, error) {
	return s.ledger.List(playerID), nil
}

// conclude performs the post-commit side effects of a successful move:
// the at-most-once ledger append, the dirty mark, and the state-change
// event.
func (s *gameServiceImpl) conclude(g *engine.Game, concluded bool) {
	if concluded {
		s.ledger.Append(history.NewEntry(g))
	}
	s.markDirty()
	s.publish(g)
}

func (s *gameServiceImpl) publish(g *engine.Game) {
	if s.publisher != nil {
		s.publisher.PublishState(g.ID, g)
	}
}

func (s *gameServiceImpl) markDirty() {
	if s.saver != nil {
		s.saver.Notify()
	}
}
