package service

import (
	"context"
	"errors"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

var (
	// ErrInvalidMode reports a creation request with an unknown game mode.
	ErrInvalidMode = errors.New("invalid game mode")
	// ErrNotAParticipant reports an identity bound to neither slot.
	ErrNotAParticipant = errors.New("not a participant in this game")
	// ErrNotYourTurn reports a move by the participant whose turn it is not.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrNotApplicable reports an automated-move request on a game that is
	// not an ai game or where the automated participant is not to move.
	ErrNotApplicable = errors.New("automated move not applicable")
)

// GameService defines all game operations exposed to transports.
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context, mode engine.Mode, playerID string) (*engine.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*engine.Game, error)
	GetGame(ctx context.Context, gameID string) (*engine.Game, error)
	ListGames(ctx context.Context) ([]*engine.Game, error)

	// Gameplay
	SubmitMove(ctx context.Context, gameID, playerID string, position int) (*engine.Game, error)
	RequestAIMove(ctx context.Context, gameID string) (*engine.Game, error)

	// History
	History(ctx context.Context, playerID string) ([]history.Entry, error)
}

// Publisher fans a state-change event out to all subscribers of a game.
// Delivery is best-effort and must never block the caller.
type Publisher interface {
	PublishState(gameID string, game *engine.Game)
}

// Notifier marks durable state dirty without waiting for the write.
type Notifier interface {
	Notify()
}
