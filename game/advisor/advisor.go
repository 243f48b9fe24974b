package advisor

import (
	"context"
	"errors"

	"github.com/playmesh/tictactoe/game/engine"
)

// ErrNoMoveAvailable is returned only when the board has no open cell.
var ErrNoMoveAvailable = errors.New("no move available")

// Advisor suggests a board position for the given mark. Implementations
// must return a legal move whenever one exists.
type Advisor interface {
	Suggest(ctx context.Context, board engine.Board, mark engine.Mark) (int, error)
}
