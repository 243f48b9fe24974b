package advisor

import (
	"context"
	"math/rand/v2"

	"github.com/playmesh/tictactoe/game/engine"
)

// Local is the deterministic rule-based advisor. Priority order: complete
// a line for the mark, block the opponent's completing cell, take the
// center, take a random open corner, take any random open cell.
type Local struct{}

// NewLocal creates a rule-based advisor.
func NewLocal() *Local {
	return &Local{}
}

// Suggest implements the Advisor interface.
func (l *Local) Suggest(_ context.Context, board engine.Board, mark engine.Mark) (int, error) {
	// Winning move.
	if pos, ok := completingCell(board, mark); ok {
		return pos, nil
	}

	// Block the opponent.
	if pos, ok := completingCell(board, mark.Opponent()); ok {
		return pos, nil
	}

	// Center.
	if board[4] == engine.Empty {
		return 4, nil
	}

	// Corners.
	var corners []int
	for _, pos := range []int{0, 2, 6, 8} {
		if board[pos] == engine.Empty {
			corners = append(corners, pos)
		}
	}
	if len(corners) > 0 {
		return corners[rand.IntN(len(corners))], nil
	}

	// Anything open.
	var open []int
	for pos, cell := range board {
		if cell == engine.Empty {
			open = append(open, pos)
		}
	}
	if len(open) > 0 {
		return open[rand.IntN(len(open))], nil
	}

	return -1, ErrNoMoveAvailable
}

// completingCell finds an open cell that would complete three in a row for
// the mark.
func completingCell(board engine.Board, mark engine.Mark) (int, bool) {
	for pos, cell := range board {
		if cell != engine.Empty {
			continue
		}
		test, err := engine.Apply(board, pos, mark)
		if err != nil {
			continue
		}
		if engine.Winner(test) == mark {
			return pos, true
		}
	}
	return -1, false
}
