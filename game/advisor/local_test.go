package advisor

import (
	"context"
	"testing"

	"github.com/playmesh/tictactoe/game/engine"
)

func TestLocalSuggest(t *testing.T) {
	ctx := context.Background()
	local := NewLocal()

	t.Run("takes winning move", func(t *testing.T) {
		// O at 0,1 — completing 2 wins.
		b := engine.Board{0: engine.MarkO, 1: engine.MarkO, 4: engine.MarkX, 8: engine.MarkX}
		pos, err := local.Suggest(ctx, b, engine.MarkO)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if pos != 2 {
			t.Errorf("Expected winning move 2, got %d", pos)
		}
	})

	t.Run("blocks opponent win", func(t *testing.T) {
		// X threatens 0,1,2; O has no win of its own.
		b := engine.Board{0: engine.MarkX, 1: engine.MarkX, 4: engine.MarkO}
		pos, err := local.Suggest(ctx, b, engine.MarkO)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if pos != 2 {
			t.Errorf("Expected blocking move 2, got %d", pos)
		}
	})

	t.Run("winning beats blocking", func(t *testing.T) {
		// O can win at 5 while X threatens at 2.
		b := engine.Board{
			0: engine.MarkX, 1: engine.MarkX,
			3: engine.MarkO, 4: engine.MarkO,
		}
		pos, err := local.Suggest(ctx, b, engine.MarkO)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if pos != 5 {
			t.Errorf("Expected winning move 5 over block, got %d", pos)
		}
	})

	t.Run("prefers center", func(t *testing.T) {
		b := engine.Board{0: engine.MarkX}
		pos, err := local.Suggest(ctx, b, engine.MarkO)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if pos != 4 {
			t.Errorf("Expected center 4, got %d", pos)
		}
	})

	t.Run("picks a corner when center is taken", func(t *testing.T) {
		b := engine.Board{4: engine.MarkX}
		for i := 0; i < 20; i++ {
			pos, err := local.Suggest(ctx, b, engine.MarkO)
			if err != nil {
				t.Fatalf("Suggest failed: %v", err)
			}
			switch pos {
			case 0, 2, 6, 8:
			default:
				t.Fatalf("Expected a corner, got %d", pos)
			}
		}
	})

	t.Run("full board yields no move", func(t *testing.T) {
		b := engine.Board{
			engine.MarkX, engine.MarkO, engine.MarkX,
			engine.MarkX, engine.MarkO, engine.MarkO,
			engine.MarkO, engine.MarkX, engine.MarkX,
		}
		if _, err := local.Suggest(ctx, b, engine.MarkO); err != ErrNoMoveAvailable {
			t.Errorf("Expected ErrNoMoveAvailable, got %v", err)
		}
	})
}

// Whatever the board, the suggestion must be legal while an open cell exists.
func TestLocalSuggestAlwaysLegal(t *testing.T) {
	ctx := context.Background()
	local := NewLocal()

	// Play random-free games by always following suggestions for both marks.
	for trial := 0; trial < 25; trial++ {
		var b engine.Board
		mark := engine.MarkX
		for !engine.IsFull(b) && engine.Winner(b) == engine.Empty {
			pos, err := local.Suggest(ctx, b, mark)
			if err != nil {
				t.Fatalf("Suggest failed on open board: %v", err)
			}
			if err := engine.Validate(b, pos); err != nil {
				t.Fatalf("Illegal suggestion %d: %v", pos, err)
			}
			b, _ = engine.Apply(b, pos, mark)
			mark = mark.Opponent()
		}
	}
}
