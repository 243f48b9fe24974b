package session

import (
	"testing"
	"time"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	t.Run("games snapshot", func(t *testing.T) {
		g1 := engine.NewGame("g1", engine.ModeAI, "alice")
		g1.ApplyMove(4, engine.MarkX)
		g1.ApplyMove(0, engine.MarkO)
		g2 := engine.NewGame("g2", engine.ModeMultiplayer, "bob")

		if err := fs.SaveGames([]*engine.Game{g1, g2}); err != nil {
			t.Fatalf("SaveGames failed: %v", err)
		}

		loaded, err := fs.LoadGames()
		if err != nil {
			t.Fatalf("LoadGames failed: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Expected 2 games, got %d", len(loaded))
		}

		byID := make(map[string]*engine.Game)
		for _, g := range loaded {
			byID[g.ID] = g
		}

		got := byID["g1"]
		if got == nil {
			t.Fatal("Game g1 missing after reload")
		}
		if got.Board != g1.Board {
			t.Errorf("Board mismatch: %v vs %v", got.Board, g1.Board)
		}
		if got.CurrentPlayer != g1.CurrentPlayer || got.Status != g1.Status {
			t.Errorf("State mismatch: %s/%s vs %s/%s",
				got.CurrentPlayer, got.Status, g1.CurrentPlayer, g1.Status)
		}
		if len(got.Moves) != 2 {
			t.Errorf("Expected 2 moves, got %d", len(got.Moves))
		}
		if !got.CreatedAt.Equal(g1.CreatedAt) {
			t.Errorf("CreatedAt changed across round trip")
		}
		if byID["g2"].Status != engine.StatusWaiting {
			t.Errorf("Waiting game lost its status")
		}
	})

	t.Run("history preserves order", func(t *testing.T) {
		base := time.Now().Round(time.Millisecond)
		entries := []history.Entry{
			{GameID: "g1", Mode: engine.ModeAI, Status: engine.StatusFinished, Winner: engine.MarkX, Moves: 5, FinishedAt: base},
			{GameID: "g2", Mode: engine.ModeMultiplayer, Status: engine.StatusDraw, Moves: 9, FinishedAt: base.Add(time.Second)},
		}
		if err := fs.SaveHistory(entries); err != nil {
			t.Fatalf("SaveHistory failed: %v", err)
		}

		loaded, err := fs.LoadHistory()
		if err != nil {
			t.Fatalf("LoadHistory failed: %v", err)
		}
		if len(loaded) != 2 || loaded[0].GameID != "g1" || loaded[1].GameID != "g2" {
			t.Errorf("Ledger order not preserved: %+v", loaded)
		}
		if loaded[1].Status != engine.StatusDraw {
			t.Errorf("Expected draw status, got %s", loaded[1].Status)
		}
	})
}

func TestFileStoreMissingFiles(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	games, err := fs.LoadGames()
	if err != nil {
		t.Fatalf("LoadGames on empty dir failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected no games, got %d", len(games))
	}

	entries, err := fs.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory on empty dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestSaver(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	store := NewStore()
	ledger := history.NewLedger()
	saver := NewSaver(store, ledger, fs)
	go saver.Run()

	g := store.Create(engine.ModeAI, "alice")
	ledger.Append(history.Entry{GameID: "old", Status: engine.StatusDraw})
	saver.Notify()
	saver.Notify() // coalesces with the pending signal

	// Close performs a final flush, so everything notified above is durable.
	saver.Close()

	games, err := fs.LoadGames()
	if err != nil {
		t.Fatalf("LoadGames failed: %v", err)
	}
	if len(games) != 1 || games[0].ID != g.ID {
		t.Errorf("Registry snapshot missing game: %+v", games)
	}

	entries, err := fs.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(entries) != 1 || entries[0].GameID != "old" {
		t.Errorf("Ledger snapshot missing entry: %+v", entries)
	}
}
