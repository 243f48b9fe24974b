package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/playmesh/tictactoe/game/engine"
)

func entryFor(id, playerX, playerO string, finished time.Time) Entry {
	return Entry{
		GameID:     id,
		Mode:       engine.ModeMultiplayer,
		Status:     engine.StatusFinished,
		Winner:     engine.MarkX,
		Moves:      5,
		PlayerX:    playerX,
		PlayerO:    playerO,
		CreatedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
}

func TestLedgerList(t *testing.T) {
	ledger := NewLedger()
	base := time.Now()

	ledger.Append(entryFor("g1", "alice", "bob", base))
	ledger.Append(entryFor("g2", "alice", "carol", base.Add(time.Second)))
	ledger.Append(entryFor("g3", "dave", "bob", base.Add(2*time.Second)))

	t.Run("most recent first", func(t *testing.T) {
		entries := ledger.List("")
		if len(entries) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(entries))
		}
		if entries[0].GameID != "g3" || entries[2].GameID != "g1" {
			t.Errorf("Expected order g3,g2,g1; got %s,%s,%s",
				entries[0].GameID, entries[1].GameID, entries[2].GameID)
		}
	})

	t.Run("filter matches either slot", func(t *testing.T) {
		entries := ledger.List("bob")
		if len(entries) != 2 {
			t.Fatalf("Expected 2 entries for bob, got %d", len(entries))
		}
		if entries[0].GameID != "g3" || entries[1].GameID != "g1" {
			t.Errorf("Unexpected entries: %s, %s", entries[0].GameID, entries[1].GameID)
		}
	})

	t.Run("filter with no matches", func(t *testing.T) {
		if entries := ledger.List("mallory"); len(entries) != 0 {
			t.Errorf("Expected no entries, got %d", len(entries))
		}
	})
}

func TestLedgerNewEntry(t *testing.T) {
	g := engine.NewGame("g1", engine.ModeAI, "alice")
	for _, mv := range []struct {
		pos int
		m   engine.Mark
	}{{0, engine.MarkX}, {3, engine.MarkO}, {1, engine.MarkX}, {4, engine.MarkO}, {2, engine.MarkX}} {
		if err := g.ApplyMove(mv.pos, mv.m); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	e := NewEntry(g)
	if e.GameID != "g1" || e.Winner != engine.MarkX || e.Moves != 5 {
		t.Errorf("Unexpected entry: %+v", e)
	}
	if e.PlayerO != engine.AIPlayerID {
		t.Errorf("Expected ai participant recorded, got %q", e.PlayerO)
	}
	if e.FinishedAt.IsZero() {
		t.Error("Expected conclusion timestamp")
	}
}

func TestLedgerSnapshotRestore(t *testing.T) {
	ledger := NewLedger()
	base := time.Now()
	ledger.Append(entryFor("g1", "a", "b", base))
	ledger.Append(entryFor("g2", "c", "d", base.Add(time.Second)))

	snap := ledger.Snapshot()
	if len(snap) != 2 || snap[0].GameID != "g1" {
		t.Fatalf("Snapshot should preserve append order, got %+v", snap)
	}

	restored := NewLedger()
	restored.Restore(snap)
	entries := restored.List("")
	if len(entries) != 2 || entries[0].GameID != "g2" {
		t.Errorf("Restored ledger lost order: %+v", entries)
	}
}

func TestLedgerConcurrentAppend(t *testing.T) {
	ledger := NewLedger()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ledger.Append(entryFor(fmt.Sprintf("g%d", n), "a", "b", time.Now()))
		}(i)
	}
	wg.Wait()

	if ledger.Len() != 50 {
		t.Errorf("Expected 50 entries, got %d", ledger.Len())
	}
}
