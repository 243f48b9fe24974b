package main

import (
	"testing"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

func TestSummarize(t *testing.T) {
	entries := []history.Entry{
		{GameID: "g1", Mode: engine.ModeAI, Status: engine.StatusFinished,
			Winner: engine.MarkX, Moves: 5, PlayerX: "alice", PlayerO: engine.AIPlayerID},
		{GameID: "g2", Mode: engine.ModeAI, Status: engine.StatusFinished,
			Winner: engine.MarkO, Moves: 6, PlayerX: "alice", PlayerO: engine.AIPlayerID},
		{GameID: "g3", Mode: engine.ModeMultiplayer, Status: engine.StatusDraw,
			Moves: 9, PlayerX: "alice", PlayerO: "bob"},
	}

	s := summarize(entries)

	if s.Total != 3 {
		t.Errorf("Expected 3 games, got %d", s.Total)
	}
	if s.XWins != 1 || s.OWins != 1 || s.Draws != 1 {
		t.Errorf("Unexpected outcome tallies: X=%d O=%d draws=%d", s.XWins, s.OWins, s.Draws)
	}
	if s.ByMode[engine.ModeAI] != 2 || s.ByMode[engine.ModeMultiplayer] != 1 {
		t.Errorf("Unexpected mode tallies: %v", s.ByMode)
	}
	if s.MinMoves != 5 || s.MaxMoves != 9 {
		t.Errorf("Expected move range 5-9, got %d-%d", s.MinMoves, s.MaxMoves)
	}
}

func TestSummarize_PlayerRecords(t *testing.T) {
	entries := []history.Entry{
		{GameID: "g1", Winner: engine.MarkX, Moves: 5, PlayerX: "alice", PlayerO: "bob"},
		{GameID: "g2", Winner: engine.MarkO, Moves: 7, PlayerX: "bob", PlayerO: "alice"},
		{GameID: "g3", Moves: 9, PlayerX: "alice", PlayerO: "carol"},
	}

	s := summarize(entries)

	if len(s.Players) != 3 {
		t.Fatalf("Expected 3 player records, got %d", len(s.Players))
	}

	// alice played all three games and sorts first.
	alice := s.Players[0]
	if alice.Player != "alice" {
		t.Fatalf("Expected alice first, got %s", alice.Player)
	}
	if alice.Wins != 2 || alice.Losses != 0 || alice.Draws != 1 {
		t.Errorf("Unexpected record for alice: %dW/%dL/%dD", alice.Wins, alice.Losses, alice.Draws)
	}

	for _, r := range s.Players {
		if r.Player == "bob" {
			if r.Wins != 0 || r.Losses != 2 {
				t.Errorf("Unexpected record for bob: %dW/%dL/%dD", r.Wins, r.Losses, r.Draws)
			}
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)

	if s.Total != 0 {
		t.Errorf("Expected 0 games, got %d", s.Total)
	}
	if s.MinMoves != 0 || s.MaxMoves != 0 {
		t.Errorf("Expected zeroed move range, got %d-%d", s.MinMoves, s.MaxMoves)
	}
	if s.AverageMoves() != 0 {
		t.Errorf("Expected 0 average, got %f", s.AverageMoves())
	}
}

func TestAverageMoves(t *testing.T) {
	s := Summary{Total: 4, TotalMoves: 30}
	if avg := s.AverageMoves(); avg != 7.5 {
		t.Errorf("Expected average 7.5, got %f", avg)
	}
}
