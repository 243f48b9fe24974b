// Command validate provides a small CLI that validates the persisted data
// files (games.json and history.json) in a data directory. It checks:
//   - JSON structure and required fields
//   - Move logs: positions in range, cells claimed once, X moves first,
//     marks alternate strictly
//   - Board consistency: replaying the move log reproduces the stored board
//   - Status coherence: winner matches the board for finished games, draws
//     have a full board with no winning line, active games have a turn
//   - Slot assignment: ai games bind the automated participant to O
//   - History entries: only concluded games, mode and winner well-formed
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateGamesFile loads and validates a games.json snapshot.
func validateGamesFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		result.Errors = append(result.Errors, "File not present (fresh start)")
		return result
	}
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var games []*engine.Game
	if err := json.Unmarshal(data, &games); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	seen := map[string]bool{}
	for i, g := range games {
		if g == nil {
			result.fail("Game %d: null entry", i)
			continue
		}
		label := g.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			result.fail("Game %s: empty id", label)
		}
		if seen[g.ID] {
			result.fail("Game %s: duplicate id", label)
		}
		seen[g.ID] = true

		validateGame(&result, label, g)
	}

	return result
}

// validateGame checks one game's internal consistency.
func validateGame(result *ValidationResult, label string, g *engine.Game) {
	switch g.Mode {
	case engine.ModeMultiplayer, engine.ModeAI:
	default:
		result.fail("Game %s: unknown mode %q", label, g.Mode)
	}

	switch g.Status {
	case engine.StatusWaiting, engine.StatusActive, engine.StatusFinished, engine.StatusDraw:
	default:
		result.fail("Game %s: unknown status %q", label, g.Status)
	}

	if g.Mode == engine.ModeAI && g.PlayerO != engine.AIPlayerID {
		result.fail("Game %s: ai game has O slot %q, expected %q", label, g.PlayerO, engine.AIPlayerID)
	}
	if g.Status != engine.StatusWaiting && g.PlayerO == "" {
		result.fail("Game %s: status %s with an open O slot", label, g.Status)
	}

	// Replay the move log and compare against the stored board.
	var board engine.Board
	expected := engine.MarkX
	replayable := true
	for i, mv := range g.Moves {
		if mv.Player != expected {
			result.fail("Game %s: move %d by %s, expected %s", label, i, mv.Player, expected)
			replayable = false
			break
		}
		next, err := engine.Apply(board, mv.Position, mv.Player)
		if err != nil {
			result.fail("Game %s: move %d invalid: %v", label, i, err)
			replayable = false
			break
		}
		board = next
		expected = expected.Opponent()
	}
	if replayable && board != g.Board {
		result.fail("Game %s: stored board does not match the move log", label)
		replayable = false
	}

	if !replayable {
		return
	}

	winner, draw := engine.Outcome(board)
	switch g.Status {
	case engine.StatusFinished:
		if winner == engine.Empty {
			result.fail("Game %s: finished without a winning line", label)
		} else if g.Winner != winner {
			result.fail("Game %s: recorded winner %q, board says %q", label, g.Winner, winner)
		}
	case engine.StatusDraw:
		if winner != engine.Empty {
			result.fail("Game %s: draw recorded but %s has a winning line", label, winner)
		} else if !draw {
			result.fail("Game %s: draw recorded on a board with open cells", label)
		}
	case engine.StatusActive:
		if winner != engine.Empty || draw {
			result.fail("Game %s: active but the board is terminal", label)
		}
		if g.CurrentPlayer != expected {
			result.fail("Game %s: turn is %q, move log says %q", label, g.CurrentPlayer, expected)
		}
	case engine.StatusWaiting:
		if len(g.Moves) > 0 {
			result.fail("Game %s: waiting game has recorded moves", label)
		}
	}
}

// validateHistoryFile loads and validates a history.json ledger.
func validateHistoryFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		result.Errors = append(result.Errors, "File not present (fresh start)")
		return result
	}
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	for i, e := range entries {
		label := e.GameID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			result.fail("Entry %s: empty game_id", label)
		}

		switch e.Status {
		case engine.StatusFinished:
			if e.Winner != engine.MarkX && e.Winner != engine.MarkO {
				result.fail("Entry %s: finished with winner %q", label, e.Winner)
			}
		case engine.StatusDraw:
			if e.Winner != engine.Empty {
				result.fail("Entry %s: draw with winner %q", label, e.Winner)
			}
		default:
			result.fail("Entry %s: non-concluded status %q", label, e.Status)
		}

		switch e.Mode {
		case engine.ModeMultiplayer, engine.ModeAI:
		default:
			result.fail("Entry %s: unknown mode %q", label, e.Mode)
		}

		if e.Moves < 5 || e.Moves > engine.BoardSize {
			result.fail("Entry %s: implausible move count %d", label, e.Moves)
		}
		if e.FinishedAt.Before(e.CreatedAt) {
			result.fail("Entry %s: finished before it was created", label)
		}
	}

	return result
}

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	fmt.Printf("Validating data files in %s/\n\n", dataDir)

	results := []ValidationResult{
		validateGamesFile(filepath.Join(dataDir, "games.json")),
		validateHistoryFile(filepath.Join(dataDir, "history.json")),
	}

	allValid := true
	for _, result := range results {
		if result.Valid {
			fmt.Printf("✓ %s\n", result.File)
			continue
		}
		allValid = false
		fmt.Printf("✗ %s\n", result.File)
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}

	fmt.Println(strings.Repeat("-", 40))
	if allValid {
		fmt.Println("All data files are valid")
		return
	}
	fmt.Println("Validation failed")
	os.Exit(1)
}
