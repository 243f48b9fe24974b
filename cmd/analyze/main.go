// Command analyze prints quick, human-readable statistics about the
// concluded games recorded in a data directory's history.json. It summarizes
// outcome distribution, per-mode counts, move-count spread, and per-player
// records.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

// PlayerRecord tallies one identity's results across all recorded games.
type PlayerRecord struct {
	Player string
	Wins   int
	Losses int
	Draws  int
}

// Games returns the total number of games in the record.
func (r PlayerRecord) Games() int {
	return r.Wins + r.Losses + r.Draws
}

// Summary aggregates a history ledger for reporting.
type Summary struct {
	Total      int
	XWins      int
	OWins      int
	Draws      int
	ByMode     map[engine.Mode]int
	TotalMoves int
	MinMoves   int
	MaxMoves   int
	Players    []PlayerRecord
}

// AverageMoves returns the mean game length, or 0 for an empty ledger.
func (s Summary) AverageMoves() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Total)
}

// summarize folds history entries into a Summary. Player records are sorted
// by games played, then name.
func summarize(entries []history.Entry) Summary {
	s := Summary{
		ByMode:   map[engine.Mode]int{},
		MinMoves: engine.BoardSize + 1,
	}
	records := map[string]*PlayerRecord{}

	recordFor := func(id string) *PlayerRecord {
		if id == "" {
			return nil
		}
		r, ok := records[id]
		if !ok {
			r = &PlayerRecord{Player: id}
			records[id] = r
		}
		return r
	}

	for _, e := range entries {
		s.Total++
		s.ByMode[e.Mode]++
		s.TotalMoves += e.Moves
		if e.Moves < s.MinMoves {
			s.MinMoves = e.Moves
		}
		if e.Moves > s.MaxMoves {
			s.MaxMoves = e.Moves
		}

		x := recordFor(e.PlayerX)
		o := recordFor(e.PlayerO)
		switch e.Winner {
		case engine.MarkX:
			s.XWins++
			if x != nil {
				x.Wins++
			}
			if o != nil {
				o.Losses++
			}
		case engine.MarkO:
			s.OWins++
			if x != nil {
				x.Losses++
			}
			if o != nil {
				o.Wins++
			}
		default:
			s.Draws++
			if x != nil {
				x.Draws++
			}
			if o != nil {
				o.Draws++
			}
		}
	}

	if s.Total == 0 {
		s.MinMoves = 0
	}

	for _, r := range records {
		s.Players = append(s.Players, *r)
	}
	sort.Slice(s.Players, func(i, j int) bool {
		if s.Players[i].Games() != s.Players[j].Games() {
			return s.Players[i].Games() > s.Players[j].Games()
		}
		return s.Players[i].Player < s.Players[j].Player
	})

	return s
}

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	path := filepath.Join(dataDir, "history.json")

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Printf("Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	s := summarize(entries)

	fmt.Printf("=== Game History: %s ===\n\n", path)
	fmt.Printf("Games: %d\n", s.Total)
	if s.Total == 0 {
		return
	}

	fmt.Printf("Outcomes: X wins %d, O wins %d, draws %d\n", s.XWins, s.OWins, s.Draws)
	fmt.Printf("Modes: multiplayer %d, ai %d\n",
		s.ByMode[engine.ModeMultiplayer], s.ByMode[engine.ModeAI])
	fmt.Printf("Moves per game: avg %.1f, min %d, max %d\n",
		s.AverageMoves(), s.MinMoves, s.MaxMoves)

	fmt.Printf("\nPlayers:\n")
	for _, r := range s.Players {
		fmt.Printf("  %-20s %d games (%dW/%dL/%dD)\n",
			r.Player, r.Games(), r.Wins, r.Losses, r.Draws)
	}
}
