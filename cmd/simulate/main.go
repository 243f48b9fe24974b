// Command simulate exercises a running game server over its REST API. It
// plays a batch of games against the server AI and prints the outcome
// distribution, which is useful for smoke-testing a deployment and for
// eyeballing how the AI behaves.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/playmesh/tictactoe/game/engine"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "Base URL of the game server")
	gameCount = flag.Int("games", 10, "Number of games to play")
	playerID  = flag.String("player", "simulator", "Player identity to use")
)

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) post(path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// openCells lists the unoccupied cells of a board.
func openCells(b engine.Board) []int {
	var cells []int
	for i, mark := range b {
		if mark == engine.Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// pickMove chooses the simulator's next cell: complete a winning line if
// one is open, otherwise a random open cell. The weak strategy keeps the
// server AI's blocking behavior visible in the results.
func pickMove(b engine.Board) int {
	open := openCells(b)
	for _, pos := range open {
		next, err := engine.Apply(b, pos, engine.MarkX)
		if err != nil {
			continue
		}
		if engine.Winner(next) == engine.MarkX {
			return pos
		}
	}
	return open[rand.IntN(len(open))]
}

// playGame plays one full game against the server AI and returns the
// concluded state.
func playGame(c *client, playerID string) (*engine.Game, error) {
	var game engine.Game
	err := c.post("/api/games", map[string]string{
		"mode":      string(engine.ModeAI),
		"player_id": playerID,
	}, &game)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	for game.Status == engine.StatusActive {
		pos := pickMove(game.Board)
		err := c.post(fmt.Sprintf("/api/games/%s/move", game.ID), map[string]interface{}{
			"player_id": playerID,
			"position":  pos,
		}, &game)
		if err != nil {
			return nil, fmt.Errorf("move at %d: %w", pos, err)
		}

		if game.Status != engine.StatusActive {
			break
		}

		if err := c.post(fmt.Sprintf("/api/games/%s/ai-move", game.ID), nil, &game); err != nil {
			return nil, fmt.Errorf("ai move: %w", err)
		}
	}

	return &game, nil
}

func main() {
	flag.Parse()

	c := newClient(*serverURL)
	log.Printf("Playing %d games against %s as %q", *gameCount, *serverURL, *playerID)

	wins, losses, draws := 0, 0, 0
	totalMoves := 0

	for i := 0; i < *gameCount; i++ {
		game, err := playGame(c, *playerID)
		if err != nil {
			log.Printf("Game %d failed: %v", i+1, err)
			os.Exit(1)
		}

		totalMoves += len(game.Moves)
		switch game.Winner {
		case engine.MarkX:
			wins++
		case engine.MarkO:
			losses++
		default:
			draws++
		}
		log.Printf("Game %d: %s, status=%s, moves=%d", i+1, game.ID, game.Status, len(game.Moves))
	}

	fmt.Printf("\n=== Results over %d games ===\n", *gameCount)
	fmt.Printf("Wins:   %d\n", wins)
	fmt.Printf("Losses: %d\n", losses)
	fmt.Printf("Draws:  %d\n", draws)
	fmt.Printf("Average moves per game: %.1f\n", float64(totalMoves)/float64(*gameCount))
}
