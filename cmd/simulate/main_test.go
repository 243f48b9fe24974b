package main

import (
	"net/http/httptest"
	"testing"

	"github.com/playmesh/tictactoe/api"
	"github.com/playmesh/tictactoe/game/advisor"
	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
	"github.com/playmesh/tictactoe/game/service"
	"github.com/playmesh/tictactoe/game/session"
	"github.com/playmesh/tictactoe/transport/websocket"
)

func newTestServer() *httptest.Server {
	store := session.NewStore()
	ledger := history.NewLedger()
	hub := websocket.NewHub()
	svc := service.NewGameService(store, ledger, advisor.NewLocal(), hub, nil)
	hub.SetGames(svc)
	go hub.Run()

	return httptest.NewServer(api.NewServer(svc, hub))
}

func TestPlayGame(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	c := newClient(server.URL)

	game, err := playGame(c, "simulator")
	if err != nil {
		t.Fatalf("playGame failed: %v", err)
	}

	if !game.Concluded() {
		t.Errorf("Expected a concluded game, got status %s", game.Status)
	}
	if len(game.Moves) < 5 || len(game.Moves) > engine.BoardSize {
		t.Errorf("Implausible move count %d", len(game.Moves))
	}
	if game.PlayerX != "simulator" || game.PlayerO != engine.AIPlayerID {
		t.Errorf("Unexpected slot assignment: X=%s O=%s", game.PlayerX, game.PlayerO)
	}
}

func TestPickMove_TakesWin(t *testing.T) {
	var b engine.Board
	b[0], b[1] = engine.MarkX, engine.MarkX
	b[3], b[4] = engine.MarkO, engine.MarkO

	// Many samples: the winning cell must always win out over random play.
	for i := 0; i < 50; i++ {
		if pos := pickMove(b); pos != 2 {
			t.Fatalf("Expected winning cell 2, got %d", pos)
		}
	}
}

func TestPickMove_AlwaysLegal(t *testing.T) {
	var b engine.Board
	b[4] = engine.MarkO
	b[0] = engine.MarkX

	for i := 0; i < 50; i++ {
		pos := pickMove(b)
		if err := engine.Validate(b, pos); err != nil {
			t.Fatalf("pickMove chose an illegal cell: %v", err)
		}
	}
}

func TestOpenCells(t *testing.T) {
	var b engine.Board
	if got := len(openCells(b)); got != engine.BoardSize {
		t.Errorf("Expected %d open cells on an empty board, got %d", engine.BoardSize, got)
	}

	b[0], b[4], b[8] = engine.MarkX, engine.MarkO, engine.MarkX
	if got := len(openCells(b)); got != 6 {
		t.Errorf("Expected 6 open cells, got %d", got)
	}
}
