package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/session"
)

// stubGames implements GameAPI over a bare store, without the full service.
type stubGames struct {
	store *session.Store
}

func (s *stubGames) GetGame(ctx context.Context, gameID string) (*engine.Game, error) {
	return s.store.Get(gameID)
}

func (s *stubGames) SubmitMove(ctx context.Context, gameID, playerID string, position int) (*engine.Game, error) {
	return s.store.WithExclusive(gameID, func(g *engine.Game) error {
		mark, ok := g.MarkOf(playerID)
		if !ok {
			return engine.ErrWrongTurn
		}
		return g.ApplyMove(position, mark)
	})
}

func (s *stubGames) RequestAIMove(ctx context.Context, gameID string) (*engine.Game, error) {
	return s.store.WithExclusive(gameID, func(g *engine.Game) error {
		for pos, cell := range g.Board {
			if cell == engine.Empty {
				return g.ApplyMove(pos, engine.MarkO)
			}
		}
		return engine.ErrGameNotActive
	})
}

func newTestHub() (*Hub, *session.Store) {
	store := session.NewStore()
	hub := NewHub()
	hub.SetGames(&stubGames{store: store})
	return hub, store
}

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:   hub,
		send:  make(chan []byte, 256),
		games: make(map[string]bool),
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.subscribers == nil {
		t.Error("Hub subscribers map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels not initialized")
	}
}

func TestHubSubscribe(t *testing.T) {
	hub, store := newTestHub()
	g := store.Create(engine.ModeAI, "alice")
	client := newTestClient(hub)

	hub.subscribeClient(client, g.ID)

	t.Run("membership added", func(t *testing.T) {
		if !hub.subscribers[g.ID][client] {
			t.Error("Client was not subscribed")
		}
		if !client.games[g.ID] {
			t.Error("Client subscription set not updated")
		}
	})

	t.Run("snapshot delivered", func(t *testing.T) {
		select {
		case data := <-client.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("Invalid snapshot message: %v", err)
			}
			if msg.Type != "state" || msg.Game == nil || msg.Game.ID != g.ID {
				t.Errorf("Unexpected snapshot: %+v", msg)
			}
		default:
			t.Fatal("No snapshot queued on subscribe")
		}
	})

	t.Run("duplicate subscribe is idempotent", func(t *testing.T) {
		hub.subscribeClient(client, g.ID)
		if len(hub.subscribers[g.ID]) != 1 {
			t.Errorf("Expected 1 subscriber, got %d", len(hub.subscribers[g.ID]))
		}
		// No second snapshot either.
		select {
		case <-client.send:
			t.Error("Duplicate subscribe queued another message")
		default:
		}

		// One broadcast yields exactly one delivery.
		game, _ := store.Get(g.ID)
		hub.broadcastMessage(&Message{Type: "game_updated", GameID: g.ID, Game: game})
		if got := len(client.send); got != 1 {
			t.Errorf("Expected exactly one delivery, got %d", got)
		}
	})

	t.Run("unknown game yields error message", func(t *testing.T) {
		other := newTestClient(hub)
		hub.subscribeClient(other, "missing")
		select {
		case data := <-other.send:
			var msg Message
			json.Unmarshal(data, &msg)
			if msg.Type != "error" {
				t.Errorf("Expected error message, got %+v", msg)
			}
		default:
			t.Fatal("No message queued for unknown game")
		}
	})
}

func TestHubBroadcastFanOut(t *testing.T) {
	hub, store := newTestHub()
	g := store.Create(engine.ModeAI, "alice")

	clients := []*Client{newTestClient(hub), newTestClient(hub), newTestClient(hub)}
	for _, c := range clients {
		hub.subscribeClient(c, g.ID)
		<-c.send // drain snapshot
	}

	// A client subscribed to another game must not receive the event.
	other := store.Create(engine.ModeAI, "bob")
	bystander := newTestClient(hub)
	hub.subscribeClient(bystander, other.ID)
	<-bystander.send

	game, _ := store.Get(g.ID)
	hub.broadcastMessage(&Message{Type: "game_updated", GameID: g.ID, Game: game})

	for i, c := range clients {
		if len(c.send) != 1 {
			t.Errorf("Client %d expected 1 message, got %d", i, len(c.send))
		}
	}
	if len(bystander.send) != 0 {
		t.Error("Bystander received an event for a game it never subscribed to")
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub, store := newTestHub()
	g := store.Create(engine.ModeAI, "alice")
	client := newTestClient(hub)

	hub.subscribeClient(client, g.ID)
	<-client.send
	hub.unsubscribeClient(client, g.ID)

	game, _ := store.Get(g.ID)
	hub.broadcastMessage(&Message{Type: "game_updated", GameID: g.ID, Game: game})

	if len(client.send) != 0 {
		t.Error("Unsubscribed client still received events")
	}
	if _, ok := hub.subscribers[g.ID]; ok {
		t.Error("Empty subscriber set not cleaned up")
	}
}

func TestHubUnregisterRemovesAllSubscriptions(t *testing.T) {
	hub, store := newTestHub()
	g1 := store.Create(engine.ModeAI, "alice")
	g2 := store.Create(engine.ModeAI, "alice")
	client := newTestClient(hub)

	hub.subscribeClient(client, g1.ID)
	hub.subscribeClient(client, g2.ID)
	hub.unregisterClient(client)

	if hub.subscribers[g1.ID][client] || hub.subscribers[g2.ID][client] {
		t.Error("Unregistered client still has subscriptions")
	}

	// A second unregister for the same client must not panic.
	hub.unregisterClient(client)
}

func TestHubEndToEnd(t *testing.T) {
	hub, store := newTestHub()
	go hub.Run()

	g := store.Create(engine.ModeAI, "alice")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "")
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	readMessage := func() Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON failed: %v", err)
		}
		return msg
	}

	// Subscribe and receive the snapshot.
	if err := conn.WriteJSON(Message{Type: "subscribe", GameID: g.ID}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if msg := readMessage(); msg.Type != "state" || msg.Game.ID != g.ID {
		t.Fatalf("Expected state snapshot, got %+v", msg)
	}

	// A published state change reaches the subscriber.
	game, _ := store.Get(g.ID)
	hub.PublishState(g.ID, game)
	if msg := readMessage(); msg.Type != "game_updated" {
		t.Fatalf("Expected game_updated, got %+v", msg)
	}

	// An illegal inbound move yields an error message, not silence.
	pos := 42
	if err := conn.WriteJSON(Message{Type: "move", GameID: g.ID, PlayerID: "alice", Position: &pos}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if msg := readMessage(); msg.Type != "error" {
		t.Fatalf("Expected error message, got %+v", msg)
	}
}
