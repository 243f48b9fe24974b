package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/playmesh/tictactoe/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Delay before the automated reply in ai games, so clients see the
	// human move land first.
	aiMoveDelay = 500 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// GameAPI is the slice of the game service the push transport needs.
type GameAPI interface {
	GetGame(ctx context.Context, gameID string) (*engine.Game, error)
	SubmitMove(ctx context.Context, gameID, playerID string, position int) (*engine.Game, error)
	RequestAIMove(ctx context.Context, gameID string) (*engine.Game, error)
}

// Message is the wire format in both directions.
type Message struct {
	Type     string       `json:"type"`
	GameID   string       `json:"game_id,omitempty"`
	PlayerID string       `json:"player_id,omitempty"`
	Position *int         `json:"position,omitempty"`
	Game     *engine.Game `json:"game,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// subscription is a membership change request handled by the hub loop.
type subscription struct {
	client *Client
	gameID string
}

// Client represents one WebSocket connection. A client may be subscribed
// to any number of games.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	games  map[string]bool // owned by the hub goroutine
	closed bool            // owned by the hub goroutine
}

// Hub tracks which connections are subscribed to which games and fans
// state-change events out to them. All membership state is confined to the
// Run goroutine.
type Hub struct {
	games GameAPI

	// Subscribed clients by game ID.
	subscribers map[string]map[*Client]bool

	broadcast   chan *Message
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
}

// NewHub creates a hub. SetGames must be called before Run; the game
// service itself is constructed with the hub as its publisher, so the two
// are wired in sequence.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]bool),
		broadcast:   make(chan *Message),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
	}
}

// SetGames injects the game service used for snapshots and inbound moves.
func (h *Hub) SetGames(games GameAPI) {
	h.games = games
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Membership is added per subscription; registration only
			// matters for the initial subscriptions queued by ServeWS.
			for gameID := range client.games {
				h.subscribeClient(client, gameID)
			}

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sub := <-h.subscribe:
			h.subscribeClient(sub.client, sub.gameID)

		case sub := <-h.unsubscribe:
			h.unsubscribeClient(sub.client, sub.gameID)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// PublishState implements the service publisher interface. It hands the
// event to the hub loop and returns immediately.
func (h *Hub) PublishState(gameID string, game *engine.Game) {
	h.broadcast <- &Message{Type: "game_updated", GameID: gameID, Game: game}
}

// ServeWS upgrades the request and starts the client pumps. A non-empty
// initialGameID subscribes the connection right away; further
// subscriptions arrive as messages.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initialGameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 256),
		games: make(map[string]bool),
	}
	if initialGameID != "" {
		client.games[initialGameID] = true
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// subscribeClient adds membership and queues the current-state snapshot.
// Duplicate subscriptions are a no-op, so a client never receives an event
// twice.
func (h *Hub) subscribeClient(client *Client, gameID string) {
	if h.subscribers[gameID] == nil {
		h.subscribers[gameID] = make(map[*Client]bool)
	}
	if h.subscribers[gameID][client] {
		return
	}
	h.subscribers[gameID][client] = true
	client.games[gameID] = true

	game, err := h.games.GetGame(context.Background(), gameID)
	if err != nil {
		client.queue(&Message{Type: "error", GameID: gameID, Error: err.Error()})
		return
	}
	client.queue(&Message{Type: "state", GameID: gameID, Game: game})

	log.Printf("Client subscribed to game %s (subscribers: %d)",
		gameID, len(h.subscribers[gameID]))
}

// unsubscribeClient removes one membership.
func (h *Hub) unsubscribeClient(client *Client, gameID string) {
	if clients, ok := h.subscribers[gameID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.subscribers, gameID)
		}
	}
	delete(client.games, gameID)
}

// unregisterClient drops a connection and all of its subscriptions.
// Idempotent: duplicate unregister events for the same client are a no-op.
func (h *Hub) unregisterClient(client *Client) {
	if client.closed {
		return
	}
	client.closed = true

	for gameID := range client.games {
		h.unsubscribeClient(client, gameID)
	}
	close(client.send)
}

// broadcastMessage delivers one event to every subscriber of its game.
// A subscriber whose buffer is full is dropped instead of blocking the
// rest.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	for client := range h.subscribers[message.GameID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer. Closing the connection makes its readPump
			// exit and funnel the cleanup through the unregister path, so
			// the send channel is only ever closed once, by the hub, after
			// the client can no longer queue.
			client.conn.Close()
		}
	}
}

// queue marshals and enqueues a message for one client, dropping it if the
// client cannot keep up.
func (c *Client) queue(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// readPump pumps messages from the WebSocket connection into the hub and
// the game service.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.queue(&Message{Type: "error", Error: "invalid message"})
			continue
		}
		c.handleMessage(&msg)
	}
}

// handleMessage dispatches one inbound message. Moves run in the read
// goroutine; the resulting state change comes back through the hub via the
// service's publisher.
func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case "subscribe":
		if msg.GameID != "" {
			c.hub.subscribe <- subscription{client: c, gameID: msg.GameID}
		}

	case "unsubscribe":
		if msg.GameID != "" {
			c.hub.unsubscribe <- subscription{client: c, gameID: msg.GameID}
		}

	case "move":
		if msg.Position == nil {
			c.queue(&Message{Type: "error", GameID: msg.GameID, Error: "position required"})
			return
		}
		game, err := c.hub.games.SubmitMove(context.Background(), msg.GameID, msg.PlayerID, *msg.Position)
		if err != nil {
			c.queue(&Message{Type: "error", GameID: msg.GameID, Error: err.Error()})
			return
		}
		c.maybeScheduleAIMove(game)

	default:
		c.queue(&Message{Type: "error", Error: "unknown message type"})
	}
}

// maybeScheduleAIMove fires the automated reply for ai games after a short
// delay, best-effort.
func (c *Client) maybeScheduleAIMove(game *engine.Game) {
	if game.Mode != engine.ModeAI || game.Status != engine.StatusActive || game.CurrentPlayer != engine.MarkO {
		return
	}
	gameID := game.ID
	go func() {
		time.Sleep(aiMoveDelay)
		if _, err := c.hub.games.RequestAIMove(context.Background(), gameID); err != nil {
			log.Printf("Automated move for game %s failed: %v", gameID, err)
		}
	}()
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
