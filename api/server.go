package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/playmesh/tictactoe/game/advisor"
	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/service"
	"github.com/playmesh/tictactoe/game/session"
	"github.com/playmesh/tictactoe/transport/websocket"
)

// Server is the REST API server.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game lifecycle
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}/join", s.handleJoinGame).Methods("POST")

	// Play
	api.HandleFunc("/games/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/games/{id}/ai-move", s.handleAIMove).Methods("POST")

	// History
	api.HandleFunc("/history", s.handleHistory).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors onto HTTP status codes: unknown games
// 404, non-participants 403, every other validation, turn, or capacity
// failure 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAParticipant):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrNotApplicable),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, engine.ErrGameNotActive),
		errors.Is(err, engine.ErrInvalidCell),
		errors.Is(err, engine.ErrGameFull),
		errors.Is(err, engine.ErrNotWaiting),
		errors.Is(err, advisor.ErrNoMoveAvailable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, errorStatus(err), err.Error())
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode     engine.Mode `json:"mode"`
		PlayerID string      `json:"player_id,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	game, err := s.service.CreateGame(r.Context(), req.Mode, req.PlayerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	game, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	game, err := s.service.JoinGame(r.Context(), gameID, req.PlayerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// Play Handlers

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"player_id"`
		Position *int   `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		respondError(w, http.StatusBadRequest, "player_id and position are required")
		return
	}

	game, err := s.service.SubmitMove(r.Context(), gameID, req.PlayerID, *req.Position)
	if err != nil {
		fmt.Printf("[MOVE] game=%s player=%s pos=%d status=FAIL err=%v\n",
			gameID, req.PlayerID, *req.Position, err)
		respondServiceError(w, err)
		return
	}

	// Compact server log for observability
	fmt.Printf("[MOVE] game=%s player=%s pos=%d turn=%s status=%s\n",
		gameID, req.PlayerID, *req.Position, game.CurrentPlayer, game.Status)

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	game, err := s.service.RequestAIMove(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	last := game.Moves[len(game.Moves)-1]
	fmt.Printf("[AI] game=%s pos=%d turn=%s status=%s\n",
		gameID, last.Position, game.CurrentPlayer, game.Status)

	respondJSON(w, http.StatusOK, game)
}

// History Handler

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")

	entries, err := s.service.History(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"history": entries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")

	// An initial game is optional; subscriptions can arrive as messages.
	// When given, verify it so a typo fails loudly at upgrade time.
	if gameID != "" {
		if _, err := s.service.GetGame(r.Context(), gameID); err != nil {
			respondServiceError(w, err)
			return
		}
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
