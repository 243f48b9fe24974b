package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tic-Tac-Toe Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tic-Tac-Toe Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Place three of your marks in a row (horizontally, vertically, or diagonally) before your opponent does.

AVAILABLE TOOLS:
- create_game: Create a new game (multiplayer or vs AI)
- join_game: Join a waiting multiplayer game as O
- get_game: Get the current state of a game
- list_games: List all live games
- make_move: Place your mark in a cell (0-8)
- ai_move: Ask the server AI to play its turn
- game_history: View concluded games, optionally per player
- game_instructions: Get complete game rules and board layout

Cells are numbered 0-8, left to right, top to bottom. Cell 4 is the center.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Game lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game in multiplayer or ai mode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"multiplayer", "ai"},
					"description": "Game mode: 'multiplayer' waits for a second player, 'ai' starts immediately against the server AI",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Identity of the creating player (optional, generated when omitted)",
				},
			},
			Required: []string{"mode"},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_game",
		Description: "Join a waiting multiplayer game as the O player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to join",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Identity of the joining player",
				},
			},
			Required: []string{"game_id", "player_id"},
		},
	}, c.handleJoinGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get the current state of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all live games on the server",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "make_move",
		Description: "Place your mark in a cell. Cells are numbered 0-8, left to right, top to bottom.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Identity of the moving player",
				},
				"position": map[string]interface{}{
					"type":        "integer",
					"description": "Cell to claim (0-8)",
				},
			},
			Required: []string{"game_id", "player_id", "position"},
		},
	}, c.handleMakeMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ai_move",
		Description: "Ask the server AI to play its turn in an ai-mode game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleAIMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_history",
		Description: "List concluded games, most recent first, optionally filtered by participant",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Only include games this player took part in (optional)",
				},
			},
		},
	}, c.handleGameHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get complete game rules and board layout",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
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

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mode, _ := args["mode"].(string)
	playerID, _ := args["player_id"].(string)

	body := map[string]string{"mode": mode}
	if playerID != "" {
		body["player_id"] = playerID
	}

	var game engine.Game
	err := c.apiCall("POST", "/api/games", body, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\nMode: %s\nYou are X as player %q\n\n%s",
		game.ID, game.Mode, game.PlayerX, formatGame(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	playerID, _ := args["player_id"].(string)

	var game engine.Game
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/join", gameID),
		map[string]string{"player_id": playerID}, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Joined game %s as O\n\n%s", game.ID, formatGame(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var game engine.Game
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGame(&game)), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int            `json:"count"`
		Games []*engine.Game `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Live Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		result += fmt.Sprintf("- %s (%s, %s, created %s)\n",
			g.ID, g.Mode, g.Status, g.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMakeMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	playerID, _ := args["player_id"].(string)
	positionRaw, ok := args["position"].(float64)
	if !ok {
		return mcp.NewToolResultError("position must be an integer between 0 and 8"), nil
	}
	position := int(positionRaw)

	body := map[string]interface{}{
		"player_id": playerID,
		"position":  position,
	}

	var game engine.Game
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/move", gameID), body, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Placed mark at cell %d\n\n%s", position, formatGame(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAIMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var game engine.Game
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/ai-move", gameID), nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "AI played its turn\n\n" + formatGame(&game)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerID, _ := args["player_id"].(string)

	path := "/api/history"
	if playerID != "" {
		path += "?player_id=" + playerID
	}

	var response struct {
		Count   int             `json:"count"`
		History []history.Entry `json:"history"`
	}

	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Concluded Games (%d):\n\n", response.Count)
	for _, e := range response.History {
		outcome := "draw"
		if e.Winner != "" {
			outcome = fmt.Sprintf("%s won", e.Winner)
		}
		result += fmt.Sprintf("- %s (%s): %s in %d moves, X=%s O=%s\n",
			e.GameID, e.Mode, outcome, e.Moves, e.PlayerX, e.PlayerO)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Tic-Tac-Toe Game Server - Complete Instructions

GAME OBJECTIVE:
Place three of your marks in a row before your opponent does. A full board
with no winning line is a draw.

BOARD LAYOUT:
Cells are numbered 0-8, left to right, top to bottom:

  0 | 1 | 2
 ---+---+---
  3 | 4 | 5
 ---+---+---
  6 | 7 | 8

WINNING LINES:
- Rows: 0-1-2, 3-4-5, 6-7-8
- Columns: 0-3-6, 1-4-7, 2-5-8
- Diagonals: 0-4-8, 2-4-6

GAME MODES:
- multiplayer: The creating player is X. The game waits until a second
  player joins as O, then play begins.
- ai: The creating player is X and the server AI is O. Play begins
  immediately. Use the ai_move tool after each of your moves to let the
  server respond, or rely on the server's automatic reply when playing
  over WebSocket.

RULES:
- X always moves first.
- Turns alternate strictly; moving out of turn is rejected.
- A cell can only be claimed once.
- Finished games reject all further moves.

TYPICAL FLOW (vs AI):
1. create_game with mode "ai"
2. make_move with your chosen cell
3. ai_move to let the server play
4. Repeat until the game reports finished or draw

TYPICAL FLOW (multiplayer):
1. One player: create_game with mode "multiplayer"
2. Other player: join_game with the game ID
3. Players alternate make_move calls, X first

HISTORY:
Concluded games are recorded and can be listed with game_history,
optionally filtered to a single participant.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatGame(g *engine.Game) string {
	if g == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Game: %s | Mode: %s | Status: %s | Moves: %d\n",
		g.ID, g.Mode, g.Status, len(g.Moves)))
	result.WriteString(fmt.Sprintf("X: %s | O: %s\n\n", playerLabel(g.PlayerX), playerLabel(g.PlayerO)))
	result.WriteString(formatBoard(g.Board))

	switch g.Status {
	case engine.StatusWaiting:
		result.WriteString("\nWaiting for a second player to join")
	case engine.StatusActive:
		result.WriteString(fmt.Sprintf("\nTurn: %s", g.CurrentPlayer))
	case engine.StatusFinished:
		result.WriteString(fmt.Sprintf("\nWinner: %s", g.Winner))
	case engine.StatusDraw:
		result.WriteString("\nDraw")
	}

	return result.String()
}

// formatBoard renders the 3x3 grid with cell numbers in open cells.
func formatBoard(b engine.Board) string {
	cell := func(i int) string {
		if b[i] != engine.Empty {
			return string(b[i])
		}
		return fmt.Sprintf("%d", i)
	}

	var result strings.Builder
	for row := 0; row < 3; row++ {
		base := row * 3
		result.WriteString(fmt.Sprintf(" %s | %s | %s \n", cell(base), cell(base+1), cell(base+2)))
		if row < 2 {
			result.WriteString("---+---+---\n")
		}
	}
	return result.String()
}

func playerLabel(id string) string {
	if id == "" {
		return "(open)"
	}
	return id
}
