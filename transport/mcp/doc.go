// Package mcp provides a Model Context Protocol interface to the game server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - A thin client that proxies every tool call to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_game: Create a new game in multiplayer or ai mode
//   - join_game: Join a waiting multiplayer game as O
//   - get_game: Get current game state with a board rendering
//   - list_games: List all live games
//   - make_move: Place a mark in a cell
//   - ai_move: Ask the server AI to play its turn
//   - game_history: List concluded games, optionally per player
//   - game_instructions: Get complete game rules and board layout
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// The client holds no game state of its own. Every tool call becomes an
// HTTP request against the REST API, so MCP agents and WebSocket or REST
// clients always observe the same games.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
