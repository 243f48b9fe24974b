// Package api provides the HTTP REST surface of the game server.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle and play
//   - History queries
//   - WebSocket upgrade handling
//   - Static file serving for the bundled client
//
// Endpoints:
//
// Games:
//   - POST /api/games             - Create a game {mode, player_id?}
//   - GET  /api/games             - List all games
//   - GET  /api/games/{id}        - Get one game
//   - POST /api/games/{id}/join   - Join a waiting game {player_id}
//   - POST /api/games/{id}/move   - Submit a move {player_id, position}
//   - POST /api/games/{id}/ai-move - Request the automated move
//
// History:
//   - GET /api/history?player_id= - Concluded games, most recent first
//
// Push:
//   - GET /ws[?game=] - WebSocket upgrade; see the websocket package for
//     the message protocol
//
// Error Handling:
//
// Errors are returned as JSON {"error": "..."} with the status code
// derived from the service error family: unknown game 404, non-participant
// 403, validation/turn/capacity failures 400.
package api
