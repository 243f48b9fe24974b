// Package service orchestrates game operations for all transports.
//
// The service package implements:
//   - Game creation, joining, listing and retrieval
//   - Move submission with participant and turn validation
//   - Automated moves via the injected advisor
//   - History recording and querying
//   - State-change publication to the notification hub
//
// GameService is the single entry point shared by the REST API, the
// WebSocket transport, and the MCP tool surface. Every mutation runs inside
// the store's per-game exclusive section, so two simultaneous submissions
// for one game can never both succeed against the same board; the loser
// observes the post-move state and fails with a turn error.
//
// Ordering of checks on move submission: game exists, game is active,
// requester is a participant, it is the requester's turn, the target cell
// is legal. Each failure maps to a distinct sentinel error that transports
// translate to status codes.
//
// Conclusion side effects — the single history append and the state-change
// event — happen exactly once per game, driven by the transition that moved
// the game into a terminal status.
package service
