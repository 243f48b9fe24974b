// Package websocket provides the push transport for game state changes.
//
// The websocket package implements:
//   - Real-time state fan-out to subscribed connections
//   - Game-scoped subscription membership with idempotent subscribe
//   - Snapshot delivery on subscribe so late joiners converge immediately
//   - Move submission over the persistent connection
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model. A single Hub goroutine owns all
// membership state; clients interact with it only through channels, so no
// membership map is ever touched from two goroutines. Each connection runs
// a read pump and a write pump goroutine, the standard gorilla/websocket
// arrangement.
//
// Message Protocol (JSON, one message per frame):
//
// Incoming:
//   - {"type": "subscribe", "game_id": "..."}
//   - {"type": "unsubscribe", "game_id": "..."}
//   - {"type": "move", "game_id": "...", "player_id": "...", "position": 4}
//
// Outgoing:
//   - {"type": "state", "game_id": "...", "game": {...}}        on subscribe
//   - {"type": "game_updated", "game_id": "...", "game": {...}} on change
//   - {"type": "error", "game_id": "...", "error": "..."}
//
// Delivery is best-effort: a subscriber whose send buffer is full is
// dropped rather than allowed to block delivery to others. Disconnection
// removes the connection from all subscriptions.
//
// In ai games, a successful move over this transport schedules the
// automated reply after a short delay, so a subscribed client sees both
// updates without polling.
package websocket
