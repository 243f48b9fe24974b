// Package session provides concurrency-safe game storage for the server.
//
// The session package implements:
//   - Thread-safe game registry keyed by identifier
//   - Collision-resistant game ID generation
//   - Per-game exclusive mutation sections
//   - A pluggable persistence interface with a JSON file implementation
//   - A write-behind saver that keeps persistence off the request path
//
// Core Types:
//
// Store is the single authority over game state. All mutation goes through
// WithExclusive, which serializes concurrent transitions on one game while
// leaving unrelated games fully parallel. Reads return deep copies, so
// callers never observe a game mid-transition.
//
// Game Identifiers:
//
// Games are keyed by random UUIDs. The 128 bits of randomness make
// collisions a non-concern without a uniqueness check.
//
// Persistence:
//
// The in-memory registry is authoritative. The Saver goroutine snapshots
// the registry and the history ledger to disk after mutations, best-effort:
// a failed write is logged and never rolls back or blocks game state.
//
// Usage:
//
//	store := session.NewStore()
//	g := store.Create(engine.ModeMultiplayer, "alice")
//
//	updated, err := store.WithExclusive(g.ID, func(g *engine.Game) error {
//		return g.ApplyMove(4, engine.MarkX)
//	})
package session
