// Package engine provides the rules and state model for tic-tac-toe games.
//
// The engine package implements:
//   - Board representation and move validation
//   - Win and draw detection over all eight lines
//   - The Game state machine (waiting, active, finished, draw)
//   - Move application with strict turn alternation
//
// Core Types:
//
// Board is a fixed array of nine cells with value semantics: applying a move
// returns a new board and never mutates the input, so snapshots handed to
// concurrent readers stay valid.
//
// Game holds the full mutable state of one session: board, participants,
// current turn, move log, and lifecycle timestamps. All state transitions go
// through Game methods; callers are expected to serialize access per game
// (see the session package).
//
// Outcome Rules:
//
// A win is detected before a draw. A board can be simultaneously full and
// winning; the win takes precedence.
//
// Usage:
//
//	g := engine.NewGame(engine.ModeAI, "player-1")
//	if err := g.ApplyMove(4, engine.MarkX); err != nil {
//		log.Fatal(err)
//	}
package engine
