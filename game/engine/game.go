package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrGameNotActive = errors.New("game is not active")
	ErrWrongTurn     = errors.New("not this player's turn")
	ErrGameFull      = errors.New("game already has two players")
	ErrNotWaiting    = errors.New("game is not waiting for players")
)

// NewGame initializes a game in its starting state. ModeAI games bind slot O
// to the automated participant and begin active; multiplayer games wait for
// a second participant.
func NewGame(id string, mode Mode, playerX string) *Game {
	now := time.Now()
	g := &Game{
		ID:            id,
		Mode:          mode,
		Status:        StatusWaiting,
		CurrentPlayer: MarkX,
		PlayerX:       playerX,
		Moves:         []Move{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if mode == ModeAI {
		g.PlayerO = AIPlayerID
		g.Status = StatusActive
	}
	return g
}

// Clone returns a deep copy of the game. Board is an array and copies by
// value; only the move log needs an explicit copy.
func (g *Game) Clone() *Game {
	c := *g
	c.Moves = make([]Move, len(g.Moves))
	copy(c.Moves, g.Moves)
	return &c
}

// MarkOf resolves a participant identity to its mark. It returns false for
// identities bound to neither slot.
func (g *Game) MarkOf(playerID string) (Mark, bool) {
	switch {
	case playerID != "" && playerID == g.PlayerX:
		return MarkX, true
	case playerID != "" && playerID == g.PlayerO:
		return MarkO, true
	}
	return Empty, false
}

// Concluded reports whether the game reached a terminal status.
func (g *Game) Concluded() bool {
	return g.Status == StatusFinished || g.Status == StatusDraw
}

// ApplyMove places m at position and advances the state machine: it appends
// to the move log, evaluates the outcome, and either concludes the game or
// flips the turn. The receiver is mutated only when the whole transition
// succeeds.
func (g *Game) ApplyMove(position int, m Mark) error {
	if g.Status != StatusActive {
		return fmt.Errorf("%w: status %s", ErrGameNotActive, g.Status)
	}
	if m != g.CurrentPlayer {
		return fmt.Errorf("%w: expected %s", ErrWrongTurn, g.CurrentPlayer)
	}

	board, err := Apply(g.Board, position, m)
	if err != nil {
		return err
	}

	now := time.Now()
	g.Board = board
	g.Moves = append(g.Moves, Move{Position: position, Player: m, Timestamp: now})

	winner, draw := Outcome(board)
	switch {
	case winner != Empty:
		g.Winner = winner
		g.Status = StatusFinished
		g.FinishedAt = now
	case draw:
		g.Status = StatusDraw
		g.FinishedAt = now
	default:
		g.CurrentPlayer = g.CurrentPlayer.Opponent()
	}
	g.UpdatedAt = now
	return nil
}

// Join binds playerID to slot O and activates the game.
func (g *Game) Join(playerID string) error {
	if g.PlayerO != "" {
		return ErrGameFull
	}
	if g.Status != StatusWaiting {
		return ErrNotWaiting
	}
	g.PlayerO = playerID
	g.Status = StatusActive
	g.UpdatedAt = time.Now()
	return nil
}
