package engine

import "time"

// Mark identifies the symbol a participant places on the board.
// The zero value Empty marks an unoccupied cell.
type Mark string

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// Opponent returns the other playing mark. Empty maps to Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	}
	return Empty
}

// Mode selects how the second slot of a game is filled.
type Mode string

const (
	// ModeMultiplayer waits for a second human participant to join.
	ModeMultiplayer Mode = "multiplayer"
	// ModeAI binds the second slot to the automated participant immediately.
	ModeAI Mode = "ai"
)

// AIPlayerID is the sentinel identity bound to slot O in ModeAI games.
const AIPlayerID = "ai"

// Status is the lifecycle state of a game. Transitions only move forward:
// waiting -> active -> finished|draw (ModeAI games start active).
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusDraw     Status = "draw"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Board is the ordered sequence of nine cells, row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Being an array, Board copies by value; Apply returns a new Board.
type Board [BoardSize]Mark

// Move is one entry of a game's move log.
type Move struct {
	Position  int       `json:"position"`
	Player    Mark      `json:"player"`
	Timestamp time.Time `json:"timestamp"`
}

// Game is the complete state of one tic-tac-toe session.
type Game struct {
	ID            string    `json:"id"`
	Mode          Mode      `json:"mode"`
	Status        Status    `json:"status"`
	Board         Board     `json:"board"`
	CurrentPlayer Mark      `json:"current_player"`
	PlayerX       string    `json:"player_x,omitempty"`
	PlayerO       string    `json:"player_o,omitempty"`
	Winner        Mark      `json:"winner,omitempty"`
	Moves         []Move    `json:"moves"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	FinishedAt    time.Time `json:"finished_at,omitzero"`
}
