package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCell reports a move target outside the board or on an
	// occupied cell.
	ErrInvalidCell = errors.New("invalid cell")
)

// lines are the eight winning triples: three rows, three columns, two
// diagonals.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Validate checks that position is a legal move target on the board.
func Validate(b Board, position int) error {
	if position < 0 || position >= BoardSize {
		return fmt.Errorf("%w: position %d out of range", ErrInvalidCell, position)
	}
	if b[position] != Empty {
		return fmt.Errorf("%w: position %d already taken", ErrInvalidCell, position)
	}
	return nil
}

// Apply returns a copy of the board with the mark placed at position.
// The input board is never mutated.
func Apply(b Board, position int, m Mark) (Board, error) {
	if err := Validate(b, position); err != nil {
		return b, err
	}
	b[position] = m
	return b, nil
}

// Winner returns the mark occupying a full line, or Empty when no line is
// complete.
func Winner(b Board) Mark {
	for _, line := range lines {
		a := b[line[0]]
		if a != Empty && a == b[line[1]] && a == b[line[2]] {
			return a
		}
	}
	return Empty
}

// IsFull reports whether every cell is occupied.
func IsFull(b Board) bool {
	for _, cell := range b {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Outcome evaluates the terminal state of a board. The win check runs
// before the fullness check: a full board with a completed line is a win,
// not a draw.
func Outcome(b Board) (winner Mark, draw bool) {
	if w := Winner(b); w != Empty {
		return w, false
	}
	return Empty, IsFull(b)
}
