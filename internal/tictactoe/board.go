package tictactoe

import (
	"errors"
	"fmt"
)

// Mark is the content of a cell: empty or one of the two player symbols.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

const BoardSize = 9

var ErrUnknownMark = errors.New("unknown mark")

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X", "x":
		*that = X
	case "O", "o":
		*that = O
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, text)
	}

	return nil
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// Triple is a set of three cell indexes whose occupation by one mark wins the game.
type Triple [3]int

// Triples - rows, then columns, then the two diagonals. Evaluate depends on this order.
var Triples = [8]Triple{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Count - number of cells holding the given mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}

func validIndex(index int) bool {
	return index >= 0 && index < BoardSize
}
