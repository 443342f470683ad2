package tictactoe

import (
	"errors"
	"fmt"
)

type State uint8

const (
	InProgress State = iota
	Won
	Drawn
)

var ErrUnknownState = errors.New("unknown game state")

func (that State) String() string {
	switch that {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

func (that State) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress", "":
		*that = InProgress
	case "won":
		*that = Won
	case "drawn":
		*that = Drawn
	default:
		return fmt.Errorf("%w: %q", ErrUnknownState, text)
	}

	return nil
}

// Status is the outcome of a board. Winner and Line are only set when State is Won.
type Status struct {
	State  State
	Winner Mark
	Line   Triple
}

func (that Status) IsTerminal() bool {
	return that.State == Won || that.State == Drawn
}

func (that Status) String() string {
	switch that.State {
	case Won:
		return fmt.Sprintf("won(%s, %v)", that.Winner, that.Line)
	case Drawn:
		return "drawn"
	default:
		return "in_progress"
	}
}

// Evaluate - computes the status of a board from its contents alone.
// The first completed triple in Triples order is reported.
func Evaluate(board Board) Status {
	for _, triple := range Triples {
		a, b, c := board[triple[0]], board[triple[1]], board[triple[2]]
		if a != Empty && a == b && b == c {
			return Status{State: Won, Winner: a, Line: triple}
		}
	}

	if board.IsFull() {
		return Status{State: Drawn}
	}

	return Status{State: InProgress}
}

func hasLine(board Board, mark Mark) bool {
	for _, triple := range Triples {
		if board[triple[0]] == mark && board[triple[1]] == mark && board[triple[2]] == mark {
			return true
		}
	}

	return false
}
