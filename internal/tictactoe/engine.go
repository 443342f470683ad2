package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

var ErrCorruptBoard = errors.New("board is not reachable by legal play")

// Outcome describes a successful placement.
type Outcome struct {
	Mark   Mark
	Index  int
	Status Status
}

// Engine owns one game: the board, the mark to move and the current status.
// It does no locking; the host must serialize calls on a shared instance.
type Engine struct {
	board  Board
	turn   Mark
	status Status
}

func NewEngine() *Engine {
	return &Engine{
		turn:   X,
		status: Status{State: InProgress},
	}
}

// Restore - rebuilds an engine from a stored board. The turn is derived from the
// marks on the board, so only boards reachable by alternating play are accepted.
func Restore(board Board) (*Engine, error) {
	crosses, noughts := board.Count(X), board.Count(O)
	if crosses-noughts != 0 && crosses-noughts != 1 {
		return nil, fmt.Errorf("%w: %d X marks, %d O marks", ErrCorruptBoard, crosses, noughts)
	}

	lastMoved := X
	if crosses == noughts {
		lastMoved = O
	}

	status := Evaluate(board)

	var turn Mark
	switch status.State {
	case Won:
		if status.Winner != lastMoved {
			return nil, fmt.Errorf("%w: %s wins but %s moved last", ErrCorruptBoard, status.Winner, lastMoved)
		}
		if hasLine(board, status.Winner.Opponent()) {
			return nil, fmt.Errorf("%w: both marks complete a line", ErrCorruptBoard)
		}
		turn = status.Winner
	case Drawn:
		turn = X
	default:
		turn = lastMoved.Opponent()
	}

	return &Engine{
		board:  board,
		turn:   turn,
		status: status,
	}, nil
}

// Place - puts the current mark on the cell at index.
func (that *Engine) Place(index int) (Outcome, error) {
	if that.status.IsTerminal() {
		return Outcome{}, apperror.ErrGameAlreadyOver
	}

	if !validIndex(index) {
		return Outcome{}, fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	if that.board[index] != Empty {
		return Outcome{}, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	mark := that.turn
	that.board[index] = mark
	that.status = Evaluate(that.board)

	// the turn stays with the last mover once the game is over
	if !that.status.IsTerminal() {
		that.turn = mark.Opponent()
	}

	return Outcome{
		Mark:   mark,
		Index:  index,
		Status: that.status,
	}, nil
}

func (that *Engine) Reset() {
	that.board = Board{}
	that.turn = X
	that.status = Status{State: InProgress}
}

func (that *Engine) Status() Status {
	return that.status
}

func (that *Engine) Board() Board {
	return that.board
}

func (that *Engine) Turn() Mark {
	return that.turn
}
