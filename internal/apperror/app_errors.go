package apperror

import "errors"

var (
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrIndexOutOfRange = errors.New("cell index out of range")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameNotFound    = errors.New("game not found")
)
