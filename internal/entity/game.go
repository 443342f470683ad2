package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const DebugModeDisplay = "debugmode"

// Game is the stored record of one hot-seat game.
type Game struct {
	ID      string            `json:"id"`
	Board   tictactoe.Board   `json:"board"`
	Turn    tictactoe.Mark    `json:"player_turn"`
	Status  tictactoe.State   `json:"status"`
	Winner  tictactoe.Mark    `json:"winner"`
	Line    *tictactoe.Triple `json:"line,omitempty"`
	Display string            `json:"display,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id, display string, now time.Time) *Game {
	game := &Game{
		ID:        id,
		Display:   display,
		CreatedAt: now,
	}
	game.Apply(tictactoe.NewEngine(), now)

	return game
}

// Engine - rebuilds the engine from the stored board.
func (that *Game) Engine() (*tictactoe.Engine, error) {
	engine, err := tictactoe.Restore(that.Board)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", that.ID, err)
	}

	return engine, nil
}

// Apply - copies the engine state into the record.
func (that *Game) Apply(engine *tictactoe.Engine, now time.Time) {
	status := engine.Status()

	that.Board = engine.Board()
	that.Turn = engine.Turn()
	that.Status = status.State
	that.Winner = status.Winner
	that.Line = nil
	if status.State == tictactoe.Won {
		line := status.Line
		that.Line = &line
	}
	that.UpdatedAt = now
}

// GameStatus - the record's status in engine terms.
func (that *Game) GameStatus() tictactoe.Status {
	status := tictactoe.Status{State: that.Status, Winner: that.Winner}
	if that.Line != nil {
		status.Line = *that.Line
	}

	return status
}

func (that *Game) IsFinished() bool {
	return that.GameStatus().IsTerminal()
}

func (that *Game) IsDebugMode() bool {
	return strings.EqualFold(that.Display, DebugModeDisplay)
}
