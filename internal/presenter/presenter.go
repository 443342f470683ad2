package presenter

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const winClass = "win"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

const (
	noticeCellTaken    = "That cell is already taken!"
	noticeGameFinished = "Game finished! Click Reset to play again."
	noticeDraw         = "Game Over: Draw!"
	noticeDebugMode    = "Debug Mode Activated via URL Parameter."
)

type Cell struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Classes []string `json:"classes,omitempty"`
}

// View is what a board page shows for one game.
type View struct {
	Cells     [tictactoe.BoardSize]Cell `json:"cells"`
	Highlight []int                     `json:"highlight,omitempty"`
	Status    string                    `json:"status"`
	Active    bool                      `json:"active"`
	Display   string                    `json:"display,omitempty"`
}

// Notice is a message for the player. HideAfter is in milliseconds; persistent notices have none.
type Notice struct {
	Text       string   `json:"text"`
	Severity   Severity `json:"severity"`
	Persistent bool     `json:"persistent"`
	HideAfter  int64    `json:"hide_after,omitempty"`
}

type Presenter struct {
	noticeTimeout time.Duration
}

func New(noticeTimeout time.Duration) *Presenter {
	return &Presenter{noticeTimeout: noticeTimeout}
}

// View - renders the board, the winning line and the status line of a game.
func (that *Presenter) View(game *entity.Game) View {
	status := game.GameStatus()

	view := View{
		Status:  StatusLine(status, game.Turn),
		Active:  !status.IsTerminal(),
		Display: game.Display,
	}

	for i, mark := range game.Board {
		cell := Cell{Index: i, Text: mark.String()}
		if mark != tictactoe.Empty {
			cell.Classes = []string{mark.String()}
		}
		view.Cells[i] = cell
	}

	if status.State == tictactoe.Won {
		view.Highlight = status.Line[:]
		for _, i := range status.Line {
			view.Cells[i].Classes = append(view.Cells[i].Classes, winClass)
		}
	}

	return view
}

func StatusLine(status tictactoe.Status, turn tictactoe.Mark) string {
	switch status.State {
	case tictactoe.Won:
		return fmt.Sprintf("Player %s Wins!", status.Winner)
	case tictactoe.Drawn:
		return "It's a Draw!"
	default:
		return fmt.Sprintf("Player %s's Turn", turn)
	}
}

// PlacementNotice - the notice that follows a placement attempt, nil when there is nothing to say.
func (that *Presenter) PlacementNotice(game *entity.Game, err error) *Notice {
	switch {
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return that.notice(game, noticeGameFinished, SeverityInfo)
	case errors.Is(err, apperror.ErrCellOccupied):
		return that.notice(game, noticeCellTaken, SeverityError)
	case err != nil:
		return nil
	}

	switch status := game.GameStatus(); status.State {
	case tictactoe.Won:
		return that.notice(game, fmt.Sprintf("Congratulations, Player %s won!", status.Winner), SeverityInfo)
	case tictactoe.Drawn:
		return that.notice(game, noticeDraw, SeverityInfo)
	default:
		return nil
	}
}

// DisplayNotice - announces debug mode when the display parameter asks for it.
func (that *Presenter) DisplayNotice(game *entity.Game) *Notice {
	if !game.IsDebugMode() {
		return nil
	}

	return that.notice(game, noticeDebugMode, SeverityInfo)
}

// notices stay on screen once the game is over
func (that *Presenter) notice(game *entity.Game, text string, severity Severity) *Notice {
	notice := &Notice{
		Text:     text,
		Severity: severity,
	}

	if game.IsFinished() {
		notice.Persistent = true
		return notice
	}

	notice.HideAfter = that.noticeTimeout.Milliseconds()

	return notice
}

// Response is the body both transports send for a game.
type Response struct {
	Game   *entity.Game `json:"game,omitempty"`
	View   *View        `json:"view,omitempty"`
	Notice *Notice      `json:"notice,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func (that *Presenter) Response(game *entity.Game, notice *Notice) Response {
	if game == nil {
		return Response{Notice: notice}
	}

	view := that.View(game)

	return Response{
		Game:   game,
		View:   &view,
		Notice: notice,
	}
}
