package presenter

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const noticeTimeout = 3 * time.Second

func playedGame(t *testing.T, display string, cells ...int) *entity.Game {
	t.Helper()

	now := time.Now()
	game := entity.NewGame("123", display, now)
	engine := tictactoe.NewEngine()
	for _, cell := range cells {
		_, err := engine.Place(cell)
		require.NoError(t, err)
	}
	game.Apply(engine, now)

	return game
}

func TestPresenter_View(t *testing.T) {
	p := New(noticeTimeout)

	t.Run("New game", func(t *testing.T) {
		// Given: a new game
		game := playedGame(t, "")

		// When: it is rendered
		view := p.View(game)

		// Then: all cells are empty and X is to move
		assert.Equal(t, "Player X's Turn", view.Status)
		assert.True(t, view.Active)
		assert.Empty(t, view.Highlight)
		for i, cell := range view.Cells {
			assert.Equal(t, Cell{Index: i}, cell)
		}
	})

	t.Run("Marks and turn", func(t *testing.T) {
		// Given: X played 4 and O played 0
		game := playedGame(t, "", 4, 0)

		// When: it is rendered
		view := p.View(game)

		// Then: the marks are shown with their classes
		assert.Equal(t, Cell{Index: 4, Text: "X", Classes: []string{"X"}}, view.Cells[4])
		assert.Equal(t, Cell{Index: 0, Text: "O", Classes: []string{"O"}}, view.Cells[0])
		assert.Equal(t, "Player X's Turn", view.Status)
	})

	t.Run("Winning line is highlighted", func(t *testing.T) {
		// Given: O wins on the anti-diagonal
		game := playedGame(t, "", 0, 2, 1, 4, 8, 6)

		// When: it is rendered
		view := p.View(game)

		// Then: the winning cells carry the win class and the board is inactive
		assert.Equal(t, "Player O Wins!", view.Status)
		assert.False(t, view.Active)
		assert.Equal(t, []int{2, 4, 6}, view.Highlight)
		for _, i := range []int{2, 4, 6} {
			assert.Equal(t, []string{"O", "win"}, view.Cells[i].Classes)
		}
		assert.Equal(t, []string{"X"}, view.Cells[0].Classes)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a drawn game
		game := playedGame(t, "", 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: it is rendered
		view := p.View(game)

		// Then: the status line reports the draw
		assert.Equal(t, "It's a Draw!", view.Status)
		assert.False(t, view.Active)
		assert.Empty(t, view.Highlight)
	})

	t.Run("Display parameter is echoed", func(t *testing.T) {
		// Given: a game created with a display parameter
		game := playedGame(t, "hello world")

		// When: it is rendered
		view := p.View(game)

		// Then: the parameter is shown unmodified
		assert.Equal(t, "hello world", view.Display)
	})
}

func TestPresenter_PlacementNotice(t *testing.T) {
	p := New(noticeTimeout)

	t.Run("Nothing to say on a normal move", func(t *testing.T) {
		// Given: a game in progress
		game := playedGame(t, "", 4)

		// Then: no notice
		assert.Nil(t, p.PlacementNotice(game, nil))
	})

	t.Run("Occupied cell is a transient error", func(t *testing.T) {
		// Given: a game in progress
		game := playedGame(t, "", 4)

		// When: the placement failed on an occupied cell
		notice := p.PlacementNotice(game, fmt.Errorf("%w: cell 4", apperror.ErrCellOccupied))

		// Then: an error notice hides after the timeout
		assert.Equal(t, &Notice{
			Text:      "That cell is already taken!",
			Severity:  SeverityError,
			HideAfter: 3000,
		}, notice)
	})

	t.Run("Win is announced persistently", func(t *testing.T) {
		// Given: X won
		game := playedGame(t, "", 0, 4, 1, 5, 2)

		// When: the winning placement succeeded
		notice := p.PlacementNotice(game, nil)

		// Then: the congratulation stays on screen
		assert.Equal(t, &Notice{
			Text:       "Congratulations, Player X won!",
			Severity:   SeverityInfo,
			Persistent: true,
		}, notice)
	})

	t.Run("Draw is announced persistently", func(t *testing.T) {
		// Given: a drawn game
		game := playedGame(t, "", 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: the last placement succeeded
		notice := p.PlacementNotice(game, nil)

		// Then: the draw notice stays on screen
		require.NotNil(t, notice)
		assert.Equal(t, "Game Over: Draw!", notice.Text)
		assert.True(t, notice.Persistent)
	})

	t.Run("Placement after the end", func(t *testing.T) {
		// Given: X won
		game := playedGame(t, "", 0, 4, 1, 5, 2)

		// When: another placement was rejected
		notice := p.PlacementNotice(game, apperror.ErrGameAlreadyOver)

		// Then: the player is told to reset
		assert.Equal(t, &Notice{
			Text:       "Game finished! Click Reset to play again.",
			Severity:   SeverityInfo,
			Persistent: true,
		}, notice)
	})

	t.Run("Out of range has no notice", func(t *testing.T) {
		// Given: a game in progress
		game := playedGame(t, "")

		// Then: the index error is left to the transport
		assert.Nil(t, p.PlacementNotice(game, apperror.ErrIndexOutOfRange))
	})
}

func TestPresenter_DisplayNotice(t *testing.T) {
	p := New(noticeTimeout)

	t.Run("Debug mode", func(t *testing.T) {
		// Given: a game opened with url=DebugMode
		game := playedGame(t, "DebugMode")

		// When: the display notice is built
		notice := p.DisplayNotice(game)

		// Then: debug mode is announced
		assert.Equal(t, &Notice{
			Text:      "Debug Mode Activated via URL Parameter.",
			Severity:  SeverityInfo,
			HideAfter: 3000,
		}, notice)
	})

	t.Run("Any other value", func(t *testing.T) {
		// Given: a game opened with another parameter
		game := playedGame(t, "debug")

		// Then: nothing is announced
		assert.Nil(t, p.DisplayNotice(game))
	})
}

func TestPresenter_Response(t *testing.T) {
	p := New(noticeTimeout)

	t.Run("Game with notice", func(t *testing.T) {
		// Given: a game in debug mode
		game := playedGame(t, "debugmode")

		// When: the response is built
		response := p.Response(game, p.DisplayNotice(game))

		// Then: it carries the game, its view and the notice
		assert.Same(t, game, response.Game)
		require.NotNil(t, response.View)
		assert.Equal(t, p.View(game), *response.View)
		require.NotNil(t, response.Notice)
		assert.Empty(t, response.Error)
	})

	t.Run("No game", func(t *testing.T) {
		// When: the response is built without a game
		response := p.Response(nil, nil)

		// Then: it is empty
		assert.Equal(t, Response{}, response)
	})
}
