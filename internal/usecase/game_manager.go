package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager hosts engines for stored games. Mutations of one game are serialized.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	locks    *keyedMutex

	now   func() time.Time
	newID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		locks:    newKeyedMutex(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// NewGame - creates and stores a game with an empty board. display is kept as given.
func (that *GameManager) NewGame(ctx context.Context, display string) (*entity.Game, error) {
	game := entity.NewGame(that.newID(), display, that.now())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	metrics.GameCreated()
	that.logger.With("method", "NewGame").Info("game created", "gameID", game.ID, "display", game.Display)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// Place - puts the mark to move on cell index. When the engine rejects the move
// the unchanged game is returned together with the error.
func (that *GameManager) Place(ctx context.Context, id string, index int) (*entity.Game, tictactoe.Outcome, error) {
	log := that.logger.With("method", "Place", "gameID", id, "cell", index)

	unlock := that.locks.Lock(id)
	defer unlock()

	game, engine, err := that.load(ctx, id)
	if err != nil {
		metrics.Placement(metrics.ResultError)
		return nil, tictactoe.Outcome{}, err
	}

	outcome, err := engine.Place(index)
	if err != nil {
		metrics.Placement(placementResult(err))
		log.Debug("placement rejected", "error", err)
		return game, tictactoe.Outcome{}, fmt.Errorf("failed to place: %w", err)
	}

	game.Apply(engine, that.now())
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		metrics.Placement(metrics.ResultError)
		return nil, tictactoe.Outcome{}, fmt.Errorf("failed to update game: %w", err)
	}

	metrics.Placement(metrics.ResultOK)
	if outcome.Status.IsTerminal() {
		metrics.GameFinished(outcome.Status)
		log.Info("game finished", "status", outcome.Status.String())
	}

	return game, outcome, nil
}

// Reset - clears the board of a stored game. The display parameter survives.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Game, error) {
	unlock := that.locks.Lock(id)
	defer unlock()

	game, engine, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	engine.Reset()
	game.Apply(engine, that.now())

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	metrics.GameReset()
	that.logger.With("method", "Reset").Info("game reset", "gameID", id)

	return game, nil
}

func (that *GameManager) EndGame(ctx context.Context, id string) error {
	unlock := that.locks.Lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.With("method", "EndGame").Info("game deleted", "gameID", id)

	return nil
}

func (that *GameManager) load(ctx context.Context, id string) (*entity.Game, *tictactoe.Engine, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	engine, err := game.Engine()
	if err != nil {
		that.logger.With("method", "load").Error("stored board is corrupt", "gameID", id, "error", err)
		return nil, nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return game, engine, nil
}

func placementResult(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return metrics.ResultOccupied
	case errors.Is(err, apperror.ErrIndexOutOfRange):
		return metrics.ResultRange
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return metrics.ResultOver
	default:
		return metrics.ResultError
	}
}
