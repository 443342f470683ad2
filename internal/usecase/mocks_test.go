package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memoryGameRepo keeps copies so callers never share records.
type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string]entity.Game
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string]entity.Game)}
}

func (m *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.games[game.ID] = copyGame(game)
	return nil
}

func (m *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	game, ok := m.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	stored := copyGame(&game)
	return &stored, nil
}

func (m *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func copyGame(game *entity.Game) entity.Game {
	c := *game
	if game.Line != nil {
		line := *game.Line
		c.Line = &line
	}
	return c
}
