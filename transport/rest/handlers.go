package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var errInvalidIndex = errors.New("cell index must be a number")

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	Place(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	NewGame(ctx context.Context, display string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	Place(ctx context.Context, id string, index int) (*entity.Game, tictactoe.Outcome, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error
}

type handlers struct {
	logger       *slog.Logger
	gameUseCase  gameUseCase
	presenter    *presenter.Presenter
	displayParam string
}

// NewHandlers - displayParam is the query parameter carrying the display value on game creation.
func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase, presenter *presenter.Presenter, displayParam string) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		gameUseCase:  gameUseCase,
		presenter:    presenter,
		displayParam: displayParam,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.NewGame(r.Context(), r.URL.Query().Get(that.displayParam))
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, that.presenter.Response(game, that.presenter.DisplayNotice(game)))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, that.presenter.Response(game, nil))
}

func (that *handlers) Place(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		that.writeError(w, "Place", errInvalidIndex)
		return
	}

	game, _, err := that.gameUseCase.Place(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil && game == nil {
		that.writeError(w, "Place", err)
		return
	}

	// rejected moves still show the board with the notice
	response := that.presenter.Response(game, that.presenter.PlacementNotice(game, err))
	status := http.StatusOK
	if err != nil {
		response.Error = err.Error()
		status = statusFromError(err)
	}

	that.writeJSON(w, status, response)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Reset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, that.presenter.Response(game, nil))
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFromError(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		that.logger.With("method", method).Error("request failed", "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, presenter.Response{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIndexOutOfRange), errors.Is(err, errInvalidIndex):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameAlreadyOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
