package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type uGame interface {
	NewGame(ctx context.Context, display string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	Place(ctx context.Context, id string, index int) (*entity.Game, tictactoe.Outcome, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, c *client, message *Message) error

type Server struct {
	logger    *slog.Logger
	uGame     uGame
	presenter *presenter.Presenter
	upgrader  websocket.Upgrader
	hub       *hub

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, presenter *presenter.Presenter) *Server {
	server := &Server{
		logger:    logger.With("component", "websocket"),
		uGame:     uGame,
		presenter: presenter,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		hub: newHub(),

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionState] = server.handleState
	server.handlers[actionJoin] = server.handleState
	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionLeave] = server.handleGameLeave

	return server
}

// ServeHTTP - upgrades the connection and processes messages until the client goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)
	that.hub.add(c)
	metrics.SessionOpened()
	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go that.keepAlive(c, done)

	defer func() {
		close(done)
		that.hub.remove(c)
		metrics.SessionClosed()
		if err := conn.Close(); err != nil {
			log.Debug("failed to close connection", "error", err)
		}
		log.Info("WebSocket connection closed", "remote", r.RemoteAddr)
	}()

	that.handleMessages(r.Context(), c)
}

// Close - disconnects every open session.
func (that *Server) Close() {
	for _, c := range that.hub.all() {
		if err := c.close(); err != nil {
			that.logger.Debug("failed to close session", "error", err)
		}
	}
}

func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(c, actionError, "", "invalid message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, message.Action, "", "unknown action")
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) keepAlive(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
