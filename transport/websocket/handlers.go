package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
)

const (
	errMessageInternal     = "internal error"
	errMessageGameRequired = "game_id is required"
	errMessageCellRequired = "cell is required"
)

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(c, msg.Action, "", "invalid payload")
		return err
	}

	game, err := that.uGame.NewGame(ctx, payloadReq.Display)
	if err != nil {
		that.sendError(c, msg.Action, "", errorMessage(err))
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.hub.subscribe(game.ID, c)

	reply := Reply{
		Action:  msg.Action,
		GameID:  game.ID,
		Payload: that.presenter.Response(game, that.presenter.DisplayNotice(game)),
	}

	return c.send(reply)
}

// handleState - serves game:state and game:join. Either one subscribes the session to the game.
func (that *Server) handleState(ctx context.Context, c *client, msg *Message) error {
	payloadReq, ok := that.requireGame(c, msg)
	if !ok {
		return nil
	}

	game, err := that.uGame.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		that.sendError(c, msg.Action, payloadReq.GameID, errorMessage(err))
		return ignoreExpected(err)
	}

	that.hub.subscribe(game.ID, c)

	return c.send(Reply{
		Action:  msg.Action,
		GameID:  game.ID,
		Payload: that.presenter.Response(game, nil),
	})
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	payloadReq, ok := that.requireGame(c, msg)
	if !ok {
		return nil
	}

	if payloadReq.Cell == nil {
		that.sendError(c, msg.Action, payloadReq.GameID, errMessageCellRequired)
		return nil
	}

	game, _, err := that.uGame.Place(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil && game == nil {
		that.sendError(c, msg.Action, payloadReq.GameID, errorMessage(err))
		return ignoreExpected(err)
	}

	that.hub.subscribe(game.ID, c)

	reply := Reply{
		Action:  msg.Action,
		GameID:  game.ID,
		Payload: that.presenter.Response(game, that.presenter.PlacementNotice(game, err)),
	}

	// a rejected move only concerns the session that tried it
	if err != nil {
		reply.Payload.Error = errorMessage(err)
		return c.send(reply)
	}

	that.broadcast(game.ID, reply)

	return nil
}

func (that *Server) handleReset(ctx context.Context, c *client, msg *Message) error {
	payloadReq, ok := that.requireGame(c, msg)
	if !ok {
		return nil
	}

	game, err := that.uGame.Reset(ctx, payloadReq.GameID)
	if err != nil {
		that.sendError(c, msg.Action, payloadReq.GameID, errorMessage(err))
		return ignoreExpected(err)
	}

	that.hub.subscribe(game.ID, c)
	that.broadcast(game.ID, Reply{
		Action:  msg.Action,
		GameID:  game.ID,
		Payload: that.presenter.Response(game, nil),
	})

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, c *client, msg *Message) error {
	payloadReq, ok := that.requireGame(c, msg)
	if !ok {
		return nil
	}

	if err := that.uGame.EndGame(ctx, payloadReq.GameID); err != nil {
		that.sendError(c, msg.Action, payloadReq.GameID, errorMessage(err))
		return ignoreExpected(err)
	}

	that.hub.subscribe(payloadReq.GameID, c)
	that.broadcast(payloadReq.GameID, Reply{
		Action: msg.Action,
		GameID: payloadReq.GameID,
	})
	that.hub.drop(payloadReq.GameID)

	that.logger.With("method", "handleGameLeave").Info("game ended", "gameID", payloadReq.GameID)

	return nil
}

func (that *Server) broadcast(gameID string, reply Reply) {
	log := that.logger.With("method", "broadcast", "gameID", gameID)

	for _, watcher := range that.hub.subscribers(gameID) {
		if err := watcher.send(reply); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

func (that *Server) requireGame(c *client, msg *Message) (Payload, bool) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(c, msg.Action, "", "invalid payload")
		return Payload{}, false
	}

	if payloadReq.GameID == "" {
		that.sendError(c, msg.Action, "", errMessageGameRequired)
		return Payload{}, false
	}

	return payloadReq, true
}

func (that *Server) sendError(c *client, action, gameID, errorMsg string) {
	reply := Reply{
		Action:  action,
		GameID:  gameID,
		Payload: presenter.Response{Error: errorMsg},
	}

	if err := c.send(reply); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}

func decodePayload(msg *Message) (Payload, error) {
	var payloadReq Payload
	if len(msg.Payload) == 0 {
		return payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payloadReq, nil
}

func isExpected(err error) bool {
	return errors.Is(err, apperror.ErrGameNotFound) ||
		errors.Is(err, apperror.ErrIndexOutOfRange) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameAlreadyOver)
}

// ignoreExpected - player mistakes are answered, not logged as failures.
func ignoreExpected(err error) error {
	if isExpected(err) {
		return nil
	}

	return err
}

func errorMessage(err error) string {
	if isExpected(err) {
		return err.Error()
	}

	return errMessageInternal
}
