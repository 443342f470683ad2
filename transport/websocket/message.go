package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
)

const (
	actionNewGame = "game:new"
	actionState   = "game:state"
	actionJoin    = "game:join"
	actionTurn    = "game:turn"
	actionReset   = "game:reset"
	actionLeave   = "game:leave"
	actionError   = "error"
)

// Message is what a client sends: an action and its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID  string `json:"game_id,omitempty"`
	Cell    *int   `json:"cell,omitempty"`
	Display string `json:"display,omitempty"`
}

// Reply is what the server sends back or broadcasts for an action.
type Reply struct {
	Action  string             `json:"action"`
	GameID  string             `json:"game_id,omitempty"`
	Payload presenter.Response `json:"payload"`
}
