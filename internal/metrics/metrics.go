package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const namespace = "tictactoe"

// Placement results.
const (
	ResultOK       = "ok"
	ResultOccupied = "occupied"
	ResultRange    = "out_of_range"
	ResultOver     = "game_over"
	ResultError    = "error"
)

var (
	gamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "games",
		Name:      "created_total",
		Help:      "Total games created",
	})

	// Labels: outcome (x, o, draw)
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "games",
		Name:      "finished_total",
		Help:      "Total games finished by outcome",
	}, []string{"outcome"})

	gameResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "games",
		Name:      "resets_total",
		Help:      "Total board resets",
	})

	// Labels: result (ok, occupied, out_of_range, game_over, error)
	placements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "placements",
		Name:      "total",
		Help:      "Total placement attempts by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "sessions",
		Help:      "Open websocket sessions",
	})
)

func GameCreated() {
	gamesCreated.Inc()
}

func GameReset() {
	gameResets.Inc()
}

// GameFinished - counts a terminal status. Non-terminal statuses are ignored.
func GameFinished(status tictactoe.Status) {
	switch status.State {
	case tictactoe.Won:
		gamesFinished.WithLabelValues(outcomeLabel(status.Winner)).Inc()
	case tictactoe.Drawn:
		gamesFinished.WithLabelValues("draw").Inc()
	}
}

func Placement(result string) {
	placements.WithLabelValues(result).Inc()
}

func SessionOpened() {
	activeSessions.Inc()
}

func SessionClosed() {
	activeSessions.Dec()
}

func outcomeLabel(winner tictactoe.Mark) string {
	if winner == tictactoe.O {
		return "o"
	}

	return "x"
}
