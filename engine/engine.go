package engine

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
)

type Engine interface {
	// Run starts a game till there's a winner or a max number of moves is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
	// Start and History describe the last game for replay and saving
	Start() game.GameState
	History() []game.Action
}
