package agent

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"
)

type pathAgent struct {
	follower
}

// NewPathAgent returns an agent that never places walls and always walks its
// shortest path to the goal row.
func NewPathAgent() Agent {
	return &pathAgent{}
}

func (a *pathAgent) FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	tr := a.sync(position(state), updates)
	return pathMove(tr), metrics.SearchMetric{}
}
