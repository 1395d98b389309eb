package agent

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"
	"quoridor/utils"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	if len(policy) == 0 {
		return state.LegalMoves()[0], metric
	}
	return findMax(policy), metric
}

// findMax picks the most visited move, the lowest action on ties.
func findMax(policy map[game.Action]float64) game.Action {
	move, _ := utils.ArgMax(policy)
	return move
}
