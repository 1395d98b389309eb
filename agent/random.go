package agent

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"

	"golang.org/x/exp/rand"
)

// DefaultPawnMoveProbability is how often the random agent moves its pawn
// while it still has walls.
const DefaultPawnMoveProbability = 1.0 / 3

type randomAgent struct {
	pawnMoves float64
	rng       *rand.Rand
}

// NewRandomAgent returns an agent that moves its pawn with probability
// pawnMoves and otherwise places a uniformly chosen legal wall.
func NewRandomAgent(pawnMoves float64, seed uint64) Agent {
	return &randomAgent{pawnMoves: pawnMoves, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State, _ []searcher.Segment) (game.Action, metrics.SearchMetric) {
	p := position(state)
	b := p.Board

	legal := b.LegalActions(p.GameState)
	walls, pawns := []game.Action{}, []game.Action{}
	for _, action := range legal {
		if b.IsWallAction(action) {
			walls = append(walls, action)
		} else {
			pawns = append(pawns, action)
		}
	}

	pick := pawns
	if len(pawns) == 0 || (len(walls) > 0 && a.rng.Float64() >= a.pawnMoves) {
		pick = walls
	}
	return pick[a.rng.Intn(len(pick))], metrics.SearchMetric{}
}
