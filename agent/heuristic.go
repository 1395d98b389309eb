package agent

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/pathcache"
	"quoridor/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// DefaultHeuristicPawnMoves is how often the heuristic agent keeps walking
// while the opponent's path still has plenty of blockers.
const DefaultHeuristicPawnMoves = 0.6

type heuristicAgent struct {
	follower
	pawnMoves float64
	rng       *rand.Rand
}

// NewHeuristicAgent returns an agent that walks its shortest path and places
// a wall across the opponent's path when the race looks close.
func NewHeuristicAgent(pawnMoves float64, seed uint64) Agent {
	return &heuristicAgent{pawnMoves: pawnMoves, rng: rand.New(rand.NewSource(seed))}
}

func (a *heuristicAgent) FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	tr := a.sync(position(state), updates)
	if !a.shouldMove(tr) {
		for _, wall := range goodBlockers(tr) {
			if err := tr.Probe(wall); err != nil {
				log.Debug().Err(err).Msgf("rejected wall %d", wall)
				continue
			}
			return tr.Board().WallAction(wall), metrics.SearchMetric{}
		}
	}
	return pathMove(tr), metrics.SearchMetric{}
}

func (a *heuristicAgent) shouldMove(tr *pathcache.Tracker) bool {
	b := tr.Board()
	s := tr.State()
	me := s.OnMove
	row, _ := b.CellRowCol(s.Pawns[me])
	switch {
	case s.WallsLeft[me] == 0:
		return true // No walls left
	case tr.PathLength(me) <= 1:
		return true // Winning move
	case row == b.HomeRow(me):
		return true // Still at the start
	case tr.Paths(me.Next()).Blockers.Len() > 2:
		// Enough time to block later
		return a.rng.Float64() < a.pawnMoves
	default:
		return false
	}
}

// goodBlockers lists walls that cut the opponent's path but not ours.
func goodBlockers(tr *pathcache.Tracker) []int {
	me := tr.State().OnMove
	mine := tr.Paths(me).Blockers
	theirs := tr.Paths(me.Next())
	walls := []int{}
	for _, wall := range theirs.Blockers.Slice() {
		if mine.Has(wall) || tr.Crossers().Has(wall) || theirs.GoalCut.Has(wall) {
			continue
		}
		walls = append(walls, wall)
	}
	return walls
}
