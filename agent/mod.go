package agent

import (
	"fmt"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/pathcache"
	"quoridor/searcher"
)

type Agent interface {
	// FindMove returns the chosen action and performance metrics (if
	// collected). updates lists every action played since the agent's
	// previous turn, its own last action included.
	FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric)
}

func position(state game.State) *game.Position {
	p, ok := state.(*game.Position)
	if !ok {
		panic("unexpected state type")
	}
	return p
}

// follower keeps a path tracker in step with the game an agent plays in.
type follower struct {
	tracker *pathcache.Tracker
}

func (f *follower) sync(p *game.Position, updates []searcher.Segment) *pathcache.Tracker {
	if f.tracker == nil || f.tracker.Board() != p.Board {
		f.tracker = pathcache.NewTracker(p.Board)
		f.reset(p.GameState)
		return f.tracker
	}
	for _, u := range updates {
		if err := f.tracker.Update(u.Move); err != nil {
			break
		}
	}
	if !f.tracker.State().Equal(p.GameState) {
		// Out of step, e.g. a new game or a missed update
		f.reset(p.GameState)
	}
	return f.tracker
}

// reset panics on states the engine could not have produced.
func (f *follower) reset(s game.GameState) {
	if err := f.tracker.Reset(s); err != nil {
		panic(fmt.Sprintf("agent handed an unplayable state: %v", err))
	}
}

// pathMove steps along the cached shortest path of the player on move,
// jumping over the opponent when it stands on the path.
func pathMove(tr *pathcache.Tracker) game.Action {
	b := tr.Board()
	s := tr.State()
	me := s.OnMove
	path := tr.Paths(me).Path

	for i := 1; i <= 2 && i < len(path); i++ {
		if m, ok := b.PawnMoveTo(s, path[i]); ok {
			return b.PawnAction(m)
		}
	}

	// Opponent sits on the path: take the pawn move that leaves the shortest path
	best, bestSteps := game.NoAction, b.Cells
	for _, m := range b.ValidPawnMoves(s) {
		next := s
		next.Pawns[me] += b.PawnMoveDelta(m)
		if path, ok := b.ShortestPath(next, me); ok && path.Steps() < bestSteps {
			best, bestSteps = b.PawnAction(m), path.Steps()
		}
	}
	if best != game.NoAction {
		return best
	}
	return b.LegalActions(s)[0]
}
