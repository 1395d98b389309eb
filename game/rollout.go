package game

import "golang.org/x/exp/rand"

func RolloutUniform(s State, rng *rand.Rand) Action {
	moves := s.LegalMoves()
	if len(moves) == 0 {
		return NoAction
	}
	return moves[rng.Intn(len(moves))]
}

// RolloutPathBiased walks the mover's shortest path with probability bias and
// otherwise plays a uniformly random legal action.
func RolloutPathBiased(bias float64) Rollout {
	return func(s State, rng *rand.Rand) Action {
		if p, ok := s.(*Position); ok && rng.Float64() < bias {
			if a, ok := p.pathStep(); ok {
				return a
			}
		}
		return RolloutUniform(s, rng)
	}
}

// pathStep is the pawn move to the next cell of a shortest path, or over the
// opponent when it stands there.
func (p *Position) pathStep() (Action, bool) {
	path, ok := p.Board.ShortestPath(p.GameState, p.OnMove)
	if !ok {
		return NoAction, false
	}
	for i := 1; i <= 2 && i < len(path); i++ {
		if m, ok := p.Board.PawnMoveTo(p.GameState, path[i]); ok {
			return p.Board.PawnAction(m), true
		}
	}
	return NoAction, false
}
