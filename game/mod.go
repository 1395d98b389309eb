package game

import "golang.org/x/exp/rand"

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Player
	LegalMoves() []Action
	Play(Action) State
	Hash() StateHash
	Winner() Player
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64

// Rollout picks the next move of a random playout, or NoAction when there is none.
type Rollout func(State, *rand.Rand) Action
