package searcher

import (
	"math"
	"quoridor/game"
)

const CSquared = 2.0 // UCT exploration constant, squared

const (
	Win  = 1.0  // Reaching the goal row first
	Loss = -Win // The opponent reaching theirs first
)

// bound scores the children of one parent with UCT. It caches c²·ln(N) for
// the parent's visit count N.
type bound struct {
	spread float64
}

func newBound(cSquared, parentVisits float64) bound {
	if parentVisits <= 0 {
		panic("parent visits must be positive")
	}
	return bound{spread: cSquared * math.Log(parentVisits)}
}

// of returns q/n + sqrt(c²·ln(N)/n) for a child with total reward q over n visits.
func (b bound) of(q, n float64) float64 {
	if n <= 0 {
		panic("child visits must be positive")
	}
	return q/n + math.Sqrt(b.spread/n)
}

// reward converts a score from player's perspective into mover's perspective.
func reward(mover, player game.Player, score float64) float64 {
	if mover == player {
		return score
	}
	return -score
}
