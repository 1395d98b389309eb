package searcher

import (
	"quoridor/game"

	"golang.org/x/exp/rand"
)

type Node interface {
	SelectOrExpand(state game.State, rng *rand.Rand) (child Node, childState game.State, selected bool)
	Backup(player game.Player, score float64) Node
	Visits() float64
	applyLoss()
	score(ucb bound) float64
}
