package searcher

import (
	"quoridor/game"

	"golang.org/x/exp/slices"
)

type mockState struct {
	player game.Player
	moves  []game.Action
	played []game.Action
	hash   game.StateHash
	winner *game.Player
}

func (m mockState) Player() game.Player {
	return m.player
}

func (m mockState) LegalMoves() []game.Action {
	return slices.Clone(m.moves)
}

func (m mockState) Play(move game.Action) game.State {
	return mockState{
		player: m.player.Next(),
		moves:  m.moves,
		played: append(slices.Clone(m.played), move),
		hash:   m.hash*31 + game.StateHash(move) + 1,
	}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winner() game.Player {
	if m.winner == nil {
		return game.NoPlayer
	}
	return *m.winner
}
