package searcher

import (
	"quoridor/game"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests parallel MCTS (tree parallelization with virtual loss) on decision nodes
sequential:
- selection:
	- happy path: fully expanded node -> max UCT child + loss, child state
	- edge case: root without visits -> still selects
- expansion:
	- happy path: expandable node -> new added child + loss, child state
- terminal node -> same node, same state
- backup:
	- happy path: [new child]: reverse loss, visits++, update rewards; [root] visits++, update rewards
concurrent:
- shared expansion
- shared backup
*/

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting fully expanded node", func(t *testing.T) {
		maxMove := game.Action(1)
		maxChild := &decision{player: game.Yellow, rewards: 1, visits: 1}
		otherChild := &decision{player: game.Yellow, rewards: 0, visits: 1}
		node := &decision{
			player:     game.Green,
			unexplored: []game.Action{},
			explored:   []game.Action{0, maxMove},
			children:   []*decision{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{player: game.Yellow}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.Same(t, maxChild, gotChild, "Node should select child with max policy value")
		require.Equal(t, 1+Loss, maxChild.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, maxChild.visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Action{maxMove}, gotState.(mockState).played, "State should update by the move to the max policy child")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("selecting through a root without visits", func(t *testing.T) {
		child := &decision{player: game.Yellow, rewards: 0, visits: 1}
		root := &decision{
			player:     game.NoPlayer,
			unexplored: []game.Action{},
			explored:   []game.Action{4},
			children:   []*decision{child},
		}

		require.NotPanics(t, func() {
			gotChild, _, gotSelected := root.SelectOrExpand(mockState{}, nil)
			require.Same(t, child, gotChild)
			require.True(t, gotSelected)
		})
	})

	t.Run("expanding node with unexplored moves", func(t *testing.T) {
		state := mockState{player: game.Green, moves: []game.Action{5, 7}, hash: 3}
		node := newDecision(nil, game.Yellow, state, nil)

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.False(t, gotSelected, "Node should perform expansion")
		child := gotChild.(*decision)
		require.Equal(t, []game.Action{7}, gotState.(mockState).played, "Node should expand the last unexplored move")
		require.Equal(t, game.Green, child.player, "Child should record the player who moved into it")
		require.Equal(t, gotState.Hash(), child.hash)
		require.Same(t, node, child.parent)
		require.Equal(t, Loss, child.rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, child.visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Action{5}, node.unexplored)
		require.Equal(t, []game.Action{7}, node.explored)
		require.Len(t, node.children, 1)
	})

	t.Run("terminal node", func(t *testing.T) {
		node := &decision{unexplored: []game.Action{}, explored: []game.Action{}}
		state := mockState{played: []game.Action{1}}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state, nil)

		require.Same(t, node, gotChild, "Terminal node should return itself")
		require.Equal(t, state, gotState, "Terminal node should return the same state")
		require.False(t, gotSelected)
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("backing up a win for the mover", func(t *testing.T) {
		root := &decision{player: game.NoPlayer}
		child := &decision{parent: root, player: game.Yellow}
		child.applyLoss()

		next := child.Backup(game.Yellow, Win)

		require.Same(t, root, next, "Backup should continue with the parent")
		require.Equal(t, Win, child.rewards, "Loss should be reversed before adding the reward")
		require.Equal(t, 1.0, child.visits)
	})

	t.Run("backing up an evaluation for the opponent", func(t *testing.T) {
		root := &decision{player: game.NoPlayer}
		child := &decision{parent: root, player: game.Green}
		child.applyLoss()

		child.Backup(game.Yellow, 0.5)

		require.Equal(t, -0.5, child.rewards, "Score should be negated for the other player")
		require.Equal(t, 1.0, child.visits)
	})

	t.Run("root ends the backup", func(t *testing.T) {
		root := &decision{player: game.NoPlayer}

		next := root.Backup(game.Yellow, Win)

		require.Nil(t, next, "Root should not return a parent")
		require.Equal(t, 1.0, root.visits, "Root should not reverse a loss it never had")
	})

	t.Run("full path", func(t *testing.T) {
		root := &decision{player: game.NoPlayer}
		child := &decision{parent: root, player: game.Yellow}
		grandchild := &decision{parent: child, player: game.Green}
		child.applyLoss()
		grandchild.applyLoss()

		backup(grandchild, game.Green, Win)

		require.Equal(t, Win, grandchild.rewards)
		require.Equal(t, Loss, child.rewards)
		require.Equal(t, 1.0, root.visits)
		require.Equal(t, 1.0, child.visits)
		require.Equal(t, 1.0, grandchild.visits)
	})
}

func TestDecisionPolicy(t *testing.T) {
	a := &decision{visits: 3}
	b := &decision{visits: 5}
	node := &decision{explored: []game.Action{10, 20}, children: []*decision{a, b}}

	require.Equal(t, map[game.Action]float64{10: 3, 20: 5}, node.Policy())
	require.Same(t, b, node.child(20))
	require.Nil(t, node.child(30))

	t.Run("a winning move is the whole policy", func(t *testing.T) {
		won := &decision{visits: 2, won: true}
		node := &decision{explored: []game.Action{10, 20, 30}, children: []*decision{a, b, won}}
		require.Equal(t, map[game.Action]float64{30: 2}, node.Policy())
	})

	t.Run("expansion marks wins for the mover", func(t *testing.T) {
		yellow := game.Yellow
		require.True(t, newDecision(nil, game.Yellow, mockState{winner: &yellow}, nil).won)
		require.False(t, newDecision(nil, game.Green, mockState{winner: &yellow}, nil).won)
		require.False(t, newDecision(nil, game.NoPlayer, mockState{winner: &yellow}, nil).won)
		require.False(t, newDecision(nil, game.Yellow, mockState{}, nil).won)
	})
}

func TestDecisionExpansionOrder(t *testing.T) {
	moves := []game.Action{1, 2, 3, 4, 5, 6, 7, 8}
	state := mockState{moves: moves}

	t.Run("legal order without a source", func(t *testing.T) {
		require.Equal(t, moves, newDecision(nil, game.NoPlayer, state, nil).unexplored)
	})

	t.Run("same seed, same order", func(t *testing.T) {
		first := newDecision(nil, game.NoPlayer, state, rand.New(rand.NewSource(9))).unexplored
		second := newDecision(nil, game.NoPlayer, state, rand.New(rand.NewSource(9))).unexplored
		require.Equal(t, first, second)
		require.ElementsMatch(t, moves, first)
	})
}

func TestDecisionRaceConditions(t *testing.T) {
	const goroutines = 32
	moves := make([]game.Action, goroutines)
	for i := range moves {
		moves[i] = game.Action(i)
	}
	state := mockState{player: game.Yellow, moves: moves}
	root := newDecision(nil, game.NoPlayer, state, rand.New(rand.NewSource(3)))

	t.Run("shared expansion", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				root.SelectOrExpand(state, nil)
			}()
		}
		wg.Wait()

		require.Empty(t, root.unexplored, "Every move should be expanded exactly once")
		require.Len(t, root.children, goroutines)
		require.ElementsMatch(t, moves, root.explored)
		for _, child := range root.children {
			require.Equal(t, 1.0, child.visits, "Every child should carry one virtual loss")
		}
	})

	t.Run("shared backup", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, child := range root.children {
			wg.Add(1)
			go func(child *decision) {
				defer wg.Done()
				backup(child, game.Yellow, Win)
			}(child)
		}
		wg.Wait()

		require.Equal(t, float64(goroutines), root.visits)
		for _, child := range root.children {
			require.Equal(t, Win, child.rewards)
			require.Equal(t, 1.0, child.visits)
		}
	})
}
