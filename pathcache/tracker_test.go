package pathcache

import (
	"quoridor/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// requireAgreement checks the cache against a fresh search.
func requireAgreement(t *testing.T, tr *Tracker) {
	t.Helper()
	b := tr.Board()
	s := tr.State()
	for _, p := range []game.Player{game.Yellow, game.Green} {
		want, ok := b.ShortestPath(s, p)
		require.True(t, ok)
		paths := tr.Paths(p)
		require.Equal(t, want.Steps(), paths.Path.Steps(), "%s path length", p)
		require.Equal(t, s.Pawns[p], paths.Path[0], "%s path start", p)
		require.True(t, b.IsGoal(p, paths.Path[len(paths.Path)-1]), "%s path end", p)
		for i := 0; i+1 < len(paths.Path); i++ {
			d, ok := b.DirectionForDelta(paths.Path[i+1] - paths.Path[i])
			require.True(t, ok)
			require.False(t, b.IsMoveBlocked(s, paths.Path[i], d), "%s path step %d", p, i)
		}
		for _, w := range paths.Blockers.Slice() {
			require.False(t, tr.Crossers().Has(w), "blocker %d is already excluded", w)
		}
	}
	require.Equal(t, b.CrossingWalls(s.Walls), tr.Crossers())
}

func TestTrackerUpdate(t *testing.T) {
	b := game.StandardBoard()

	t.Run("starts with straight paths", func(t *testing.T) {
		tr := NewTracker(b)
		require.Equal(t, 8, tr.PathLength(game.Yellow))
		require.Equal(t, 8, tr.PathLength(game.Green))
		require.Equal(t, []int{3, 4, 11, 12, 19, 20, 27, 28, 35, 36, 43, 44, 51, 52, 59, 60}, tr.Paths(game.Yellow).Blockers.Slice())
		requireAgreement(t, tr)
	})

	t.Run("following the path trims it", func(t *testing.T) {
		tr := NewTracker(b)
		require.NoError(t, tr.Update(b.PawnAction(game.MoveDown)))
		require.Equal(t, 7, tr.PathLength(game.Yellow))
		require.Equal(t, 13, tr.Paths(game.Yellow).Path[0])
		requireAgreement(t, tr)
	})

	t.Run("a wall on both paths recomputes both", func(t *testing.T) {
		tr := NewTracker(b)
		require.NoError(t, tr.Update(60))
		require.Equal(t, 9, tr.PathLength(game.Yellow))
		require.Equal(t, 9, tr.PathLength(game.Green))
		requireAgreement(t, tr)
	})

	t.Run("unplayable reset is refused", func(t *testing.T) {
		tr := NewTracker(b)
		require.NoError(t, tr.Update(b.PawnAction(game.MoveDown)))
		before := tr.State()

		sealed := b.InitialState()
		sealed.Walls = game.NewWallSet(11, 67, 68)
		require.ErrorIs(t, tr.Reset(sealed), game.ErrInvalidState)

		offBoard := b.InitialState()
		offBoard.Pawns[game.Green] = b.Cells
		require.ErrorIs(t, tr.Reset(offBoard), game.ErrInvalidState)

		require.True(t, before.Equal(tr.State()))
		require.Len(t, tr.History(), 1)
		requireAgreement(t, tr)
	})

	t.Run("rejected actions change nothing", func(t *testing.T) {
		tr := NewTracker(b)
		require.NoError(t, tr.Update(0))
		before := tr.Paths(game.Yellow)
		require.ErrorIs(t, tr.Update(1), game.ErrWallCrosses)
		require.Equal(t, before, tr.Paths(game.Yellow))
		require.Len(t, tr.History(), 1)
	})
}

func TestTrackerProbe(t *testing.T) {
	b := game.StandardBoard()
	tr := NewTracker(b)
	for _, a := range []game.Action{67, b.PawnAction(game.MoveUp), 68, b.PawnAction(game.MoveUp)} {
		require.NoError(t, tr.Update(a))
	}

	t.Run("remembers walls that seal a player", func(t *testing.T) {
		require.ErrorIs(t, tr.Probe(11), game.ErrBlocksGoalPath)
		require.True(t, tr.Paths(game.Yellow).GoalCut.Has(11))
		require.False(t, tr.Paths(game.Green).GoalCut.Has(11))
		require.False(t, tr.Paths(game.Yellow).Blockers.Has(11))
		require.Contains(t, tr.InvalidActions(), game.Action(11))
		require.Equal(t, game.NewWallSet(67, 68), tr.State().Walls, "Probe should not place the wall")
	})

	t.Run("legal walls are not remembered", func(t *testing.T) {
		require.NoError(t, tr.Probe(40))
		require.False(t, tr.Paths(game.Green).GoalCut.Has(40))
	})

	t.Run("moving forgets goal cuts", func(t *testing.T) {
		require.NoError(t, tr.Update(b.PawnAction(game.MoveDown)))
		require.True(t, tr.Paths(game.Yellow).GoalCut.Empty())
		requireAgreement(t, tr)
	})
}

func TestTrackerInvalidActions(t *testing.T) {
	b := game.StandardBoard()
	tr := NewTracker(b)
	require.NoError(t, tr.Update(0))

	invalid := tr.InvalidActions()
	require.Equal(t, game.SortedActions(invalid), invalid)
	for _, a := range invalid {
		require.False(t, b.IsLegal(tr.State(), a), b.FormatAction(a))
	}
	require.Contains(t, invalid, game.Action(1))
	require.Contains(t, invalid, b.PawnAction(game.MoveDown), "Green cannot step off the board")
}

func TestTrackerUndo(t *testing.T) {
	b := game.StandardBoard()

	t.Run("fails without history", func(t *testing.T) {
		require.ErrorIs(t, NewTracker(b).Undo(), game.ErrCannotUndo)
	})

	t.Run("restores the previous paths", func(t *testing.T) {
		tr := NewTracker(b)
		require.NoError(t, tr.Update(60))
		require.NoError(t, tr.Undo())
		require.Equal(t, 8, tr.PathLength(game.Yellow))
		require.Equal(t, 8, tr.PathLength(game.Green))
		require.True(t, b.InitialState().Equal(tr.State()))
		requireAgreement(t, tr)
	})
}

func TestTrackerRandomPlay(t *testing.T) {
	for _, size := range []int{5, 9} {
		b, err := game.NewBoard(size)
		require.NoError(t, err)

		for seed := uint64(1); seed <= 4; seed++ {
			r := rand.New(rand.NewSource(seed))
			tr := NewTracker(b)

			for i := 0; i < 150 && !tr.IsTerminal(); i++ {
				// Mix in probes so goal cuts get exercised
				if w := r.Intn(b.WallActions); r.Intn(2) == 0 {
					_ = tr.Probe(w)
				}
				legal := b.LegalActions(tr.State())
				if len(legal) == 0 {
					break
				}
				require.NoError(t, tr.Update(legal[r.Intn(len(legal))]))
				requireAgreement(t, tr)
			}

			history := tr.History()
			for range history {
				require.NoError(t, tr.Undo())
				requireAgreement(t, tr)
			}
			require.True(t, b.InitialState().Equal(tr.State()))
		}
	}
}
