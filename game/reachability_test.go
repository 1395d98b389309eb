package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	b := StandardBoard()
	s := b.InitialState()

	t.Run("straight run on an empty board", func(t *testing.T) {
		path, ok := b.ShortestPath(s, Yellow)
		require.True(t, ok)
		require.Equal(t, 8, path.Steps())
		require.Equal(t, 4, path[0], "Path should start on the pawn")
		require.Equal(t, 76, path[len(path)-1])

		path, ok = b.ShortestPath(s, Green)
		require.True(t, ok)
		require.Equal(t, Path{76, 67, 58, 49, 40, 31, 22, 13, 4}, path)
	})

	t.Run("avoided goal cells are not accepted", func(t *testing.T) {
		path, ok := b.ShortestPath(s, Yellow, 76)
		require.True(t, ok)
		require.Equal(t, 9, path.Steps())
		require.NotEqual(t, 76, path[len(path)-1])
		require.True(t, b.IsGoal(Yellow, path[len(path)-1]))
	})

	t.Run("pawn already on the goal row", func(t *testing.T) {
		done := GameState{Pawns: [2]int{76, 40}}
		path, ok := b.ShortestPath(done, Yellow)
		require.True(t, ok)
		require.Equal(t, Path{76}, path)
		require.Zero(t, path.Steps())
	})

	t.Run("walls lengthen the path", func(t *testing.T) {
		walled := s
		walled.Walls = NewWallSet(b.Wall(Horizontal, 0, 3))
		path, ok := b.ShortestPath(walled, Yellow)
		require.True(t, ok)
		require.Equal(t, 9, path.Steps())
		for i := 0; i+1 < len(path); i++ {
			d, ok := b.DirectionForDelta(path[i+1] - path[i])
			require.True(t, ok)
			require.False(t, b.IsMoveBlocked(walled, path[i], d))
		}
	})

	t.Run("sealed pawn has no path", func(t *testing.T) {
		sealed := s
		sealed.Walls = NewWallSet(67, 68, 11)
		_, ok := b.ShortestPath(sealed, Yellow)
		require.False(t, ok)
		require.False(t, b.CanReachGoal(sealed, Yellow))
		require.True(t, b.CanReachGoal(sealed, Green))
		require.False(t, b.BothPlayersCanReachGoal(sealed))
	})
}

func TestPathBlockers(t *testing.T) {
	b := StandardBoard()
	path := Path{4, 13, 22}

	t.Run("collects walls cutting any step", func(t *testing.T) {
		got := b.PathBlockers(path)
		require.Equal(t, []int{3, 4, 11, 12}, got.Slice())
	})

	t.Run("leaves out excluded walls", func(t *testing.T) {
		got := b.PathBlockers(path, NewWallSet(3), NewWallSet(12))
		require.Equal(t, []int{4, 11}, got.Slice())
	})
}

func TestWallCrossing(t *testing.T) {
	b := StandardBoard()

	t.Run("crossers agree with the crossing check", func(t *testing.T) {
		for wall := 0; wall < b.WallActions; wall++ {
			placed := NewWallSet(wall)
			crossers := NewWallSet(b.WallCrossers(wall)...)
			for other := 0; other < b.WallActions; other++ {
				require.Equal(t, crossers.Has(other), b.IsWallCrossing(placed, other),
					"wall %d, other %d", wall, other)
			}
		}
	})

	t.Run("edge walls have fewer neighbours", func(t *testing.T) {
		require.ElementsMatch(t, []int{0, 64, 1}, b.WallCrossers(0))
		require.ElementsMatch(t, []int{64, 0, 72}, b.WallCrossers(64))
		require.Len(t, b.WallCrossers(b.Wall(Horizontal, 3, 3)), 4)
	})

	t.Run("crossing set unions every crosser", func(t *testing.T) {
		got := b.CrossingWalls(NewWallSet(0, 10))
		require.Equal(t, []int{0, 1, 9, 10, 11, 64, 74}, got.Slice())
	})
}

func TestWallSet(t *testing.T) {
	t.Run("with and without do not modify the receiver", func(t *testing.T) {
		s := NewWallSet(1, 70)
		s2 := s.With(100)
		s3 := s2.Without(70)
		require.Equal(t, []int{1, 70}, s.Slice())
		require.Equal(t, []int{1, 70, 100}, s2.Slice())
		require.Equal(t, []int{1, 100}, s3.Slice())
	})

	t.Run("removing the last wall yields an empty set", func(t *testing.T) {
		s := NewWallSet(127).Without(127)
		require.True(t, s.Empty())
		require.Equal(t, WallSet{}, s)
		require.True(t, s.Equal(NewWallSet()))
	})

	t.Run("union and length", func(t *testing.T) {
		s := NewWallSet(1, 2).Union(NewWallSet(2, 90))
		require.Equal(t, 3, s.Len())
		require.True(t, s.HasAny([]int{5, 90}))
		require.False(t, s.HasAny([]int{5, 6}))
		require.Equal(t, "{1 2 90}", s.String())
	})
}
