package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 7, 7}, 7))
	require.Equal(t, -1, FindIndex([]int{4, 7}, 5))
	require.Equal(t, -1, FindIndex(nil, 5))
}

func TestSortedKeys(t *testing.T) {
	require.Equal(t, []int{-1, 3, 8}, SortedKeys(map[int]string{8: "a", -1: "b", 3: "c"}))
	require.Empty(t, SortedKeys(map[int]bool{}))
}

func TestArgMax(t *testing.T) {
	t.Run("largest value", func(t *testing.T) {
		k, ok := ArgMax(map[string]float64{"a": 1, "b": 3, "c": 2})
		require.True(t, ok)
		require.Equal(t, "b", k)
	})

	t.Run("ties go to the smallest key", func(t *testing.T) {
		k, ok := ArgMax(map[int]int{9: 5, 2: 5, 4: 1})
		require.True(t, ok)
		require.Equal(t, 2, k)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := ArgMax(map[int]int{})
		require.False(t, ok)
	})
}
