package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"quoridor/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := game.NewBoard(3)
	require.NoError(t, err)
	d, l := b.PawnAction(game.MoveDown), b.PawnAction(game.MoveLeft)

	t.Run("records the result", func(t *testing.T) {
		g, err := New(b, "path", "random", b.InitialState(), []game.Action{d, l, d})
		require.NoError(t, err)
		require.Equal(t, 3, g.BoardSize)
		require.Equal(t, game.Yellow, g.Winner)
		require.Equal(t, []int{7, 6, 10, 10}, []int{g.Final.Pawns[0], g.Final.Pawns[1], g.Final.WallsLeft[0], g.Final.WallsLeft[1]})
	})

	t.Run("rejects illegal history", func(t *testing.T) {
		_, err := New(b, "path", "random", b.InitialState(), []game.Action{l, l, b.PawnAction(game.MoveUp)})
		require.ErrorIs(t, err, game.ErrIllegalPawnMove)
	})
}

func TestReplay(t *testing.T) {
	b := game.StandardBoard()
	history := []game.Action{b.PawnAction(game.MoveDown), 3, b.PawnAction(game.MoveDown)}
	g, err := New(b, "mcts", "heuristic", b.InitialState(), history)
	require.NoError(t, err)

	t.Run("matches the final state", func(t *testing.T) {
		gotBoard, start, final, err := g.Replay()
		require.NoError(t, err)
		require.Equal(t, 9, gotBoard.Size)
		require.True(t, start.Equal(b.InitialState()))
		require.True(t, final.Walls.Has(3))
	})

	t.Run("detects tampering", func(t *testing.T) {
		tampered := g
		tampered.Final.Pawns[0] = 40
		_, _, _, err := tampered.Replay()
		require.ErrorIs(t, err, ErrCorruptRecord)
	})

	t.Run("detects a broken history", func(t *testing.T) {
		broken := g
		broken.History = []game.Action{3, 3}
		_, _, _, err := broken.Replay()
		require.ErrorIs(t, err, ErrCorruptRecord)
		require.ErrorIs(t, err, game.ErrWallCrosses)
	})
}

func TestStore(t *testing.T) {
	b, err := game.NewBoard(5)
	require.NoError(t, err)
	store, err := NewStoreAt(filepath.Join(t.TempDir(), "games"))
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	require.Empty(t, names)

	g, err := New(b, "path", "path", b.InitialState(), []game.Action{b.PawnAction(game.MoveDown), 20})
	require.NoError(t, err)
	name, err := store.Save(g)
	require.NoError(t, err)

	names, err = store.List()
	require.NoError(t, err)
	require.Equal(t, []string{name}, names)

	loaded, err := store.Load(name)
	require.NoError(t, err)
	require.Equal(t, g.History, loaded.History)
	require.True(t, g.Final.Equal(loaded.Final))
	require.True(t, g.PlayedAt.Equal(loaded.PlayedAt))

	t.Run("start uses the flat tuple", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(store.Dir(), name+".json"))
		require.NoError(t, err)
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		require.JSONEq(t, `[0, 2, 22, 10, 10, []]`, string(raw["start"]))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(store.Dir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"board_size": 5, "start": [0, 2, 22, 10, 10, []], "history": [300], "final": [1, 2, 22, 10, 10, []]}`), 0644))
		_, err := store.Load("broken")
		require.ErrorIs(t, err, ErrCorruptRecord)
		require.ErrorIs(t, err, game.ErrUnknownAction)
	})
}
