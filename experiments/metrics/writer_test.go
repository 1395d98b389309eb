package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"quoridor/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	b := game.StandardBoard()
	w, err := NewWriter(t.TempDir(), "unit", b)
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{{ID: 3, Kind: "mcts", Goroutines: 4, Duration: time.Second, Cutoff: 12}})
		require.NoError(t, err)
		rows := read("agent_configs.csv")
		require.Equal(t, []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff", "pawn_moves", "temperature", "path_bias"}, rows[0])
		require.Equal(t, []string{"3", "mcts", "4", "1s", "0", "12", "0", "0", "0"}, rows[1])
	})

	t.Run("game records", func(t *testing.T) {
		err := w.WriteGameRecords([]GameRecord{{ID: 1, Agent1: 3, Agent2: 4, GameMetric: GameMetric{
			StartingPlayer: game.Yellow,
			Winner:         game.NoPlayer,
			TotalMoves:     300,
		}}})
		require.NoError(t, err)
		rows := read("game_records.csv")
		require.Len(t, rows, 2)
		require.Equal(t, "Yellow", rows[1][3])
		require.Equal(t, "None", rows[1][4])
		require.Equal(t, "300", rows[1][8])
	})

	t.Run("move records use readable actions", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: game.Yellow, Action: b.PawnAction(game.MoveDown), SearchMetric: SearchMetric{MeanDepth: 2.5}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: game.Green, Action: 3}},
		})
		require.NoError(t, err)
		rows := read("move_records.csv")
		require.Len(t, rows, 3)
		require.Equal(t, "pawn d", rows[1][3])
		require.Equal(t, "wall h(0,3)", rows[2][3])
		require.Equal(t, "2.5", rows[1][7])
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 12, game.EvaluatePathRace)
	c.SetTreeReset(true)
	c.AddPlayout(12, false)
	c.AddPlayout(3, true)

	metric := c.Complete()
	require.Equal(t, 4, metric.Goroutines)
	require.Equal(t, 12, metric.Cutoff)
	require.Equal(t, 2, metric.Episodes)
	require.Equal(t, 1, metric.FullPlayouts)
	require.InDelta(t, 7.5, metric.MeanDepth, 1e-9)
	require.True(t, metric.IsTreeReset)

	t.Run("start clears counts", func(t *testing.T) {
		c.Start(4, 12, nil)
		metric := c.Complete()
		require.Zero(t, metric.Episodes)
		require.Zero(t, metric.MeanDepth)
	})

	t.Run("discard", func(t *testing.T) {
		Discard.AddPlayout(5, true)
		require.Equal(t, SearchMetric{}, Discard.Complete())
	})
}
