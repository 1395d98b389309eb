package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"quoridor/game"
	"strconv"
	"time"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, playing Yellow
	Agent2 int // AgentConfig.ID, playing Green
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer stores the results of one experiment run as CSV tables.
type Writer struct {
	dir   string
	board *game.Board
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's CSV
// files. Actions are written in their readable form for board b.
func NewWriter(root, name string, b *game.Board) (*Writer, error) {
	dir := filepath.Join(root, name, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{dir: dir, board: b}, nil
}

func (w *Writer) Dir() string {
	return w.dir
}

// column is one CSV field and how to render it from a row value.
type column[T any] struct {
	name   string
	render func(T) string
}

var agentColumns = []column[AgentConfig]{
	{"id", func(c AgentConfig) string { return strconv.Itoa(c.ID) }},
	{"kind", func(c AgentConfig) string { return c.Kind }},
	{"goroutines", func(c AgentConfig) string { return strconv.Itoa(c.Goroutines) }},
	{"duration", func(c AgentConfig) string { return c.Duration.String() }},
	{"episodes", func(c AgentConfig) string { return strconv.Itoa(c.Episodes) }},
	{"cutoff", func(c AgentConfig) string { return strconv.Itoa(c.Cutoff) }},
	{"pawn_moves", func(c AgentConfig) string { return formatFloat(c.PawnMoves) }},
	{"temperature", func(c AgentConfig) string { return formatFloat(c.Temperature) }},
	{"path_bias", func(c AgentConfig) string { return formatFloat(c.PathBias) }},
}

var gameColumns = []column[GameRecord]{
	{"id", func(r GameRecord) string { return strconv.Itoa(r.ID) }},
	{"agent1", func(r GameRecord) string { return strconv.Itoa(r.Agent1) }},
	{"agent2", func(r GameRecord) string { return strconv.Itoa(r.Agent2) }},
	{"starting_player", func(r GameRecord) string { return r.StartingPlayer.String() }},
	{"winner", func(r GameRecord) string { return r.Winner.String() }},
	{"start_time", func(r GameRecord) string { return r.StartTime.Format(time.RFC3339) }},
	{"end_time", func(r GameRecord) string { return r.EndTime.Format(time.RFC3339) }},
	{"duration", func(r GameRecord) string { return r.Duration.String() }},
	{"total_moves", func(r GameRecord) string { return strconv.Itoa(r.TotalMoves) }},
}

func (w *Writer) moveColumns() []column[MoveRecord] {
	return []column[MoveRecord]{
		{"game", func(r MoveRecord) string { return strconv.Itoa(r.Game) }},
		{"step", func(r MoveRecord) string { return strconv.Itoa(r.Step) }},
		{"player", func(r MoveRecord) string { return r.Player.String() }},
		{"action", func(r MoveRecord) string { return w.board.FormatAction(r.Action) }},
		{"duration", func(r MoveRecord) string { return r.Duration.String() }},
		{"episodes", func(r MoveRecord) string { return strconv.Itoa(r.Episodes) }},
		{"full_playouts", func(r MoveRecord) string { return strconv.Itoa(r.FullPlayouts) }},
		{"mean_depth", func(r MoveRecord) string { return formatFloat(r.MeanDepth) }},
		{"is_tree_reset", func(r MoveRecord) string { return strconv.FormatBool(r.IsTreeReset) }},
	}
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	if err := writeTable(w.dir, "agent_configs.csv", agentColumns, configs); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	if err := writeTable(w.dir, "game_records.csv", gameColumns, records); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	if err := writeTable(w.dir, "move_records.csv", w.moveColumns(), records); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func writeTable[T any](dir, name string, columns []column[T], rows []T) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	out := csv.NewWriter(f)
	record := make([]string, len(columns))
	for i, c := range columns {
		record[i] = c.name
	}
	if err := out.Write(record); err != nil {
		return err
	}
	for _, row := range rows {
		for i, c := range columns {
			record[i] = c.render(row)
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
