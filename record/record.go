package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"quoridor/game"
	"quoridor/meta"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/exp/slices"
)

var ErrCorruptRecord = errors.New("saved game does not replay to its final state")

const ext = ".json"

// Game is a finished or interrupted match as stored on disk. Start and Final
// use the flat tuple encoding; History holds raw action ids.
type Game struct {
	BoardSize int           `json:"board_size"`
	Yellow    string        `json:"yellow"`
	Green     string        `json:"green"`
	Winner    game.Player   `json:"winner"`
	PlayedAt  time.Time     `json:"played_at"`
	Start     game.Tuple    `json:"start"`
	History   []game.Action `json:"history"`
	Final     game.Tuple    `json:"final"`
}

// New records history played from start on board b by the two named agents.
func New(b *game.Board, yellow, green string, start game.GameState, history []game.Action) (Game, error) {
	final, err := b.ReplayFrom(start, history)
	if err != nil {
		return Game{}, fmt.Errorf("failed to replay history: %w", err)
	}
	return Game{
		BoardSize: b.Size,
		Yellow:    yellow,
		Green:     green,
		Winner:    b.Winner(final),
		PlayedAt:  time.Now().UTC(),
		Start:     start.Tuple(),
		History:   slices.Clone(history),
		Final:     final.Tuple(),
	}, nil
}

// Replay rebuilds the board and both end states and checks them against the
// recorded final tuple.
func (g Game) Replay() (*game.Board, game.GameState, game.GameState, error) {
	var start, final game.GameState
	b, err := game.NewBoard(g.BoardSize)
	if err != nil {
		return nil, start, final, err
	}
	start, err = b.FromTuple(g.Start)
	if err != nil {
		return nil, start, final, fmt.Errorf("invalid start: %w", err)
	}
	final, err = b.ReplayFrom(start, g.History)
	if err != nil {
		return nil, start, final, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	if !final.Tuple().Equal(g.Final) {
		return nil, start, final, fmt.Errorf("%w: got %s", ErrCorruptRecord, final)
	}
	return b, start, final, nil
}

// Store keeps saved games as JSON files in one directory.
type Store struct {
	dir string
}

// NewStore opens the store under the user's XDG data directory.
func NewStore() (*Store, error) {
	path, err := xdg.DataFile(filepath.Join(meta.APP_NAME, "games", "index"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return &Store{dir: filepath.Dir(path)}, nil
}

// NewStoreAt opens the store in dir, creating it if needed.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes g and returns the name to load it by.
func (s *Store) Save(g Game) (string, error) {
	name := fmt.Sprintf("%s-%s-vs-%s", g.PlayedAt.UTC().Format("20060102T150405.000000000Z"), g.Yellow, g.Green)
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode game: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name+ext), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write game: %w", err)
	}
	return name, nil
}

// Load reads the game saved as name and verifies that it replays.
func (s *Store) Load(name string) (Game, error) {
	return LoadFile(filepath.Join(s.dir, strings.TrimSuffix(name, ext)+ext))
}

// LoadFile reads and verifies a saved game at path.
func LoadFile(path string) (Game, error) {
	var g Game
	data, err := os.ReadFile(path)
	if err != nil {
		return g, fmt.Errorf("failed to read game: %w", err)
	}
	if err := json.Unmarshal(data, &g); err != nil {
		return g, fmt.Errorf("failed to decode game: %w", err)
	}
	if _, _, _, err := g.Replay(); err != nil {
		return g, err
	}
	return g, nil
}

// List returns the names of every saved game, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	slices.Sort(names)
	return names, nil
}
