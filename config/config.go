package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"quoridor/experiments"
	"quoridor/experiments/metrics"
	"quoridor/meta"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = filepath.Join(meta.APP_NAME, "config.json")
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// AgentSettings describes one side of a match.
type AgentSettings struct {
	Kind        string  `json:"kind"`
	Goroutines  int     `json:"goroutines"`
	Episodes    int     `json:"episodes"`
	DurationMS  int     `json:"duration_ms"`
	Cutoff      int     `json:"cutoff"`
	PawnMoves   float64 `json:"pawn_moves"`
	Temperature float64 `json:"temperature"`
	PathBias    float64 `json:"path_bias"`
}

type ExperimentSettings struct {
	OutputDir string `json:"output_dir"`
	Games     int    `json:"games"`
}

type Config struct {
	BoardSize   int                `json:"board_size"`
	MaxMoves    int                `json:"max_moves"`
	Seed        uint64             `json:"seed"`
	LogLevel    string             `json:"log_level"`
	SaveGames   bool               `json:"save_games"`
	Yellow      AgentSettings      `json:"yellow"`
	Green       AgentSettings      `json:"green"`
	Experiments ExperimentSettings `json:"experiments"`
}

// InitConfig starts from DefaultConfig and overlays the first
// quoridor/config.json found in the XDG config directories.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadFile overlays the file at path on DefaultConfig.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < 3 {
		return &InvalidConfig{fmt.Sprintf("board size %d is below 3", c.BoardSize)}
	}
	if c.MaxMoves < 1 {
		return &InvalidConfig{"max moves must be positive"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	for name, a := range map[string]AgentSettings{"yellow": c.Yellow, "green": c.Green} {
		if err := a.validate(); err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %s", name, err.err)}
		}
	}
	if c.Experiments.Games < 0 {
		return &InvalidConfig{"experiment games cannot be negative"}
	}
	return nil
}

func (a AgentSettings) validate() *InvalidConfig {
	switch a.Kind {
	case experiments.KindMCTS:
		if a.Goroutines < 1 {
			return &InvalidConfig{"goroutines must be positive"}
		}
		if a.Episodes <= 0 && a.DurationMS <= 0 {
			return &InvalidConfig{"search needs episodes or a duration"}
		}
		if a.Cutoff < 0 || a.Temperature < 0 {
			return &InvalidConfig{"cutoff and temperature cannot be negative"}
		}
		if a.PathBias < 0 || a.PathBias > 1 {
			return &InvalidConfig{"path_bias must be a probability"}
		}
	case experiments.KindRandom, experiments.KindHeuristic:
		if a.PawnMoves < 0 || a.PawnMoves > 1 {
			return &InvalidConfig{"pawn_moves must be a probability"}
		}
	case experiments.KindPath:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown agent kind %q", a.Kind)}
	}
	return nil
}

// AgentConfig converts the settings for the experiment runner.
func (a AgentSettings) AgentConfig(id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Kind:        a.Kind,
		Goroutines:  a.Goroutines,
		Duration:    time.Duration(a.DurationMS) * time.Millisecond,
		Episodes:    a.Episodes,
		Cutoff:      a.Cutoff,
		PawnMoves:   a.PawnMoves,
		Temperature: a.Temperature,
		PathBias:    a.PathBias,
	}
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return absPath, c.SaveFile(absPath)
}

func (c *Config) SaveFile(path string) error {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0664); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
