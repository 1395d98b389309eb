package experiments

import (
	"fmt"
	"quoridor/agent"
	"quoridor/engine"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/meta"
	"quoridor/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

const (
	KindMCTS      = "mcts"
	KindRandom    = "random"
	KindPath      = "path"
	KindHeuristic = "heuristic"
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Board     *game.Board
	OutputDir string
	Games     int // Per match up, NumGames if zero
	MaxMoves  int
	Seed      uint64
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: KindMCTS, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Kind: KindMCTS, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Kind: KindMCTS, Goroutines: 16, Duration: TimeBudget},
}

func RunParallelizationExperiment(settings Settings) (string, error) {
	// Each matchup pairs an agent against the baseline sequential agent
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(settings, "parallelization", append(parallelConfigs, baseline), matchUps)
}

func RunCutoffExperiment(settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget, Cutoff: 1 << 16} // Full playouts
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 4},
		{ID: 2, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 12},
		{ID: 3, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 24},
		{ID: 4, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 12, Evaluate: game.EvaluateDistance},
	}

	// Each matchup pairs the baseline agent against a cutoff agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(settings, "cutoff", append(cutoffConfigs, baseline), matchUps)
}

// RunBaselineExperiment pits the default search agent against each scripted agent.
func RunBaselineExperiment(settings Settings) (string, error) {
	mcts := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget}
	scripted := []metrics.AgentConfig{
		{ID: 1, Kind: KindRandom},
		{ID: 2, Kind: KindPath},
		{ID: 3, Kind: KindHeuristic},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range scripted {
		matchUps = append(matchUps, []metrics.AgentConfig{mcts, config})
	}

	return runExperiment(settings, "baseline", append(scripted, mcts), matchUps)
}

// runExperiment plays every matchup, swapping colors every other game, and
// stores the results as CSV files. It returns the output directory.
func runExperiment(settings Settings, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	games := settings.Games
	if games <= 0 {
		games = NumGames
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			yellow, green := matchup[0], matchup[1]
			if i%2 == 1 {
				yellow, green = green, yellow
			}

			count++
			seed := settings.Seed + uint64(count)
			e, err := newEngine(settings, yellow, green, seed)
			if err != nil {
				return "", err
			}
			winner, gameMetric, moveMetrics := e.Run()
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     yellow.ID,
				Agent2:     green.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	return writeResults(settings, name, configs, gameRecords, moveRecords)
}

func writeResults(settings Settings, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(settings.OutputDir, name, settings.Board)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	// Store experiment metadata
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// newEngine sets up a single game between the two configured agents.
func newEngine(settings Settings, yellow, green metrics.AgentConfig, seed uint64) (engine.Engine, error) {
	options := []engine.Option{}
	if settings.MaxMoves > 0 {
		options = append(options, engine.WithMaxMoves(settings.MaxMoves))
	}
	return engine.NewLocalEngine(settings.Board, CreateAgent(yellow, seed), CreateAgent(green, seed+1), options...)
}

// CreateAgent builds the agent described by config. Unknown kinds panic.
func CreateAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	switch config.Kind {
	case KindMCTS, "":
		if config.Temperature > 0 {
			return agent.NewTrainingAgent(createMCTS(config, seed), config.Temperature, seed)
		}
		return agent.NewEvaluationAgent(createMCTS(config, seed))
	case KindRandom:
		return agent.NewRandomAgent(orDefault(config.PawnMoves, agent.DefaultPawnMoveProbability), seed)
	case KindPath:
		return agent.NewPathAgent()
	case KindHeuristic:
		return agent.NewHeuristicAgent(orDefault(config.PawnMoves, agent.DefaultHeuristicPawnMoves), seed)
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}

func orDefault(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}

func createMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithRollout(game.RolloutPathBiased(orDefault(config.PathBias, meta.PATH_BIAS))),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(config.Evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
