package experiments

import (
	"quoridor/experiments/metrics"
)

// RunThroughputExperiment measures episodes per move as goroutines grow. Both
// sides share a config for the same playing strength and similar game length.
func RunThroughputExperiment(settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16, 32} {
		config := metrics.AgentConfig{ID: i + 1, Kind: KindMCTS, Goroutines: goroutines, Duration: TimeBudget}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	if settings.Games <= 0 {
		settings.Games = 1
	}
	return runExperiment(settings, "throughput", configs, matchUps)
}

// RunMatchUp plays two arbitrary agents against each other.
func RunMatchUp(settings Settings, agent1, agent2 metrics.AgentConfig) (string, error) {
	agent1.ID, agent2.ID = 1, 2
	configs := []metrics.AgentConfig{agent1, agent2}
	return runExperiment(settings, "matchup", configs, [][]metrics.AgentConfig{configs})
}
