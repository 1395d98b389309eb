package config

import (
	"quoridor/agent"
	"quoridor/experiments"
	"quoridor/game"
	"quoridor/meta"
)

var DefaultConfig = Config{
	BoardSize: game.DefaultBoardSize,
	MaxMoves:  meta.MAX_TURNS,
	Seed:      1,
	LogLevel:  "info",
	SaveGames: true,
	Yellow: AgentSettings{
		Kind:       experiments.KindMCTS,
		Goroutines: meta.GO_ROUTINES,
		Episodes:   meta.EPISODES,
		Cutoff:     meta.WITH_CUTOFF,
		PathBias:   meta.PATH_BIAS,
	},
	Green: AgentSettings{
		Kind:      experiments.KindHeuristic,
		PawnMoves: agent.DefaultHeuristicPawnMoves,
	},
	Experiments: ExperimentSettings{
		OutputDir: "results",
		Games:     experiments.NumGames,
	},
}
