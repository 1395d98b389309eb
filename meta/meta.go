// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the rollout depth after which MCTS evaluates the position.
const WITH_CUTOFF = 12

// MAX_TURNS caps the number of actions in a single match.
const MAX_TURNS = 300

// APP_NAME names the config and data directories.
const APP_NAME = "quoridor"

// PATH_BIAS is the chance that a rollout move follows the shortest path.
const PATH_BIAS = 0.5
