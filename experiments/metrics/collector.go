package metrics

import (
	"quoridor/game"
	"sync/atomic"
	"time"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID          int
	Kind        string // "mcts", "random", "path" or "heuristic"
	Goroutines  int
	Duration    time.Duration
	Episodes    int
	Cutoff      int
	Evaluate    game.Evaluate
	PawnMoves   float64 // Random and heuristic agents, their default if zero
	Temperature float64 // Search agents sample moves when positive
	PathBias    float64 // Search rollouts follow the shortest path this often, the default if zero
}

// SearchMetric summarizes one call to the searcher.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	Evaluate     game.Evaluate
	FullPlayouts int     // rollouts that reached a winner before the cutoff
	MeanDepth    float64 // rollout moves per episode
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // NoPlayer when the move limit was reached
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector is shared by every search goroutine, so implementations must be
// safe for concurrent use between Start and Complete.
type Collector interface {
	Start(goroutines, cutoff int, evaluate game.Evaluate)
	SetTreeReset(reset bool)
	// AddPlayout counts one episode whose rollout played depth moves. decided
	// reports whether the rollout ended the game.
	AddPlayout(depth int, decided bool)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	cutoff     int
	evaluate   game.Evaluate
	started    time.Time
	episodes   atomic.Int64
	decided    atomic.Int64
	depth      atomic.Int64
	reset      atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines, cutoff int, evaluate game.Evaluate) {
	c.goroutines, c.cutoff, c.evaluate = goroutines, cutoff, evaluate
	c.started = time.Now()
	c.episodes.Store(0)
	c.decided.Store(0)
	c.depth.Store(0)
}

func (c *collector) SetTreeReset(reset bool) {
	c.reset.Store(reset)
}

func (c *collector) AddPlayout(depth int, decided bool) {
	c.episodes.Add(1)
	c.depth.Add(int64(depth))
	if decided {
		c.decided.Add(1)
	}
}

func (c *collector) Complete() SearchMetric {
	metric := SearchMetric{
		Goroutines:   c.goroutines,
		Duration:     time.Since(c.started),
		Episodes:     int(c.episodes.Load()),
		Cutoff:       c.cutoff,
		Evaluate:     c.evaluate,
		FullPlayouts: int(c.decided.Load()),
		IsTreeReset:  c.reset.Load(),
	}
	if metric.Episodes > 0 {
		metric.MeanDepth = float64(c.depth.Load()) / float64(metric.Episodes)
	}
	return metric
}

// Discard drops everything it is given.
var Discard Collector = discard{}

type discard struct{}

func (discard) Start(int, int, game.Evaluate) {}
func (discard) SetTreeReset(bool)             {}
func (discard) AddPlayout(int, bool)          {}
func (discard) Complete() SearchMetric        { return SearchMetric{} }
