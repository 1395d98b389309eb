package searcher

import (
	"context"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/meta"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Segment is one action played since the previous search, with the hash of
// the state it produced. A lineage of segments lets the searcher keep the
// subtree it already built.
type Segment struct {
	Move      game.Action
	StateHash game.StateHash
}

// MCTS is a tree-parallel Monte Carlo tree search. All goroutines share one
// tree and spread out through virtual loss.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	playout    game.Rollout
	seed       atomic.Uint64
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff limits rollouts to depth moves before the evaluation function
// scores the position.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRollout(playout game.Rollout) Option {
	return func(m *MCTS) {
		if playout != nil {
			m.playout = playout
		}
	}
}

// WithSeed makes searches on a single goroutine repeatable.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed.Store(seed)
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{
		goroutines: max(goroutines, 1),
		cutoff:     meta.WITH_CUTOFF,
		evaluate:   game.EvaluatePathRace,
		playout:    game.RolloutPathBiased(meta.PATH_BIAS),
		metrics:    metrics.Discard,
	}
	m.seed.Store(uint64(time.Now().UnixNano()))
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every explored
// move at the root. lineage lists the actions played since the previous call
// so that the matching subtree can be reused. An episode budget takes
// precedence over a duration.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Action]float64, metrics.SearchMetric) {
	m.findRoot(lineage, state)
	m.metrics.Start(m.goroutines, m.cutoff, m.evaluate)

	if m.episodes > 0 {
		var left atomic.Int64
		left.Store(int64(m.episodes))
		m.search(state, func() bool { return left.Add(-1) >= 0 })
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), m.duration)
		defer cancel()
		m.search(state, func() bool { return ctx.Err() == nil })
	}

	metric := m.metrics.Complete()
	return m.root.Policy(), metric
}

// search runs episodes on every goroutine for as long as more allows.
func (m *MCTS) search(state game.State, more func() bool) {
	var wg sync.WaitGroup
	wg.Add(m.goroutines)
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.seed.Add(1)))
		go func() {
			defer wg.Done()
			for more() {
				m.episode(state, rng)
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	reset := root == nil || root.hash != state.Hash()
	if reset {
		root = newDecision(nil, game.NoPlayer, state, rand.New(rand.NewSource(m.seed.Add(1))))
	}
	root.parent = nil
	m.root = root
	m.metrics.SetTreeReset(reset)
}

// traverse follows lineage down from root, or returns nil when the tree has
// not seen it.
func traverse(root *decision, lineage []Segment) *decision {
	if root == nil || len(lineage) == 0 {
		return nil
	}
	node := root
	for _, seg := range lineage {
		if node = node.child(seg.Move); node == nil {
			return nil
		}
		if node.hash != seg.StateHash {
			log.Warn().
				Uint64("node", uint64(node.hash)).
				Uint64("segment", uint64(seg.StateHash)).
				Msg("lineage hash mismatch")
			return nil
		}
	}
	return node
}

// episode descends to a fresh leaf, plays it out and credits the result to
// every node on the way back up.
func (m *MCTS) episode(state game.State, rng *rand.Rand) {
	var node Node = m.root
	for {
		child, childState, selected := node.SelectOrExpand(state, rng)
		done := !selected || child == node
		node, state = child, childState
		if done {
			break
		}
	}
	player, score := m.rollout(state, rng)
	backup(node, player, score)
}

func backup(leaf Node, player game.Player, score float64) {
	for node := leaf; node != nil; node = node.Backup(player, score) {
	}
}

// rollout plays out state with the rollout policy until someone wins or the
// cutoff is reached. The score is from the perspective of the returned player.
func (m *MCTS) rollout(state game.State, rng *rand.Rand) (game.Player, float64) {
	depth := 0
	for ; depth < m.cutoff && state.Winner() == game.NoPlayer; depth++ {
		move := m.playout(state, rng)
		if move == game.NoAction {
			break
		}
		state = state.Play(move)
	}

	winner := state.Winner()
	m.metrics.AddPlayout(depth, winner != game.NoPlayer)
	if winner != game.NoPlayer {
		return winner, Win
	}
	return state.Player(), m.evaluate(state)
}
