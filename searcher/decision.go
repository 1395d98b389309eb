package searcher

import (
	"math"
	"quoridor/game"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is a tree node for a position. Its statistics are kept from the
// perspective of the player who moved into it, so a parent simply maximises
// over its children.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     game.Player // Player whose move led here
	hash       game.StateHash
	unexplored []game.Action
	explored   []game.Action
	children   []*decision
	rewards    float64
	visits     float64
	won        bool // The move into this node won the game for player
}

// newDecision orders the unexplored moves with rng, or keeps LegalMoves order
// when rng is nil.
func newDecision(parent *decision, player game.Player, state game.State, rng *rand.Rand) *decision {
	moves := state.LegalMoves()
	if rng != nil {
		rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}

	return &decision{
		parent:     parent,
		player:     player,
		won:        player != game.NoPlayer && state.Winner() == player,
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Action, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state game.State, rng *rand.Rand) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.expand(state, rng)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	i := d.selectChild()
	child := d.children[i]
	child.applyLoss()
	return child, state.Play(d.explored[i]), true
}

func (d *decision) expand(state game.State, rng *rand.Rand) (*decision, game.State) {
	last := len(d.unexplored) - 1
	move := d.unexplored[last]
	d.unexplored = d.unexplored[:last]

	childState := state.Play(move)
	child := newDecision(d, state.Player(), childState, rng)
	d.explored = append(d.explored, move)
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) selectChild() int {
	// The root only gains visits on backup, so it can be selected through
	// before its first playout completes
	ucb := newBound(CSquared, max(d.visits, 1))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(ucb); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(ucb bound) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb.of(d.rewards, d.visits)
}

// Backup records a playout result, given as a score from player's
// perspective, and returns the parent to continue with.
func (d *decision) Backup(player game.Player, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.player, player, score)
	d.visits++

	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy maps every explored move to its visit count. Once a move that wins
// on the spot has been explored, it is the only move in the policy.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Action]float64, len(d.children))
	for i, child := range d.children {
		if child.won {
			return map[game.Action]float64{d.explored[i]: child.Visits()}
		}
		policy[d.explored[i]] = child.Visits()
	}
	return policy
}

// child returns the explored child reached by move, if any.
func (d *decision) child(move game.Action) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, m := range d.explored {
		if m == move {
			return d.children[i]
		}
	}
	return nil
}
