package pathcache

import (
	"errors"
	"fmt"
	"quoridor/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Paths is the cached view of one player's race to the goal row.
type Paths struct {
	Path     game.Path    // Current shortest path, pawn cell first
	Blockers game.WallSet // Placeable walls that would cut Path
	GoalCut  game.WallSet // Walls already proven to seal this player in
}

// Tracker follows a game action by action and keeps both players' shortest
// paths up to date, recomputing a path only when an action can invalidate
// it. It is not safe for concurrent use.
type Tracker struct {
	board    *game.Board
	start    game.GameState
	state    game.GameState
	history  []game.Action
	crossers game.WallSet
	players  [2]Paths
}

func NewTracker(b *game.Board) *Tracker {
	t := &Tracker{board: b}
	if err := t.Reset(b.InitialState()); err != nil {
		panic(err)
	}
	return t
}

// Reset starts tracking from state s with an empty history. It fails with
// game.ErrInvalidState, keeping the current state, when a pawn is off the
// board or a player is sealed off from its goal row.
func (t *Tracker) Reset(s game.GameState) error {
	for _, cell := range s.Pawns {
		if cell < 0 || cell >= t.board.Cells {
			return fmt.Errorf("%w: pawn cell %d off the board", game.ErrInvalidState, cell)
		}
	}
	if !t.board.BothPlayersCanReachGoal(s) {
		return fmt.Errorf("%w: a player cannot reach the goal", game.ErrInvalidState)
	}
	t.start = s
	t.state = s
	t.history = nil
	t.crossers = t.board.CrossingWalls(s.Walls)
	for _, p := range []game.Player{game.Yellow, game.Green} {
		t.players[p] = Paths{}
		t.recompute(p)
	}
	return nil
}

func (t *Tracker) Board() *game.Board { return t.board }

func (t *Tracker) State() game.GameState { return t.state }

// Start is the state the history is replayed from.
func (t *Tracker) Start() game.GameState { return t.start }

func (t *Tracker) History() []game.Action { return slices.Clone(t.history) }

// Crossers is every wall id excluded by the placed walls.
func (t *Tracker) Crossers() game.WallSet { return t.crossers }

func (t *Tracker) Paths(p game.Player) Paths { return t.players[p] }

func (t *Tracker) PathLength(p game.Player) int { return t.players[p].Path.Steps() }

func (t *Tracker) IsTerminal() bool { return t.board.IsTerminal(t.state) }

// Update applies action a to the tracked state. On error nothing changes.
func (t *Tracker) Update(a game.Action) error {
	player := t.state.OnMove
	next, err := t.board.ExecuteAction(t.state, a)
	if err != nil {
		return err
	}
	t.state = next
	t.history = append(t.history, a)

	if t.board.IsWallAction(a) {
		t.crossers = t.crossers.Union(game.NewWallSet(t.board.WallCrossers(int(a))...))
		for _, p := range []game.Player{game.Yellow, game.Green} {
			if t.players[p].Blockers.Has(int(a)) {
				t.recompute(p)
				continue
			}
			t.refreshBlockers(p)
		}
		return nil
	}

	cell := next.Pawns[player]
	paths := &t.players[player]
	switch {
	case len(paths.Path) > 1 && paths.Path[1] == cell:
		paths.Path = paths.Path[1:]
	case len(paths.Path) > 2 && paths.Path[2] == cell:
		paths.Path = paths.Path[2:]
	default:
		t.recompute(player)
	}
	paths.GoalCut = game.WallSet{}
	t.refreshBlockers(player)
	return nil
}

// Undo reverts the most recent action.
func (t *Tracker) Undo() error {
	if len(t.history) == 0 {
		return fmt.Errorf("%w: no history", game.ErrCannotUndo)
	}
	a := t.history[len(t.history)-1]
	prev, err := t.board.Undo(t.state, a)
	if err != nil {
		return err
	}
	t.state = prev
	t.history = t.history[:len(t.history)-1]

	if t.board.IsWallAction(a) {
		t.crossers = t.board.CrossingWalls(prev.Walls)
		for _, p := range []game.Player{game.Yellow, game.Green} {
			t.players[p].GoalCut = game.WallSet{}
			t.recompute(p)
		}
		return nil
	}
	mover := prev.OnMove
	t.players[mover].GoalCut = game.WallSet{}
	t.recompute(mover)
	return nil
}

// Probe tries wall for the player on move without applying it. A wall that
// fails the reachability gate is remembered in the GoalCut of every player it
// would seal, so it is never tried again until that player moves.
func (t *Tracker) Probe(wall int) error {
	_, err := t.board.ExecuteAction(t.state, t.board.WallAction(wall))
	if errors.Is(err, game.ErrBlocksGoalPath) {
		trial := t.state
		trial.Walls = trial.Walls.With(wall)
		for _, p := range []game.Player{game.Yellow, game.Green} {
			if !t.board.CanReachGoal(trial, p) {
				t.players[p].GoalCut = t.players[p].GoalCut.With(wall)
				t.refreshBlockers(p)
			}
		}
	}
	return err
}

// InvalidActions lists the actions known to be illegal without a search:
// crossing walls, memoised goal cuts and blocked pawn moves, sorted.
func (t *Tracker) InvalidActions() []game.Action {
	invalid := t.crossers.
		Union(t.players[game.Yellow].GoalCut).
		Union(t.players[game.Green].GoalCut)
	actions := []game.Action{}
	for _, w := range invalid.Slice() {
		actions = append(actions, game.Action(w))
	}
	for m := game.MoveUp; m < game.NumPawnMoves; m++ {
		if !t.board.IsValidPawnMove(t.state, m) {
			actions = append(actions, t.board.PawnAction(m))
		}
	}
	return actions
}

func (t *Tracker) recompute(p game.Player) {
	path, ok := t.board.ShortestPath(t.state, p)
	if !ok {
		// Reset and Update keep both goals reachable
		panic(fmt.Sprintf("no path to goal for %s in %s", p, t.state))
	}
	t.players[p].Path = path
	t.refreshBlockers(p)
	log.Debug().Msgf("recomputed %s path with %d steps", p, path.Steps())
}

func (t *Tracker) refreshBlockers(p game.Player) {
	t.players[p].Blockers = t.board.PathBlockers(t.players[p].Path, t.crossers, t.players[p].GoalCut)
}
