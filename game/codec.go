package game

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"
)

// Tuple is the flat persistence form of a GameState:
// (on_move, yellow cell, green cell, yellow walls, green walls, sorted walls).
// It marshals to a JSON array in that order.
type Tuple struct {
	OnMove    Player
	Pawns     [2]int
	WallsLeft [2]int
	Walls     []int
}

func (s GameState) Tuple() Tuple {
	return Tuple{
		OnMove:    s.OnMove,
		Pawns:     s.Pawns,
		WallsLeft: s.WallsLeft,
		Walls:     s.Walls.Slice(),
	}
}

func (t Tuple) Equal(other Tuple) bool {
	return t.OnMove == other.OnMove &&
		t.Pawns == other.Pawns &&
		t.WallsLeft == other.WallsLeft &&
		slices.Equal(t.Walls, other.Walls)
}

func (t Tuple) MarshalJSON() ([]byte, error) {
	walls := t.Walls
	if walls == nil {
		walls = []int{}
	}
	return json.Marshal([]any{int(t.OnMove), t.Pawns[0], t.Pawns[1], t.WallsLeft[0], t.WallsLeft[1], walls})
}

func (t *Tuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 6 {
		return fmt.Errorf("%w: tuple has %d fields, want 6", ErrInvalidState, len(raw))
	}
	ints := make([]int, 5)
	for i := range ints {
		if err := json.Unmarshal(raw[i], &ints[i]); err != nil {
			return fmt.Errorf("%w: field %d: %v", ErrInvalidState, i, err)
		}
	}
	var walls []int
	if err := json.Unmarshal(raw[5], &walls); err != nil {
		return fmt.Errorf("%w: walls: %v", ErrInvalidState, err)
	}
	*t = Tuple{
		OnMove:    Player(ints[0]),
		Pawns:     [2]int{ints[1], ints[2]},
		WallsLeft: [2]int{ints[3], ints[4]},
		Walls:     walls,
	}
	return nil
}

// FromTuple rebuilds a GameState, rejecting tuples that break any state
// invariant: player range, distinct on-board pawns, wall stock total, valid
// non-crossing walls and reachable goals.
func (b *Board) FromTuple(t Tuple) (GameState, error) {
	var s GameState
	if t.OnMove != Yellow && t.OnMove != Green {
		return s, fmt.Errorf("%w: player %d", ErrInvalidState, int(t.OnMove))
	}
	for _, cell := range t.Pawns {
		if cell < 0 || cell >= b.Cells {
			return s, fmt.Errorf("%w: pawn cell %d off the board", ErrInvalidState, cell)
		}
	}
	if t.Pawns[0] == t.Pawns[1] {
		return s, fmt.Errorf("%w: both pawns on cell %d", ErrInvalidState, t.Pawns[0])
	}
	for _, left := range t.WallsLeft {
		if left < 0 || left > StartingWalls {
			return s, fmt.Errorf("%w: wall stock %d", ErrInvalidState, left)
		}
	}
	if t.WallsLeft[0]+t.WallsLeft[1]+len(t.Walls) != 2*StartingWalls {
		return s, fmt.Errorf("%w: %d walls placed with stocks %v", ErrInvalidState, len(t.Walls), t.WallsLeft)
	}

	walls := WallSet{}
	for _, w := range t.Walls {
		if w < 0 || w >= b.WallActions {
			return s, fmt.Errorf("%w: wall %d out of range", ErrInvalidState, w)
		}
		if b.IsWallCrossing(walls, w) {
			return s, fmt.Errorf("%w: wall %d crosses another wall", ErrInvalidState, w)
		}
		walls = walls.With(w)
	}

	s = GameState{OnMove: t.OnMove, Pawns: t.Pawns, WallsLeft: t.WallsLeft, Walls: walls}
	if !b.BothPlayersCanReachGoal(s) {
		return GameState{}, fmt.Errorf("%w: a player cannot reach the goal", ErrInvalidState)
	}
	return s, nil
}

// Replay applies history from the initial state and returns the final state.
// The error names the index of the first rejected action.
func (b *Board) Replay(history []Action) (GameState, error) {
	return b.ReplayFrom(b.InitialState(), history)
}

// ReplayFrom is Replay starting at s.
func (b *Board) ReplayFrom(s GameState, history []Action) (GameState, error) {
	for i, a := range history {
		next, err := b.ExecuteAction(s, a)
		if err != nil {
			return s, fmt.Errorf("action %d (%s): %w", i, b.FormatAction(a), err)
		}
		s = next
	}
	return s, nil
}

// SortedActions returns a sorted copy, e.g. for comparing legal action sets.
func SortedActions(actions []Action) []Action {
	out := slices.Clone(actions)
	slices.Sort(out)
	return out
}
