package game

import (
	"fmt"
)

// GameState is the complete position between two actions. It is a value:
// transitions return a new GameState and never modify the one passed in.
type GameState struct {
	OnMove    Player  // Player who must act next
	Pawns     [2]int  // Pawn cell per player
	WallsLeft [2]int  // Wall stock per player
	Walls     WallSet // Placed wall ids
}

func (s GameState) Equal(other GameState) bool {
	return s.OnMove == other.OnMove &&
		s.Pawns == other.Pawns &&
		s.WallsLeft == other.WallsLeft &&
		s.Walls.Equal(other.Walls)
}

func (s GameState) String() string {
	return fmt.Sprintf("on_move=%s yellow=%d green=%d walls_left=%v walls=%s",
		s.OnMove, s.Pawns[Yellow], s.Pawns[Green], s.WallsLeft, s.Walls)
}

// InitialState puts both pawns on the middle of their home rows with full
// wall stocks. Yellow moves first.
func (b *Board) InitialState() GameState {
	half := b.Size / 2
	return GameState{
		OnMove:    Yellow,
		Pawns:     [2]int{half, b.Cells - half - b.Size%2},
		WallsLeft: [2]int{StartingWalls, StartingWalls},
	}
}

// IsTerminal reports whether either pawn stands on its goal row.
func (b *Board) IsTerminal(s GameState) bool {
	return b.Winner(s) != NoPlayer
}

// Winner returns the player whose pawn reached its goal row, or NoPlayer.
func (b *Board) Winner(s GameState) Player {
	for _, p := range []Player{Yellow, Green} {
		if b.IsGoal(p, s.Pawns[p]) {
			return p
		}
	}
	return NoPlayer
}

// ExecuteAction applies action a for the player on move. On failure the
// returned error wraps one of the Err kinds and s is left as it was.
func (b *Board) ExecuteAction(s GameState, a Action) (GameState, error) {
	if a < 0 || int(a) >= b.TotalActions {
		return s, fmt.Errorf("%w: %d not in [0,%d)", ErrUnknownAction, int(a), b.TotalActions)
	}
	if b.IsTerminal(s) {
		return s, fmt.Errorf("%w: %s has won", ErrGameAlreadyOver, b.Winner(s))
	}
	player := s.OnMove
	next := s

	if b.IsWallAction(a) {
		wall := int(a)
		if s.WallsLeft[player] == 0 {
			return s, fmt.Errorf("%w: %s", ErrNoWallsRemaining, player)
		}
		if b.IsWallCrossing(s.Walls, wall) {
			return s, fmt.Errorf("%w: %s", ErrWallCrosses, b.FormatAction(a))
		}
		// Tentative insertion into a copy; discarded if the gate fails
		next.Walls = s.Walls.With(wall)
		if !b.BothPlayersCanReachGoal(next) {
			return s, fmt.Errorf("%w: %s", ErrBlocksGoalPath, b.FormatAction(a))
		}
		next.WallsLeft[player]--
	} else {
		m := b.PawnMoveOf(a)
		if !b.IsValidPawnMove(s, m) {
			return s, fmt.Errorf("%w: %s from cell %d", ErrIllegalPawnMove, m, s.Pawns[player])
		}
		next.Pawns[player] += b.PawnMoveDelta(m)
	}

	next.OnMove = player.Next()
	return next, nil
}

// Undo reverses action a, which must be the most recent action applied to
// reach s. Wall undo requires the wall to be present and refunds the player
// who placed it. Pawn undo requires the reverse move to be open for the
// player who made it. Crossing and reachability are not checked again.
func (b *Board) Undo(s GameState, a Action) (GameState, error) {
	if a < 0 || int(a) >= b.TotalActions {
		return s, fmt.Errorf("%w: %w: %d", ErrCannotUndo, ErrUnknownAction, int(a))
	}
	previous := s.OnMove.Next()
	prev := s
	prev.OnMove = previous

	if b.IsWallAction(a) {
		wall := int(a)
		if !s.Walls.Has(wall) {
			return s, fmt.Errorf("%w: %s is not placed", ErrCannotUndo, b.FormatAction(a))
		}
		if s.WallsLeft[previous] >= StartingWalls {
			return s, fmt.Errorf("%w: %s has a full wall stock", ErrCannotUndo, previous)
		}
		prev.Walls = s.Walls.Without(wall)
		prev.WallsLeft[previous]++
		return prev, nil
	}

	anti := b.PawnMoveOf(a).Anti()
	if !b.pawnMoveOpen(prev, previous, anti, false) {
		return s, fmt.Errorf("%w: reverse move %s from cell %d", ErrCannotUndo, anti, s.Pawns[previous])
	}
	prev.Pawns[previous] += b.PawnMoveDelta(anti)
	return prev, nil
}

// IsLegal reports whether ExecuteAction would accept a.
func (b *Board) IsLegal(s GameState, a Action) bool {
	_, err := b.ExecuteAction(s, a)
	return err == nil
}

// LegalActions enumerates every action ExecuteAction accepts from s, walls
// first in id order, then pawn moves. A terminal state has none.
func (b *Board) LegalActions(s GameState) []Action {
	actions := []Action{}
	if b.IsTerminal(s) {
		return actions
	}
	if s.WallsLeft[s.OnMove] > 0 {
		crossing := b.CrossingWalls(s.Walls)
		for wall := 0; wall < b.WallActions; wall++ {
			if crossing.Has(wall) {
				continue
			}
			if b.BothPlayersCanReachGoal(GameState{Pawns: s.Pawns, Walls: s.Walls.With(wall)}) {
				actions = append(actions, Action(wall))
			}
		}
	}
	for _, m := range b.ValidPawnMoves(s) {
		actions = append(actions, b.PawnAction(m))
	}
	return actions
}
