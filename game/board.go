package game

import (
	"fmt"
	"strings"
	"sync"
)

const (
	DefaultBoardSize = 9
	MinBoardSize     = 3
	StartingWalls    = 10
)

// Player identifies one of the two sides. Yellow starts on row 0 and races to
// the last row, Green starts on the last row and races to row 0.
type Player int

const (
	NoPlayer Player = -1
	Yellow   Player = 0
	Green    Player = 1
)

func (p Player) Next() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	default:
		return "None"
	}
}

// edge is one (cell, direction) entry of the blocker index.
type edge struct {
	onBoard bool
	walls   [2]int
	count   int
}

func (e edge) blockers() []int {
	return e.walls[:e.count]
}

// Board holds everything derived from the board size: action space
// dimensions, step deltas and the blocker index. It is immutable once built
// and is shared by reference between every GameState of the same size.
type Board struct {
	Size         int // N
	Cells        int // N²
	WallGrid     int // N-1
	WallCells    int // (N-1)²
	WallActions  int // 2(N-1)², horizontal walls first
	TotalActions int // WallActions + NumPawnMoves

	deltas [NumDirections]int
	edges  []edge // indexed by cell*NumDirections + direction
}

var (
	standardBoard *Board
	once          sync.Once
)

// StandardBoard returns the shared 9x9 board.
func StandardBoard() *Board {
	once.Do(func() {
		b, err := NewBoard(DefaultBoardSize)
		if err != nil {
			panic(err)
		}
		standardBoard = b
	})
	return standardBoard
}

// NewBoard derives the board parameters and builds the blocker index for an
// NxN board.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidBoardSize, size, MinBoardSize)
	}
	grid := size - 1
	b := &Board{
		Size:        size,
		Cells:       size * size,
		WallGrid:    grid,
		WallCells:   grid * grid,
		WallActions: 2 * grid * grid,
		deltas:      [NumDirections]int{-size, +1, +size, -1},
	}
	b.TotalActions = b.WallActions + int(NumPawnMoves)
	b.edges = b.buildBlockerIndex()
	return b, nil
}

func (b *Board) buildBlockerIndex() []edge {
	edges := make([]edge, b.Cells*NumDirections)
	last := b.Size - 1
	for cell := 0; cell < b.Cells; cell++ {
		row, col := cell/b.Size, cell%b.Size
		base := cell * NumDirections

		// Up and Down cross a horizontal grid line, blocked by the horizontal
		// walls whose span covers this column.
		if row > 0 {
			edges[base+int(Up)] = b.horizontalEdge(row-1, col)
		}
		if row < last {
			edges[base+int(Down)] = b.horizontalEdge(row, col)
		}
		// Left and Right cross a vertical grid line, blocked by the vertical
		// walls whose span covers this row.
		if col < last {
			edges[base+int(Right)] = b.verticalEdge(row, col)
		}
		if col > 0 {
			edges[base+int(Left)] = b.verticalEdge(row, col-1)
		}
	}
	return edges
}

func (b *Board) horizontalEdge(wallRow, col int) edge {
	e := edge{onBoard: true}
	if col > 0 {
		e.walls[e.count] = b.Wall(Horizontal, wallRow, col-1)
		e.count++
	}
	if col < b.WallGrid {
		e.walls[e.count] = b.Wall(Horizontal, wallRow, col)
		e.count++
	}
	return e
}

func (b *Board) verticalEdge(row, wallCol int) edge {
	e := edge{onBoard: true}
	if row > 0 {
		e.walls[e.count] = b.Wall(Vertical, row-1, wallCol)
		e.count++
	}
	if row < b.WallGrid {
		e.walls[e.count] = b.Wall(Vertical, row, wallCol)
		e.count++
	}
	return e
}

func (b *Board) edge(cell int, d Direction) edge {
	b.mustCell(cell)
	return b.edges[cell*NumDirections+int(d)]
}

// Blockers returns the wall ids whose presence blocks the single step from
// cell in direction d. It returns nil when the step leaves the board.
func (b *Board) Blockers(cell int, d Direction) []int {
	e := b.edge(cell, d)
	if !e.onBoard {
		return nil
	}
	return append([]int(nil), e.blockers()...)
}

// GoalRow is the row a player must reach to win.
func (b *Board) GoalRow(p Player) int {
	if p == Yellow {
		return b.Size - 1
	}
	return 0
}

// HomeRow is the row a player starts on.
func (b *Board) HomeRow(p Player) int {
	return b.GoalRow(p.Next())
}

func (b *Board) IsGoal(p Player, cell int) bool {
	return cell/b.Size == b.GoalRow(p)
}

// Action is a single integer in [0, TotalActions): wall ids first, then the
// 12 pawn moves.
type Action int

const NoAction Action = -1

func (b *Board) WallAction(wall int) Action {
	b.mustWall(wall)
	return Action(wall)
}

func (b *Board) PawnAction(m PawnMove) Action {
	return Action(b.WallActions + int(m))
}

func (b *Board) IsWallAction(a Action) bool {
	return a >= 0 && int(a) < b.WallActions
}

func (b *Board) IsPawnAction(a Action) bool {
	return int(a) >= b.WallActions && int(a) < b.TotalActions
}

// PawnMoveOf returns the pawn move encoded by a pawn action.
func (b *Board) PawnMoveOf(a Action) PawnMove {
	return PawnMove(int(a) - b.WallActions)
}

// FormatAction renders an action for logs, e.g. "wall h(3,4)" or "pawn dr".
func (b *Board) FormatAction(a Action) string {
	if a < 0 || int(a) >= b.TotalActions {
		return fmt.Sprintf("action(%d)", int(a))
	}
	wall, move, isWall := b.SplitAction(a)
	if !isWall {
		return "pawn " + move.String()
	}
	o, row, col := b.WallRowCol(wall)
	return fmt.Sprintf("wall %c(%d,%d)", o.String()[0], row, col)
}

// ParseAction reads an action in the form FormatAction writes. Pawn moves
// also accept the reversed diagonal spellings of ParsePawnMove.
func (b *Board) ParseAction(s string) (Action, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(s), " ")
	switch kind {
	case "pawn":
		if m, ok := ParsePawnMove(arg); ok {
			return b.PawnAction(m), nil
		}
	case "wall":
		var o rune
		var row, col int
		if _, err := fmt.Sscanf(arg, "%c(%d,%d)", &o, &row, &col); err == nil &&
			row >= 0 && row < b.WallGrid && col >= 0 && col < b.WallGrid {
			switch o {
			case 'h':
				return b.WallAction(b.Wall(Horizontal, row, col)), nil
			case 'v':
				return b.WallAction(b.Wall(Vertical, row, col)), nil
			}
		}
	}
	return NoAction, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// SplitAction decodes a into either a wall id or a pawn move.
func (b *Board) SplitAction(a Action) (wall int, move PawnMove, isWall bool) {
	if b.IsWallAction(a) {
		return int(a), 0, true
	}
	return -1, b.PawnMoveOf(a), false
}
