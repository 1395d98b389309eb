package game

import "fmt"

// Direction is one of the four orthogonal single-cell steps.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

const NumDirections = 4

var directionNames = [NumDirections]string{"up", "right", "down", "left"}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % NumDirections
}

// Orientation of a wall segment. Horizontal walls block Up/Down steps,
// vertical walls block Left/Right steps.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// PawnMove identifies one of the 12 relative pawn moves.
type PawnMove int

const (
	MoveUp PawnMove = iota
	MoveRight
	MoveDown
	MoveLeft
	MoveUpUp
	MoveRightRight
	MoveDownDown
	MoveLeftLeft
	MoveUpRight
	MoveUpLeft
	MoveDownRight
	MoveDownLeft
	NumPawnMoves
)

var pawnMoveNames = [NumPawnMoves]string{
	"u", "r", "d", "l",
	"uu", "rr", "dd", "ll",
	"ur", "ul", "dr", "dl",
}

func (m PawnMove) String() string {
	if m < 0 || m >= NumPawnMoves {
		return fmt.Sprintf("PawnMove(%d)", int(m))
	}
	return pawnMoveNames[m]
}

// ParsePawnMove accepts the short names used by String ("u", "dr", ...) and
// their reversed diagonal spellings ("ru", "ld", ...).
func ParsePawnMove(s string) (PawnMove, bool) {
	for m, name := range pawnMoveNames {
		if name == s {
			return PawnMove(m), true
		}
		if m >= int(MoveUpRight) && name[1:]+name[:1] == s {
			return PawnMove(m), true
		}
	}
	return 0, false
}

// Step moves go one cell, jumps go two cells straight over the opponent,
// diagonals go around the opponent.
func (m PawnMove) IsStep() bool     { return m >= MoveUp && m <= MoveLeft }
func (m PawnMove) IsJump() bool     { return m >= MoveUpUp && m <= MoveLeftLeft }
func (m PawnMove) IsDiagonal() bool { return m >= MoveUpRight && m <= MoveDownLeft }

// Anti returns the move that exactly reverses m.
func (m PawnMove) Anti() PawnMove {
	return antiMoves[m]
}

// routes lists the step sequences that realise each move. Diagonal moves have
// two routes, one through each orthogonal neighbour.
var routes = [NumPawnMoves][][]Direction{
	{{Up}},
	{{Right}},
	{{Down}},
	{{Left}},

	{{Up, Up}},
	{{Right, Right}},
	{{Down, Down}},
	{{Left, Left}},

	{{Up, Right}, {Right, Up}},
	{{Up, Left}, {Left, Up}},
	{{Down, Right}, {Right, Down}},
	{{Down, Left}, {Left, Down}},
}

var antiMoves = [NumPawnMoves]PawnMove{
	MoveDown, MoveLeft, MoveUp, MoveRight,
	MoveDownDown, MoveLeftLeft, MoveUpUp, MoveRightRight,
	MoveDownLeft, MoveDownRight, MoveUpLeft, MoveUpRight,
}

// CellRowCol converts a linear cell index into its row and column.
func (b *Board) CellRowCol(cell int) (row, col int) {
	b.mustCell(cell)
	return cell / b.Size, cell % b.Size
}

// Cell converts a row and column into a linear cell index.
func (b *Board) Cell(row, col int) int {
	if !b.OnBoard(row, col) {
		panic(fmt.Sprintf("cell (%d,%d) is off a %dx%d board", row, col, b.Size, b.Size))
	}
	return row*b.Size + col
}

func (b *Board) OnBoard(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// WallRowCol converts a wall id into its orientation and its position on the
// (N-1)x(N-1) wall grid. A wall at (row, col) runs along the grid line between
// cell rows/columns row and row+1 (resp. col and col+1) and spans two cells.
func (b *Board) WallRowCol(wall int) (o Orientation, row, col int) {
	b.mustWall(wall)
	if wall >= b.WallCells {
		o = Vertical
		wall -= b.WallCells
	}
	return o, wall / b.WallGrid, wall % b.WallGrid
}

// Wall converts an orientation and wall grid position into a wall id.
func (b *Board) Wall(o Orientation, row, col int) int {
	if row < 0 || row >= b.WallGrid || col < 0 || col >= b.WallGrid {
		panic(fmt.Sprintf("wall (%d,%d) is off a %dx%d wall grid", row, col, b.WallGrid, b.WallGrid))
	}
	id := row*b.WallGrid + col
	if o == Vertical {
		id += b.WallCells
	}
	return id
}

// StepDelta is the linear cell offset of a single step in direction d.
func (b *Board) StepDelta(d Direction) int {
	return b.deltas[d]
}

// DirectionForDelta is the inverse of StepDelta.
func (b *Board) DirectionForDelta(delta int) (Direction, bool) {
	for d, dd := range b.deltas {
		if dd == delta {
			return Direction(d), true
		}
	}
	return 0, false
}

// PawnMoveDelta is the total linear cell offset of a pawn move.
func (b *Board) PawnMoveDelta(m PawnMove) int {
	delta := 0
	for _, d := range routes[m][0] {
		delta += b.deltas[d]
	}
	return delta
}

func (b *Board) mustCell(cell int) {
	if cell < 0 || cell >= b.Cells {
		panic(fmt.Sprintf("cell %d out of range [0,%d)", cell, b.Cells))
	}
}

func (b *Board) mustWall(wall int) {
	if wall < 0 || wall >= b.WallActions {
		panic(fmt.Sprintf("wall %d out of range [0,%d)", wall, b.WallActions))
	}
}

// PawnMoveForDelta returns the first pawn move whose total offset is delta.
// On a 3x3 board some offsets are shared by two moves; use PawnMoveTo there.
func (b *Board) PawnMoveForDelta(delta int) (PawnMove, bool) {
	for m := MoveUp; m < NumPawnMoves; m++ {
		if b.PawnMoveDelta(m) == delta {
			return m, true
		}
	}
	return 0, false
}
