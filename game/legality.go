package game

// IsMoveBlocked reports whether the single step from cell in direction d
// leaves the board or crosses a wall placed in s.
func (b *Board) IsMoveBlocked(s GameState, cell int, d Direction) bool {
	return b.blocked(s.Walls, cell, d)
}

func (b *Board) blocked(walls WallSet, cell int, d Direction) bool {
	e := b.edge(cell, d)
	return !e.onBoard || walls.HasAny(e.blockers())
}

// IsValidPawnMove reports whether the player on move may make pawn move m.
//
// Steps need an unblocked edge and a free destination. Straight jumps need the
// opponent on the adjacent cell and an unblocked edge behind it. Diagonal
// jumps go around an adjacent opponent through either route, but only when the
// straight jump over that opponent is impossible.
func (b *Board) IsValidPawnMove(s GameState, m PawnMove) bool {
	return b.pawnMoveOpen(s, s.OnMove, m, true)
}

// ValidPawnMoves lists every pawn move available to the player on move.
func (b *Board) ValidPawnMoves(s GameState) []PawnMove {
	moves := []PawnMove{}
	for m := MoveUp; m < NumPawnMoves; m++ {
		if b.IsValidPawnMove(s, m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// PawnMoveTo finds the valid pawn move that brings the player on move to dest.
func (b *Board) PawnMoveTo(s GameState, dest int) (PawnMove, bool) {
	from := s.Pawns[s.OnMove]
	for m := MoveUp; m < NumPawnMoves; m++ {
		if from+b.PawnMoveDelta(m) == dest && b.IsValidPawnMove(s, m) {
			return m, true
		}
	}
	return 0, false
}

// pawnMoveOpen checks whether player p can realise move m. Without
// jumpPriority a diagonal only needs one open route around the opponent; undo
// uses that form because the straight-jump fallback condition belongs to the
// position the move was made from, not to the reverse route.
func (b *Board) pawnMoveOpen(s GameState, p Player, m PawnMove, jumpPriority bool) bool {
	if m < 0 || m >= NumPawnMoves {
		return false
	}
	from := s.Pawns[p]
	opponent := s.Pawns[p.Next()]

	if m.IsStep() {
		d := routes[m][0][0]
		if b.blocked(s.Walls, from, d) {
			return false
		}
		return from+b.deltas[d] != opponent
	}

	for _, route := range routes[m] {
		if m.IsDiagonal() && jumpPriority {
			toward := route[0]
			if b.routeOpen(s.Walls, from, opponent, []Direction{toward, toward}) {
				continue
			}
		}
		if b.routeOpen(s.Walls, from, opponent, route) {
			return true
		}
	}
	return false
}

// routeOpen walks a two-step route whose first step must land on the
// opponent and whose every step must be unblocked.
func (b *Board) routeOpen(walls WallSet, from, opponent int, route []Direction) bool {
	cell := from
	for i, d := range route {
		if b.blocked(walls, cell, d) {
			return false
		}
		cell += b.deltas[d]
		if i == 0 && cell != opponent {
			return false
		}
	}
	return true
}

// IsWallCrossing reports whether wall overlaps or touches a placed wall: the
// same id, the perpendicular wall sharing its centre, or a collinear
// neighbour sharing an end.
func (b *Board) IsWallCrossing(walls WallSet, wall int) bool {
	if walls.Has(wall) {
		return true
	}
	o, row, col := b.WallRowCol(wall)
	if o == Horizontal {
		return walls.Has(wall+b.WallCells) ||
			(col > 0 && walls.Has(wall-1)) ||
			(col < b.WallGrid-1 && walls.Has(wall+1))
	}
	return walls.Has(wall-b.WallCells) ||
		(row > 0 && walls.Has(wall-b.WallGrid)) ||
		(row < b.WallGrid-1 && walls.Has(wall+b.WallGrid))
}

// WallCrossers lists the wall ids that can no longer be placed once wall is:
// itself, its perpendicular twin and its collinear neighbours.
func (b *Board) WallCrossers(wall int) []int {
	o, row, col := b.WallRowCol(wall)
	crossers := []int{wall}
	if o == Horizontal {
		crossers = append(crossers, wall+b.WallCells)
		if col > 0 {
			crossers = append(crossers, wall-1)
		}
		if col < b.WallGrid-1 {
			crossers = append(crossers, wall+1)
		}
		return crossers
	}
	crossers = append(crossers, wall-b.WallCells)
	if row > 0 {
		crossers = append(crossers, wall-b.WallGrid)
	}
	if row < b.WallGrid-1 {
		crossers = append(crossers, wall+b.WallGrid)
	}
	return crossers
}

// CrossingWalls is the set of every wall id excluded by the placed walls.
func (b *Board) CrossingWalls(walls WallSet) WallSet {
	out := WallSet{}
	for _, w := range walls.Slice() {
		for _, c := range b.WallCrossers(w) {
			out = out.With(c)
		}
	}
	return out
}
