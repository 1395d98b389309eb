package game

import "quoridor/utils"

// Path is a sequence of cells from a pawn's cell (first) to a goal-row cell
// (last), each consecutive pair one unblocked step apart.
type Path []int

// Steps is the number of single-cell steps along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// ShortestPath runs a breadth-first search from the player's pawn to the
// player's goal row under the placed walls, ignoring both pawns. Goal cells
// listed in avoid are still traversed but never accepted as the end of the
// path. It returns false when no goal cell is reachable.
func (b *Board) ShortestPath(s GameState, p Player, avoid ...int) (Path, bool) {
	return b.shortestPath(s.Walls, s.Pawns[p], p, avoid)
}

func (b *Board) shortestPath(walls WallSet, start int, p Player, avoid []int) (Path, bool) {
	previous := make([]int, b.Cells)
	for i := range previous {
		previous[i] = -1
	}
	previous[start] = start

	queue := []int{start}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]

		if b.IsGoal(p, cell) && utils.FindIndex(avoid, cell) < 0 {
			return tracePath(previous, start, cell), true
		}

		for d := Up; d < NumDirections; d++ {
			if b.blocked(walls, cell, d) {
				continue
			}
			next := cell + b.deltas[d]
			if previous[next] != -1 { // Already visited
				continue
			}
			previous[next] = cell
			queue = append(queue, next)
		}
	}
	return nil, false
}

func tracePath(previous []int, start, end int) Path {
	path := Path{end}
	for cell := end; cell != start; {
		cell = previous[cell]
		path = append(path, cell)
	}
	// Reverse into start -> goal order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CanReachGoal reports whether the player has any path to the goal row.
func (b *Board) CanReachGoal(s GameState, p Player) bool {
	_, ok := b.ShortestPath(s, p)
	return ok
}

// BothPlayersCanReachGoal is the gate every wall placement must pass.
func (b *Board) BothPlayersCanReachGoal(s GameState) bool {
	return b.CanReachGoal(s, Yellow) && b.CanReachGoal(s, Green)
}

// PathBlockers returns the walls that would cut a step of path, leaving out
// any wall found in one of the exclude sets.
func (b *Board) PathBlockers(path Path, exclude ...WallSet) WallSet {
	out := WallSet{}
	for i := 0; i+1 < len(path); i++ {
		d, ok := b.DirectionForDelta(path[i+1] - path[i])
		if !ok {
			panic("path cells are not adjacent")
		}
	next:
		for _, w := range b.edge(path[i], d).blockers() {
			for _, ex := range exclude {
				if ex.Has(w) {
					continue next
				}
			}
			out = out.With(w)
		}
	}
	return out
}
