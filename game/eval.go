package game

// EvaluatePathRace scores the race to the goal rows from the current player's
// perspective: a shorter remaining path and a larger wall stock both help.
func EvaluatePathRace(s State) float64 {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	current := p.OnMove
	opponent := current.Next()

	distanceScore := p.calculateDistanceScore(current, opponent)
	wallScore := normalize(float64(p.WallsLeft[current]), float64(p.WallsLeft[opponent]))

	return (2*distanceScore + wallScore) / 3
}

// EvaluateDistance only considers the remaining path lengths.
func EvaluateDistance(s State) float64 {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	return p.calculateDistanceScore(p.OnMove, p.OnMove.Next())
}

func (p *Position) calculateDistanceScore(current, opponent Player) float64 {
	mine, ok := p.Board.ShortestPath(p.GameState, current)
	if !ok {
		return -1
	}
	theirs, ok := p.Board.ShortestPath(p.GameState, opponent)
	if !ok {
		return 1
	}
	// The player on move gets the next step in, which is worth one cell
	myDistance := float64(mine.Steps())
	theirDistance := float64(theirs.Steps()) + 1
	// Shorter is better, so the opponent's distance is the "value"
	return normalize(theirDistance, myDistance)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
