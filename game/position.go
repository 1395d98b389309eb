package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Position binds a GameState to its Board so that it satisfies State.
type Position struct {
	Board *Board
	GameState
}

func NewPosition(b *Board) *Position {
	return &Position{Board: b, GameState: b.InitialState()}
}

func (p *Position) Player() Player {
	return p.OnMove
}

func (p *Position) LegalMoves() []Action {
	return p.Board.LegalActions(p.GameState)
}

// Play panics if the action is illegal; searchers only play actions returned
// by LegalMoves.
func (p *Position) Play(a Action) State {
	next, err := p.Board.ExecuteAction(p.GameState, a)
	if err != nil {
		panic(fmt.Sprintf("play %s: %v", p.Board.FormatAction(a), err))
	}
	return &Position{Board: p.Board, GameState: next}
}

func (p *Position) Winner() Player {
	return p.Board.Winner(p.GameState)
}

// Hash uses FNV-1a over the flat tuple encoding.
func (p *Position) Hash() StateHash {
	h := fnv.New64a()
	t := p.Tuple()
	buf := make([]byte, 8)
	for _, v := range append([]int{p.Board.Size, int(t.OnMove), t.Pawns[0], t.Pawns[1], t.WallsLeft[0], t.WallsLeft[1]}, t.Walls...) {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	return StateHash(h.Sum64())
}
