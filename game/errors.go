package game

import "errors"

// Every transition failure is one of these kinds, wrapped with context.
// Match with errors.Is. A failed transition never changes the state.
var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrGameAlreadyOver  = errors.New("game already over")
	ErrNoWallsRemaining = errors.New("no walls remaining")
	ErrWallCrosses      = errors.New("wall crosses already placed walls")
	ErrBlocksGoalPath   = errors.New("wall blocks a path to goal")
	ErrIllegalPawnMove  = errors.New("illegal pawn move")
	ErrCannotUndo       = errors.New("cannot undo")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidState     = errors.New("invalid game state")
)
