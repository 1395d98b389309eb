package gamemaster

import (
	"errors"
	"fmt"
	"quoridor/game"
	"quoridor/pathcache"
	"sync"
)

var ErrGameOver = errors.New("game is over - no moves allowed")

// UpdateGetter returns the next pending update, or false if there is none.
type UpdateGetter func() (Update, bool)

// Engine is the authoritative game a match is played through.
type Engine interface {
	Init() (game.State, UpdateGetter)
	Load(start game.GameState, history []game.Action) error
	Play(game.Action) error
	Undo() error
	Position() *game.Position
	GameOver() bool
	Start() game.GameState
	History() []game.Action
}

var _ Engine = (*Session)(nil)

// Update reports an action applied to (or, when Undone, taken back from) the
// authoritative state, together with the resulting state.
type Update struct {
	Action game.Action
	State  game.GameState
	Undone bool
}

const updateBuffer = 16

// Session is the authoritative game: it owns the state and its history and
// is safe for concurrent use by several players.
type Session struct {
	mu       sync.Mutex
	tracker  *pathcache.Tracker
	updateCh chan Update
	gameOver bool
}

func NewSession(b *game.Board) *Session {
	return &Session{
		tracker:  pathcache.NewTracker(b),
		updateCh: make(chan Update, updateBuffer),
	}
}

// Init starts a new game from the initial state.
func (s *Session) Init() (game.State, UpdateGetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.tracker.Board()
	if err := s.tracker.Reset(b.InitialState()); err != nil {
		panic(err)
	}
	s.gameOver = false
	s.drain()
	return s.position(), s.nextUpdate
}

// Load starts from start and replays history, e.g. for a saved game. A start
// that breaks a state invariant fails with game.ErrInvalidState and leaves the
// session as it was.
func (s *Session) Load(start game.GameState, history []game.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, err := s.tracker.Board().FromTuple(start.Tuple())
	if err != nil {
		return fmt.Errorf("failed to load start: %w", err)
	}
	if err := s.tracker.Reset(start); err != nil {
		return err
	}
	s.drain()
	for i, a := range history {
		if err := s.tracker.Update(a); err != nil {
			_ = s.tracker.Reset(start)
			return fmt.Errorf("failed to replay action %d: %w", i, err)
		}
	}
	s.gameOver = s.tracker.IsTerminal()
	return nil
}

func (s *Session) Play(a game.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return ErrGameOver
	}
	if err := s.tracker.Update(a); err != nil {
		return fmt.Errorf("illegal move %s: %w", s.tracker.Board().FormatAction(a), err)
	}
	s.gameOver = s.tracker.IsTerminal()
	s.publish(Update{Action: a, State: s.tracker.State()})
	return nil
}

// Undo takes back the most recent action, also after the game has ended.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.tracker.History()
	if len(history) == 0 {
		return fmt.Errorf("%w: no moves played", game.ErrCannotUndo)
	}
	if err := s.tracker.Undo(); err != nil {
		return err
	}
	s.gameOver = false
	s.publish(Update{Action: history[len(history)-1], State: s.tracker.State(), Undone: true})
	return nil
}

func (s *Session) State() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State()
}

func (s *Session) Position() *game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position()
}

func (s *Session) History() []game.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.History()
}

func (s *Session) Start() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Start()
}

func (s *Session) Board() *game.Board {
	return s.tracker.Board()
}

func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

func (s *Session) Winner() game.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Board().Winner(s.tracker.State())
}

// Paths exposes the cached shortest path and blockers of player p.
func (s *Session) Paths(p game.Player) pathcache.Paths {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Paths(p)
}

func (s *Session) position() *game.Position {
	return &game.Position{Board: s.tracker.Board(), GameState: s.tracker.State()}
}

func (s *Session) nextUpdate() (Update, bool) {
	select {
	case u := <-s.updateCh:
		return u, true
	default:
		// No updates yet
		return Update{}, false
	}
}

// publish never blocks: when nobody drains the updates the oldest is dropped.
func (s *Session) publish(u Update) {
	for {
		select {
		case s.updateCh <- u:
			return
		default:
			select {
			case <-s.updateCh:
			default:
			}
		}
	}
}

func (s *Session) drain() {
	for {
		select {
		case <-s.updateCh:
		default:
			return
		}
	}
}
