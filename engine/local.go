package engine

import (
	"fmt"
	"quoridor/agent"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/gamemaster"
	"quoridor/meta"
	"quoridor/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays two agents against each other in-process. The session is
// the authoritative game; agents only ever see copies of its state.
type LocalEngine struct {
	session  gamemaster.Engine
	agents   [2]agent.Agent
	start    *game.GameState
	maxMoves int
}

type Option func(*LocalEngine)

// WithStart plays from s instead of the initial state.
func WithStart(s game.GameState) Option {
	return func(e *LocalEngine) {
		e.start = &s
	}
}

// WithSession plays through session instead of a fresh gamemaster.Session.
func WithSession(session gamemaster.Engine) Option {
	return func(e *LocalEngine) {
		e.session = session
	}
}

func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		e.maxMoves = n
	}
}

// NewLocalEngine fails with game.ErrInvalidState when the start given by
// WithStart is not a playable position on b.
func NewLocalEngine(b *game.Board, yellow, green agent.Agent, options ...Option) (*LocalEngine, error) {
	e := &LocalEngine{
		session:  gamemaster.NewSession(b),
		agents:   [2]agent.Agent{yellow, green},
		maxMoves: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	if e.start != nil {
		if _, err := b.FromTuple(e.start.Tuple()); err != nil {
			return nil, fmt.Errorf("invalid start: %w", err)
		}
	}
	return e, nil
}

var _ Engine = (*LocalEngine)(nil)

// Run executes the entire game loop until a winner is found, the player on
// move is stuck or the move limit is reached. Winner is NoPlayer in the
// latter two cases.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	getUpdate := e.init()
	b := e.session.Position().Board

	// Actions each agent has not seen yet, its own included
	updates := [2][]searcher.Segment{}
	moveMetrics := []metrics.MoveMetric{}
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.session.Position().OnMove,
		StartTime:      time.Now(),
	}

	log.Info().Msgf("%s is starting", gameMetric.StartingPlayer)

	step := 1
	for !e.session.GameOver() && step <= e.maxMoves {
		state := e.session.Position()
		player := state.OnMove
		legal := state.LegalMoves()
		if len(legal) == 0 {
			log.Warn().Msgf("%s has no legal action in %s", player, state.GameState)
			break
		}

		action, searchMetric := e.agents[player].FindMove(state, updates[player])
		if !b.IsLegal(state.GameState, action) {
			log.Warn().Msgf("%s chose illegal action %s, playing %s instead", player, b.FormatAction(action), b.FormatAction(legal[0]))
			action = legal[0]
		}
		if err := e.session.Play(action); err != nil {
			// Legal actions never fail
			panic(fmt.Sprintf("failed to play %s: %v", b.FormatAction(action), err))
		}
		updates[player] = nil
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			hash := (&game.Position{Board: b, GameState: u.State}).Hash()
			for p := range updates {
				updates[p] = append(updates[p], searcher.Segment{Move: u.Action, StateHash: hash})
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       action,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: %s played %s", step, player, b.FormatAction(action))
		step++
	}

	gameMetric.Winner = e.session.Position().Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if gameMetric.Winner == game.NoPlayer {
		log.Info().Msgf("stopped after %d moves without a winner", gameMetric.TotalMoves)
	} else {
		log.Info().Msgf("%s won after %d moves", gameMetric.Winner, gameMetric.TotalMoves)
	}
	return gameMetric.Winner, gameMetric, moveMetrics
}

func (e *LocalEngine) init() gamemaster.UpdateGetter {
	_, getUpdate := e.session.Init()
	if e.start != nil {
		if err := e.session.Load(*e.start, nil); err != nil {
			// NewLocalEngine has validated the start
			panic(fmt.Sprintf("failed to load start state: %v", err))
		}
	}
	return getUpdate
}

// Start is the state the game was played from.
func (e *LocalEngine) Start() game.GameState {
	return e.session.Start()
}

// History lists the actions played by the last Run.
func (e *LocalEngine) History() []game.Action {
	return e.session.History()
}

func (e *LocalEngine) State() game.GameState {
	return e.session.Position().GameState
}
