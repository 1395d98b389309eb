// quoridor plays and analyses Quoridor matches between search and scripted agents.
package main

import (
	"flag"
	"fmt"
	"os"
	"quoridor/config"
	"quoridor/engine"
	"quoridor/experiments"
	"quoridor/game"
	"quoridor/gamemaster"
	"quoridor/record"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Command-line flags, overriding the config file when set
var (
	flagConfig     = flag.String("config", "", "Config file (default: quoridor/config.json in the XDG config dirs)")
	flagBoardSize  = flag.Int("size", 0, "Board size N (at least 3)")
	flagYellow     = flag.String("yellow", "", "Yellow agent: mcts, random, path or heuristic")
	flagGreen      = flag.String("green", "", "Green agent: mcts, random, path or heuristic")
	flagGoroutines = flag.Int("goroutines", 0, "Goroutines per search")
	flagEpisodes   = flag.Int("episodes", 0, "Search episodes per move")
	flagDuration   = flag.Duration("duration", 0, "Search time per move, used instead of episodes")
	flagGames      = flag.Int("games", 1, "Number of matches to play")
	flagExperiment = flag.String("experiment", "", "Run an experiment: parallelization, cutoff, baseline, throughput or matchup")
	flagReplay     = flag.String("replay", "", "Replay a saved game by name or path")
	flagList       = flag.Bool("list", false, "List saved games")
	flagLogLevel   = flag.String("log", "", "Log level")
	flagSeed       = flag.Uint64("seed", 0, "Seed for scripted agents")
	flagNoSave     = flag.Bool("nosave", false, "Do not save played games")
	flagOpening    = flag.String("opening", "", `Actions played before the agents take over, e.g. "pawn d; pawn u; wall h(3,3)"`)
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	switch {
	case *flagList:
		err = listGames()
	case *flagReplay != "":
		err = replayGame(*flagReplay)
	case *flagExperiment != "":
		err = runExperiment(cfg, *flagExperiment)
	default:
		err = playMatches(cfg, *flagGames, *flagOpening)
	}
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *flagConfig != "" {
		cfg, err = config.LoadFile(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.BoardSize = *flagBoardSize
		case "yellow":
			cfg.Yellow.Kind = *flagYellow
		case "green":
			cfg.Green.Kind = *flagGreen
		case "goroutines":
			cfg.Yellow.Goroutines, cfg.Green.Goroutines = *flagGoroutines, *flagGoroutines
		case "episodes":
			cfg.Yellow.Episodes, cfg.Green.Episodes = *flagEpisodes, *flagEpisodes
		case "duration":
			ms := int(flagDuration.Milliseconds())
			cfg.Yellow.DurationMS, cfg.Green.DurationMS = ms, ms
			cfg.Yellow.Episodes, cfg.Green.Episodes = 0, 0
		case "games":
			cfg.Experiments.Games = *flagGames
		case "log":
			cfg.LogLevel = *flagLogLevel
		case "seed":
			cfg.Seed = *flagSeed
		case "nosave":
			cfg.SaveGames = !*flagNoSave
		}
	})
	// Search settings for a side that was switched to mcts on the command line
	for _, side := range []*config.AgentSettings{&cfg.Yellow, &cfg.Green} {
		if side.Kind == experiments.KindMCTS && side.Goroutines == 0 {
			side.Goroutines = config.DefaultConfig.Yellow.Goroutines
		}
		if side.Kind == experiments.KindMCTS && side.Episodes == 0 && side.DurationMS == 0 {
			side.Episodes = config.DefaultConfig.Yellow.Episodes
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func playMatches(cfg *config.Config, games int, opening string) error {
	b, err := game.NewBoard(cfg.BoardSize)
	if err != nil {
		return err
	}
	options := []engine.Option{engine.WithMaxMoves(cfg.MaxMoves)}
	if opening != "" {
		start, err := playOpening(b, opening)
		if err != nil {
			return err
		}
		options = append(options, engine.WithStart(start))
	}
	var store *record.Store
	if cfg.SaveGames {
		if store, err = record.NewStore(); err != nil {
			return err
		}
	}

	wins := map[game.Player]int{}
	for i := 0; i < games; i++ {
		seed := cfg.Seed + uint64(2*i)
		yellow := experiments.CreateAgent(cfg.Yellow.AgentConfig(1), seed)
		green := experiments.CreateAgent(cfg.Green.AgentConfig(2), seed+1)
		var e engine.Engine
		e, err = engine.NewLocalEngine(b, yellow, green, options...)
		if err != nil {
			return err
		}

		winner, gameMetric, _ := e.Run()
		wins[winner]++
		fmt.Printf("game %d: %s won after %d moves in %s\n", i+1, winner, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))

		if store == nil {
			continue
		}
		g, err := record.New(b, cfg.Yellow.Kind, cfg.Green.Kind, e.Start(), e.History())
		if err != nil {
			return err
		}
		name, err := store.Save(g)
		if err != nil {
			return err
		}
		log.Info().Msgf("saved game as %s", name)
	}

	fmt.Printf("Yellow (%s) %d, Green (%s) %d, undecided %d\n",
		cfg.Yellow.Kind, wins[game.Yellow], cfg.Green.Kind, wins[game.Green], wins[game.NoPlayer])
	return nil
}

func runExperiment(cfg *config.Config, name string) error {
	b, err := game.NewBoard(cfg.BoardSize)
	if err != nil {
		return err
	}
	settings := experiments.Settings{
		Board:     b,
		OutputDir: cfg.Experiments.OutputDir,
		Games:     cfg.Experiments.Games,
		MaxMoves:  cfg.MaxMoves,
		Seed:      cfg.Seed,
	}

	var dir string
	switch name {
	case "parallelization":
		dir, err = experiments.RunParallelizationExperiment(settings)
	case "cutoff":
		dir, err = experiments.RunCutoffExperiment(settings)
	case "baseline":
		dir, err = experiments.RunBaselineExperiment(settings)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(settings)
	case "matchup":
		dir, err = experiments.RunMatchUp(settings, cfg.Yellow.AgentConfig(1), cfg.Green.AgentConfig(2))
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}
	fmt.Printf("results written to %s\n", dir)
	return nil
}

func listGames() error {
	store, err := record.NewStore()
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// playOpening plays the semicolon separated actions from the initial state.
func playOpening(b *game.Board, opening string) (game.GameState, error) {
	actions := []game.Action{}
	for _, field := range strings.Split(opening, ";") {
		a, err := b.ParseAction(field)
		if err != nil {
			return game.GameState{}, fmt.Errorf("bad opening: %w", err)
		}
		actions = append(actions, a)
	}
	start, err := b.Replay(actions)
	if err != nil {
		return game.GameState{}, fmt.Errorf("bad opening: %w", err)
	}
	return start, nil
}

// replayGame loads a saved game into a session and prints every position.
func replayGame(nameOrPath string) error {
	var g record.Game
	var err error
	if _, statErr := os.Stat(nameOrPath); statErr == nil {
		g, err = record.LoadFile(nameOrPath)
	} else {
		var store *record.Store
		if store, err = record.NewStore(); err != nil {
			return err
		}
		g, err = store.Load(nameOrPath)
	}
	if err != nil {
		return err
	}

	b, start, _, err := g.Replay()
	if err != nil {
		return err
	}
	session := gamemaster.NewSession(b)
	if err := session.Load(start, nil); err != nil {
		return err
	}

	fmt.Printf("%s (Yellow) vs %s (Green) on %dx%d\n", g.Yellow, g.Green, b.Size, b.Size)
	fmt.Printf("start: %s\n", session.State())
	for i, a := range g.History {
		player := session.State().OnMove
		if err := session.Play(a); err != nil {
			return fmt.Errorf("failed to replay action %d: %w", i, err)
		}
		fmt.Printf("%3d %-6s %-14s yellow %2d steps, green %2d steps\n", i+1, player, b.FormatAction(a),
			session.Paths(game.Yellow).Path.Steps(), session.Paths(game.Green).Path.Steps())
	}
	fmt.Printf("final: %s, winner: %s\n", session.State(), session.Winner())
	return nil
}
