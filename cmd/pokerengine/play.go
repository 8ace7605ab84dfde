package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerengine/internal/bot"
	"github.com/lox/pokerengine/internal/config"
	"github.com/lox/pokerengine/internal/console"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/internal/store/filestore"
	"github.com/lox/pokerengine/internal/store/sqlstore"
	"github.com/muesli/termenv"
)

// PlayCmd plays one session with console output.
type PlayCmd struct {
	Config    string `arg:"" optional:"" type:"path" default:"poker.hcl" help:"Session file. Defaults are used when it does not exist."`
	Hands     int    `help:"Override the maximum number of hands"`
	Seed      *int64 `help:"Override the deck seed"`
	HoleCards bool   `help:"Show every player's hole cards after each hand"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Session.MaxHands = c.Hands
	}
	if c.Seed != nil {
		cfg.Session.Seed = *c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := g.logger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting session", "variant", cfg.Session.Variant, "players", len(cfg.Players), "seed", seed)

	ctx, cancel := signalContext()
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	printer := console.New(os.Stdout, console.WithColorProfile(g.profile()))
	if c.HoleCards {
		store = printer.Revealing(store)
	}
	engine, err := newEngine(cfg, seed, logger, store, printer)
	if err != nil {
		return err
	}

	res, err := engine.RunSession(ctx, cfg.Session.MaxHands)
	if errors.Is(err, context.Canceled) {
		logger.Warn("Session interrupted", "hands", res.Hands)
	} else if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	return writeChips(os.Stdout, engine.Players(), g.profile())
}

// newEngine seats the configured bots.
func newEngine(cfg *config.Config, seed int64, logger *log.Logger, store game.Store, obs ...game.Observer) (*game.Engine, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	seats, err := seatsFor(cfg, seed, logger, quartz.NewReal())
	if err != nil {
		return nil, err
	}

	opts := []game.Option{
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithObserver(obs...),
	}
	if store != nil {
		opts = append(opts, game.WithStore(store))
	}
	return game.NewEngine(mode, seats, opts...)
}

// seatsFor builds one decider per configured player, each with its own random source.
func seatsFor(cfg *config.Config, seed int64, logger *log.Logger, clock quartz.Clock) ([]game.Seat, error) {
	timeout, err := cfg.DecisionTimeout()
	if err != nil {
		return nil, err
	}

	seats := make([]game.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		script, err := bot.ParseScript(p.Script)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		d, err := bot.New(p.Strategy, bot.Options{
			Rand:   randutil.Derive(seed, i),
			Logger: logger.WithPrefix(p.Name),
			Script: script,
		})
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		if timeout > 0 {
			d = bot.NewTimeout(d, timeout, clock)
		}
		seats[i] = game.Seat{Name: p.Name, Chips: p.Chips, Decider: d}
	}
	return seats, nil
}

// openStore returns nil when the store kind is "none". The close func is always safe to call.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *log.Logger) (game.Store, func(), error) {
	noop := func() {}
	switch cfg.Kind {
	case "file":
		s, err := filestore.Open(cfg.Path, filestore.WithTable(cfg.Table), filestore.WithLogger(logger.WithPrefix("filestore")))
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "sqlite":
		s, err := sqlstore.Open(ctx, cfg.Path, sqlstore.WithTable(cfg.Table))
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Error("Failed to close store", "error", err)
			}
		}, nil
	}
	return nil, noop, nil
}

func writeChips(w io.Writer, players []game.PlayerView, profile termenv.Profile) error {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{p.Name, chips(p.Chips)})
	}
	_, err := fmt.Fprintln(w, renderTable(profile, []string{"PLAYER", "CHIPS"}, rows))
	return err
}
