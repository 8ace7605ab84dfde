package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/lox/pokerengine/internal/config"
	"github.com/lox/pokerengine/internal/simulator"
	"github.com/lox/pokerengine/internal/statistics"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// SimulateCmd plays many seeded sessions in parallel.
type SimulateCmd struct {
	Config     string `arg:"" optional:"" type:"path" default:"poker.hcl" help:"Session file. Defaults are used when it does not exist."`
	Sessions   int    `default:"100" help:"Number of sessions"`
	Hands      int    `help:"Hands per session (defaults to the configured max_hands)"`
	Seed       int64  `help:"Base seed; session i uses seed+i (0 picks one)"`
	Parallel   int    `help:"Concurrent sessions (0 uses every CPU)"`
	NoProgress bool   `help:"Hide the progress bar"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Session.MaxHands = c.Hands
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := g.logger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Session.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bar := progressbar.NewOptions(c.Sessions,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("simulating"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!c.NoProgress),
	)

	simCfg := simulatorConfig(cfg, c.Sessions, seed, c.Parallel, func(simulator.SessionResult) {
		_ = bar.Add(1)
	})
	simCfg.Logger = logger
	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}

	logger.Info("Starting simulation", "sessions", c.Sessions, "hands", cfg.Session.MaxHands, "seed", seed)
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	res, err := sim.Run(ctx)
	_ = bar.Finish()
	if err != nil {
		return err
	}
	logger.Info("Simulation finished", "duration", time.Since(start).Round(time.Millisecond))

	return writeSummary(os.Stdout, res, cfg.Session.BigBlind, g.profile())
}

func simulatorConfig(cfg *config.Config, sessions int, seed int64, parallel int, onSession func(simulator.SessionResult)) simulator.Config {
	players := make([]simulator.Player, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = simulator.Player{Name: p.Name, Strategy: p.Strategy, Chips: p.Chips}
	}
	return simulator.Config{
		Variant:   cfg.Session.Variant,
		Blinds:    cfg.Blinds(),
		Players:   players,
		Sessions:  sessions,
		Hands:     cfg.Session.MaxHands,
		Seed:      seed,
		Parallel:  parallel,
		OnSession: onSession,
	}
}

// writeSummary prints one row per player. BB/100 is the net result in big blinds per hundred hands.
func writeSummary(w io.Writer, res *simulator.Result, bigBlind int, profile termenv.Profile) error {
	rows := make([][]string, 0, len(res.Players))
	for _, p := range res.Players {
		rows = append(rows, []string{
			p.Name,
			p.Strategy,
			chips(p.Hands),
			chips(p.Wins),
			chips(p.Net),
			bbPer100(p.Net, bigBlind, p.Hands),
			margin95(&p.Stats),
			strconv.Itoa(p.Busts),
		})
	}

	fmt.Fprintf(w, "%s sessions, %s hands\n", chips(res.Sessions), chips(res.Hands))
	_, err := fmt.Fprintln(w, renderTable(profile,
		[]string{"PLAYER", "STRATEGY", "HANDS", "WON", "NET", "BB/100", "±95%", "BUSTS"}, rows))
	return err
}

func margin95(st *statistics.Statistics) string {
	if st.Hands < 2 {
		return "-"
	}
	_, margin := st.BB100()
	return strconv.FormatFloat(margin, 'f', 2, 64)
}

func bbPer100(net, bigBlind, hands int) string {
	if hands == 0 || bigBlind == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(net)/float64(bigBlind)/float64(hands)*100, 'f', 2, 64)
}
