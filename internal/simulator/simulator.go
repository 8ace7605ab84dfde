// Package simulator plays many independent seeded sessions concurrently and aggregates the results
// per player.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerengine/internal/bot"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Player seats one bot in every session.
type Player struct {
	Name     string
	Strategy string
	Chips    int
}

// Config holds configuration for running simulations
type Config struct {
	Variant  string
	Blinds   game.Blinds
	Players  []Player
	Sessions int
	// Hands caps each session; 0 plays until one player holds every chip.
	Hands int
	Seed  int64
	// Parallel bounds concurrent sessions; 0 means GOMAXPROCS.
	Parallel int
	Logger   *log.Logger
	// OnSession is called once per finished session. It may be called from several goroutines.
	OnSession func(SessionResult)
}

// SessionResult is the outcome of one seeded session.
type SessionResult struct {
	Index int
	Seed  int64
	Hands int
	Chips map[string]int
	Wins  map[string]int
	Stats map[string]*statistics.Statistics
}

// PlayerResult aggregates one player's sessions. Hands counts the hands the player was dealt
// into.
type PlayerResult struct {
	Name     string
	Strategy string
	Hands    int
	Wins     int
	Net      int
	Busts    int
	Stats    statistics.Statistics
}

// Result aggregates every session.
type Result struct {
	Sessions int
	Hands    int
	Players  []PlayerResult
}

// Player returns the aggregate for name.
func (r *Result) Player(name string) (PlayerResult, bool) {
	i := slices.IndexFunc(r.Players, func(p PlayerResult) bool { return p.Name == name })
	if i < 0 {
		return PlayerResult{}, false
	}
	return r.Players[i], true
}

// Simulator runs poker session simulations
type Simulator struct {
	config Config
	mode   game.GameMode
	logger *log.Logger
}

// New validates config and creates a simulator.
func New(config Config) (*Simulator, error) {
	if config.Sessions <= 0 {
		return nil, errors.New("sessions must be positive")
	}
	if len(config.Players) < 2 {
		return nil, errors.New("at least 2 players are required")
	}
	for _, p := range config.Players {
		if p.Chips <= 0 {
			return nil, fmt.Errorf("player %s needs chips", p.Name)
		}
		if !slices.Contains(bot.Strategies, p.Strategy) || p.Strategy == "scripted" {
			return nil, fmt.Errorf("player %s: strategy %q cannot be simulated", p.Name, p.Strategy)
		}
	}
	mode, err := game.NewMode(config.Variant, config.Blinds)
	if err != nil {
		return nil, err
	}
	if config.Parallel <= 0 {
		config.Parallel = runtime.GOMAXPROCS(0)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, mode: mode, logger: logger.WithPrefix("simulator")}, nil
}

// Run plays every session and aggregates them in session order, so the result only depends on the
// configuration and seed.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	sessions := make([]SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Sessions {
		g.Go(func() error {
			res, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, res.Seed, err)
			}
			sessions[i] = res
			if s.config.OnSession != nil {
				s.config.OnSession(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := s.aggregate(sessions)
	s.logger.Info("Simulation complete", "sessions", result.Sessions, "hands", result.Hands)
	return result, nil
}

func (s *Simulator) playSession(ctx context.Context, index int) (SessionResult, error) {
	seed := s.config.Seed + int64(index)
	res := SessionResult{Index: index, Seed: seed}

	seats := make([]game.Seat, len(s.config.Players))
	for j, p := range s.config.Players {
		d, err := bot.New(p.Strategy, bot.Options{
			Rand:   randutil.Derive(seed, j),
			Logger: s.logger,
		})
		if err != nil {
			return res, err
		}
		seats[j] = game.Seat{Name: p.Name, Chips: p.Chips, Decider: d}
	}

	rec := newRecorder()
	engine, err := game.NewEngine(s.mode, seats,
		game.WithSeed(seed),
		game.WithButton(index%len(seats)),
		game.WithStore(rec),
		game.WithLogger(s.logger.With("session", index)),
	)
	if err != nil {
		return res, err
	}

	session, err := engine.RunSession(ctx, s.config.Hands)
	if err != nil {
		return res, err
	}
	res.Hands = session.Hands
	res.Chips = session.Chips
	res.Wins = rec.wins
	res.Stats = rec.stats
	s.logger.Debug("Session finished", "session", index, "seed", seed, "hands", res.Hands)
	return res, nil
}

func (s *Simulator) aggregate(sessions []SessionResult) *Result {
	result := &Result{Sessions: len(sessions), Players: make([]PlayerResult, len(s.config.Players))}
	for j, p := range s.config.Players {
		result.Players[j] = PlayerResult{Name: p.Name, Strategy: p.Strategy}
	}
	for _, sess := range sessions {
		result.Hands += sess.Hands
		for j, p := range s.config.Players {
			pr := &result.Players[j]
			if st, ok := sess.Stats[p.Name]; ok {
				pr.Stats.Merge(st)
			}
			pr.Hands = pr.Stats.Hands
			pr.Wins += sess.Wins[p.Name]
			pr.Net += sess.Chips[p.Name] - p.Chips
			if sess.Chips[p.Name] == 0 {
				pr.Busts++
			}
		}
	}
	return result
}

// recorder is a game.Store that keeps per-player statistics in memory instead of persisting.
type recorder struct {
	wins  map[string]int
	stats map[string]*statistics.Statistics
}

var _ game.Store = (*recorder)(nil)

func newRecorder() *recorder {
	return &recorder{wins: map[string]int{}, stats: map[string]*statistics.Statistics{}}
}

func (*recorder) SavePlayerChips([]game.PlayerView) error { return nil }

func (*recorder) LoadPlayerChips() (map[string]int, error) { return nil, nil }

func (r *recorder) LogHand(h *game.HandHistory) error {
	if h.BigBlind <= 0 {
		return fmt.Errorf("hand %s has no big blind", h.ID)
	}
	bb := float64(h.BigBlind)
	pot := float64(h.TotalPot()) / bb
	net := h.Net()
	n := len(h.Players)
	for i, name := range h.Players {
		if h.StartingStacks[i] == 0 {
			continue
		}
		st, ok := r.stats[name]
		if !ok {
			st = &statistics.Statistics{}
			r.stats[name] = st
		}
		st.Add(statistics.HandResult{
			NetBB:    float64(net[name]) / bb,
			Position: (i - h.Button + n) % n,
			Showdown: h.Showdown,
			PotBB:    pot,
		})
		if h.Winnings[name] > 0 {
			r.wins[name]++
		}
	}
	return nil
}
