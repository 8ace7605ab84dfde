package simulator

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/lox/pokerengine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(variant string) Config {
	return Config{
		Variant: variant,
		Blinds:  game.Blinds{Small: 5, Big: 10},
		Players: []Player{
			{Name: "alice", Strategy: "tight", Chips: 500},
			{Name: "bob", Strategy: "random", Chips: 500},
			{Name: "carol", Strategy: "call", Chips: 500},
			{Name: "dave", Strategy: "fold", Chips: 500},
		},
		Sessions: 8,
		Hands:    25,
		Seed:     12345,
		Parallel: 4,
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		err    string
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }, "sessions"},
		{"one player", func(c *Config) { c.Players = c.Players[:1] }, "at least 2"},
		{"no chips", func(c *Config) { c.Players[0].Chips = 0 }, "needs chips"},
		{"scripted", func(c *Config) { c.Players[1].Strategy = "scripted" }, "cannot be simulated"},
		{"unknown strategy", func(c *Config) { c.Players[1].Strategy = "gto" }, "cannot be simulated"},
		{"unknown variant", func(c *Config) { c.Variant = "razz" }, "unknown variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig("holdem")
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestRunConservesChips(t *testing.T) {
	t.Parallel()

	for _, variant := range game.Variants {
		t.Run(variant, func(t *testing.T) {
			t.Parallel()

			sim, err := New(testConfig(variant))
			require.NoError(t, err)

			res, err := sim.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 8, res.Sessions)
			assert.Positive(t, res.Hands)
			assert.LessOrEqual(t, res.Hands, 8*25)
			require.Len(t, res.Players, 4)

			net := 0
			for _, p := range res.Players {
				net += p.Net
				assert.LessOrEqual(t, p.Hands, res.Hands)
				assert.Equal(t, p.Stats.Hands, p.Hands)
				assert.LessOrEqual(t, p.Busts, res.Sessions)
				require.NoError(t, p.Stats.Validate(), p.Name)
				assert.InDelta(t, float64(p.Net), p.Stats.SumBB*10, 1e-6, "per-hand results add up to %s's net", p.Name)
			}
			assert.Zero(t, net, "chips are neither created nor destroyed")

			_, ok := res.Player("dave")
			assert.True(t, ok)
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	run := func(parallel int) *Result {
		cfg := testConfig("holdem")
		cfg.Parallel = parallel
		sim, err := New(cfg)
		require.NoError(t, err)
		res, err := sim.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	first := run(1)
	assert.Equal(t, first, run(1))
	assert.Equal(t, first, run(8), "scheduling does not change the result")
}

func TestRunReportsEachSession(t *testing.T) {
	t.Parallel()

	var seen atomic.Int32
	var seeds atomic.Int64
	cfg := testConfig("draw")
	cfg.OnSession = func(r SessionResult) {
		seen.Add(1)
		seeds.Add(r.Seed)
		total := 0
		for _, c := range r.Chips {
			total += c
		}
		assert.Equal(t, 2000, total)
	}

	sim, err := New(cfg)
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 8, seen.Load())
	assert.EqualValues(t, 8*12345+28, seeds.Load(), "seeds are consecutive from the base seed")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim, err := New(testConfig("holdem"))
	require.NoError(t, err)
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownPlayer(t *testing.T) {
	t.Parallel()

	_, ok := (&Result{}).Player("nobody")
	assert.False(t, ok)
}

func TestRecorderTracksDealtInPlayers(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	h := &game.HandHistory{
		ID:              "h1",
		Button:          2,
		BigBlind:        10,
		Players:         []string{"A", "B", "C", "D"},
		StartingStacks:  []int{100, 100, 0, 100},
		FinishingStacks: []int{130, 80, 0, 90},
		Winnings:        map[string]int{"A": 50},
		Showdown:        true,
	}
	require.NoError(t, rec.LogHand(h))

	assert.Equal(t, map[string]int{"A": 1}, rec.wins)
	require.Len(t, rec.stats, 3, "sitting out players are not counted")
	assert.Equal(t, 3.0, rec.stats["A"].SumBB)
	assert.Equal(t, 1, rec.stats["A"].ShowdownWins)
	assert.Equal(t, 1, rec.stats["D"].PositionResults[1].Hands, "D sits one seat after the button")
	assert.Equal(t, 1, rec.stats["A"].PositionResults[2].Hands)
	assert.Equal(t, 5.0, rec.stats["B"].MaxPotBB)

	h.BigBlind = 0
	assert.Error(t, rec.LogHand(h))
}
