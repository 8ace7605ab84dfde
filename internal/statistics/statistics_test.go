package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	t.Parallel()

	var s Statistics
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.NoError(t, s.Validate())
}

func TestSingleValue(t *testing.T) {
	t.Parallel()

	var s Statistics
	s.Add(HandResult{NetBB: 2.5, Position: 3, Showdown: true, PotBB: 10})

	assert.Equal(t, 1, s.Hands)
	assert.Equal(t, 2.5, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Equal(t, 2.5, s.Median())
	assert.Equal(t, 1, s.ShowdownWins)
	assert.Zero(t, s.NonShowdownWins)
	assert.Equal(t, 2.5, s.PositionMean(3))
	assert.True(t, s.IsLedgerBalanced())
	assert.NoError(t, s.Validate())
}

func TestMultipleValues(t *testing.T) {
	t.Parallel()

	var s Statistics
	for _, r := range []HandResult{
		{NetBB: 1, Position: 0, PotBB: 2},
		{NetBB: -2, Position: 1, Showdown: true, PotBB: 4},
		{NetBB: 3, Position: 2, Showdown: true, PotBB: 60},
		{NetBB: 0, Position: 0, PotBB: 1},
		{NetBB: -1, Position: 1, PotBB: 3},
	} {
		s.Add(r)
	}

	assert.Equal(t, 5, s.Hands)
	assert.InDelta(t, 0.2, s.Mean(), 1e-9)
	assert.InDelta(t, 3.7, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(3.7), s.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(3.7)/math.Sqrt(5), s.StdError(), 1e-9)
	assert.Equal(t, 0.0, s.Median())
	assert.Equal(t, -2.0, s.Percentile(0))
	assert.Equal(t, 3.0, s.Percentile(1))

	assert.Equal(t, 1, s.ShowdownWins)
	assert.Equal(t, 1, s.NonShowdownWins)
	assert.InDelta(t, 1.0, s.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, s.NonShowdownBB, 1e-9)

	assert.Equal(t, 60.0, s.MaxPotBB)
	assert.Equal(t, 1, s.BigPots)
	assert.Equal(t, 3.0, s.BigPotsBB)

	assert.InDelta(t, 0.5, s.PositionMean(0), 1e-9)
	assert.InDelta(t, -1.5, s.PositionMean(1), 1e-9)
	assert.Zero(t, s.PositionMean(9))
	assert.Zero(t, s.PositionMean(MaxPositions))

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, s.Mean())
	assert.Greater(t, hi, s.Mean())

	mean, margin := s.BB100()
	assert.InDelta(t, 20, mean, 1e-9)
	assert.InDelta(t, (hi-s.Mean())*100, margin, 1e-9)
	require.NoError(t, s.Validate())
}

func TestMergeMatchesSequentialAdds(t *testing.T) {
	t.Parallel()

	results := []HandResult{
		{NetBB: 4, Position: 0, Showdown: true, PotBB: 8},
		{NetBB: -1, Position: 1},
		{NetBB: -0.5, Position: 2, PotBB: 1.5},
		{NetBB: 25, Position: 3, Showdown: true, PotBB: 55},
	}

	var all, a, b Statistics
	for i, r := range results {
		all.Add(r)
		if i < 2 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(&b)

	assert.Equal(t, all, a)
	assert.NoError(t, a.Validate())
}

func TestValidateCatchesInconsistencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Statistics)
		err    string
	}{
		{"ledger", func(s *Statistics) { s.AllBB += 1 }, "ledger mismatch"},
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"wins", func(s *Statistics) { s.ShowdownWins = 5 }, "exceeds total hands"},
		{"positions", func(s *Statistics) { s.PositionResults[0].Hands++ }, "position hands total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Statistics
			s.Add(HandResult{NetBB: 1, Position: 0})
			s.Add(HandResult{NetBB: -1, Position: 1})
			tt.mutate(&s)
			assert.ErrorContains(t, s.Validate(), tt.err)
		})
	}
}
