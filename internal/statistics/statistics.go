// Package statistics accumulates per-hand results, measured in big blinds, for one player.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// MaxPositions bounds the tracked positions; it matches the largest table.
const MaxPositions = 10

// BigPotBB is the pot size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult represents one player's outcome of a single hand.
type HandResult struct {
	NetBB    float64 // Net big blinds won or lost
	Position int     // Seats after the button, 0 is the button
	Showdown bool    // The hand went to showdown
	PotBB    float64 // Final pot size in big blinds
}

// PositionStats tracks results for one position.
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks a player's results over many hands.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Every result, for median and percentiles

	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown
	ShowdownBB      float64 // BB from showdowns, wins and losses
	NonShowdownBB   float64 // BB from hands without showdown
	AllBB           float64 // Total BB for the ledger check

	PositionResults [MaxPositions]PositionStats

	MaxPotBB  float64 // Largest pot observed
	BigPots   int     // Pots of at least BigPotBB
	BigPotsBB float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BB100 returns the mean in big blinds per hundred hands and the 95% margin around it.
func (s *Statistics) BB100() (mean, margin float64) {
	return s.Mean() * 100, 1.96 * s.StdError() * 100
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Showdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if pos := result.Position; pos >= 0 && pos < MaxPositions {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].SumBB += netBB
		s.PositionResults[pos].SumBB2 += netBB * netBB
	}

	if result.PotBB > s.MaxPotBB {
		s.MaxPotBB = result.PotBB
	}
	if result.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge adds every result of other.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i, ps := range other.PositionResults {
		s.PositionResults[i].Hands += ps.Hands
		s.PositionResults[i].SumBB += ps.SumBB
		s.PositionResults[i].SumBB2 += ps.SumBB2
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a position.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= MaxPositions {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated data is internally consistent.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	positions := 0
	for _, ps := range s.PositionResults {
		positions += ps.Hands
	}
	if positions != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)",
			positions, s.Hands)
	}
	return nil
}
