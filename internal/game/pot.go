package game

import (
	"fmt"
	"slices"

	"github.com/lox/pokerengine/poker"
)

// SidePot is one layer of the pot and the players who can win it.
type SidePot struct {
	Amount   int
	Eligible []string // seat order
}

// PotAward records how one side pot was settled.
type PotAward struct {
	SidePot
	Winners []string
	Share   int // per winner before the odd chips
}

// Resolution is the outcome of settling every pot.
type Resolution struct {
	Awards    []PotAward
	Winnings  map[string]int
	Unclaimed int
}

// PotManager tracks what each player has put in this hand. Side pots are recomputed from the
// contributions every time they are needed.
type PotManager struct {
	order         []string
	contributions map[string]int
	folded        map[string]bool
}

// NewPotManager creates a pot manager for players in seat order.
func NewPotManager(order []string) *PotManager {
	pm := &PotManager{}
	pm.Reset(order)
	return pm
}

// Reset clears all contributions for a new hand.
func (pm *PotManager) Reset(order []string) {
	pm.order = slices.Clone(order)
	pm.contributions = make(map[string]int, len(order))
	pm.folded = make(map[string]bool, len(order))
}

// Add records chips put in by name.
func (pm *PotManager) Add(name string, amount int) {
	if amount <= 0 {
		return
	}
	pm.contributions[name] += amount
}

// Fold marks name as no longer eligible for any pot. Their chips stay in.
func (pm *PotManager) Fold(name string) {
	pm.folded[name] = true
}

// Contribution returns the chips name has put in this hand.
func (pm *PotManager) Contribution(name string) int {
	return pm.contributions[name]
}

// Total returns all chips in the pot.
func (pm *PotManager) Total() int {
	total := 0
	for _, c := range pm.contributions {
		total += c
	}
	return total
}

type potEntry struct {
	name      string
	remaining int
	folded    bool
}

// CalculateSidePots splits the contributions into layered pots. Each layer is as deep as the
// smallest remaining contribution among players still in the hand; when only folded money is
// left, it forms a final layer nobody is eligible for.
func (pm *PotManager) CalculateSidePots() ([]SidePot, error) {
	entries := make([]potEntry, 0, len(pm.order))
	for _, name := range pm.order {
		if c := pm.contributions[name]; c > 0 {
			entries = append(entries, potEntry{name: name, remaining: c, folded: pm.folded[name]})
		}
	}

	var pots []SidePot
	for len(entries) > 0 {
		layer := 0
		for _, e := range entries {
			if !e.folded && (layer == 0 || e.remaining < layer) {
				layer = e.remaining
			}
		}
		if layer == 0 {
			for _, e := range entries {
				layer = max(layer, e.remaining)
			}
		}

		pot := SidePot{}
		for i := range entries {
			put := min(entries[i].remaining, layer)
			entries[i].remaining -= put
			pot.Amount += put
			if put > 0 && !entries[i].folded {
				pot.Eligible = append(pot.Eligible, entries[i].name)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		entries = slices.DeleteFunc(entries, func(e potEntry) bool { return e.remaining == 0 })
	}

	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	if total := pm.Total(); sum != total {
		return nil, fmt.Errorf("%w: pots hold %d, contributions %d", ErrPotInvariant, sum, total)
	}
	return pots, nil
}

// ResolvePots awards every pot to the best ranked eligible players in results. Ties split evenly
// and the odd chips go to the first winner in seat order. A pot with no eligible player in results
// is left unclaimed.
func (pm *PotManager) ResolvePots(results map[string]poker.HandRank) (Resolution, error) {
	pots, err := pm.CalculateSidePots()
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Winnings: make(map[string]int)}
	for _, pot := range pots {
		award := PotAward{SidePot: pot}
		var best poker.HandRank
		for _, name := range pot.Eligible {
			rank, ok := results[name]
			if !ok {
				continue
			}
			switch {
			case len(award.Winners) == 0:
				best, award.Winners = rank, []string{name}
			case rank.Beats(best):
				best, award.Winners = rank, []string{name}
			case rank.Compare(best) == 0:
				award.Winners = append(award.Winners, name)
			}
		}
		if len(award.Winners) == 0 {
			res.Unclaimed += pot.Amount
			res.Awards = append(res.Awards, award)
			continue
		}
		award.Share = pot.Amount / len(award.Winners)
		for _, w := range award.Winners {
			res.Winnings[w] += award.Share
		}
		res.Winnings[award.Winners[0]] += pot.Amount % len(award.Winners)
		res.Awards = append(res.Awards, award)
	}
	return res, nil
}
