package bot

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// Tight plays a starting-hand chart on its first two hole cards: it raises premium hands, calls
// with strong and medium ones and gives up on the rest.
type Tight struct {
	logger *log.Logger
}

func NewTight(logger *log.Logger) *Tight {
	return &Tight{logger: logger.WithPrefix("tight")}
}

func (t *Tight) RequestAction(player game.PlayerView, snap game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	if len(player.HoleCards) < 2 {
		return choose(legal, game.Check, game.Fold), nil
	}
	tier := poker.StartingTier(player.HoleCards[0], player.HoleCards[1])
	t.logger.Debug("Deciding", "player", player.Name, "phase", snap.Phase, "cards", poker.FormatCards(player.HoleCards), "tier", tier)

	switch tier {
	case poker.TierPremium:
		return choose(legal, game.Raise, game.Bet, game.Call, game.Check), nil
	case poker.TierStrong, poker.TierMedium:
		return choose(legal, game.Check, game.Call), nil
	}
	return choose(legal, game.Check, game.Fold), nil
}

// RequestDiscard keeps paired ranks, or the two highest cards when nothing pairs.
func (t *Tight) RequestDiscard(player game.PlayerView, _ game.Snapshot) ([]poker.Card, error) {
	counts := make(map[poker.Rank]int)
	for _, c := range player.HoleCards {
		counts[c.Rank]++
	}

	keep := make(map[poker.Card]bool)
	for _, c := range player.HoleCards {
		if counts[c.Rank] > 1 {
			keep[c] = true
		}
	}
	if len(keep) == 0 {
		sorted := slices.Clone(player.HoleCards)
		slices.SortFunc(sorted, func(a, b poker.Card) int { return int(b.Rank) - int(a.Rank) })
		for _, c := range sorted[:min(2, len(sorted))] {
			keep[c] = true
		}
	}

	var discard []poker.Card
	for _, c := range player.HoleCards {
		if !keep[c] {
			discard = append(discard, c)
		}
	}
	return discard, nil
}
