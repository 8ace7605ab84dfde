package bot

import (
	"math/rand/v2"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// Caller checks when it can and calls everything else. It never draws.
type Caller struct{}

func NewCaller() *Caller { return &Caller{} }

func (*Caller) RequestAction(_ game.PlayerView, _ game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	return choose(legal, game.Check, game.Call), nil
}

func (*Caller) RequestDiscard(game.PlayerView, game.Snapshot) ([]poker.Card, error) {
	return nil, nil
}

// Folder checks when it can and folds otherwise.
type Folder struct{}

func NewFolder() *Folder { return &Folder{} }

func (*Folder) RequestAction(_ game.PlayerView, _ game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	return choose(legal, game.Check, game.Fold), nil
}

func (*Folder) RequestDiscard(game.PlayerView, game.Snapshot) ([]poker.Card, error) {
	return nil, nil
}

// Random makes uniform random legal actions. Bet and raise sizes are uniform over the legal range.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (r *Random) RequestAction(_ game.PlayerView, _ game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	if len(legal) == 0 {
		return game.PlayerAction{Kind: game.Fold}, nil
	}
	v := legal[r.rng.IntN(len(legal))]
	amount := v.Min
	if v.Max > v.Min {
		amount += r.rng.IntN(v.Max - v.Min + 1)
	}
	return game.PlayerAction{Kind: v.Kind, Amount: amount}, nil
}

// RequestDiscard throws away each card with probability one in three.
func (r *Random) RequestDiscard(player game.PlayerView, _ game.Snapshot) ([]poker.Card, error) {
	var out []poker.Card
	for _, c := range player.HoleCards {
		if r.rng.IntN(3) == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}
