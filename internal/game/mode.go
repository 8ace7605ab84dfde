package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokerengine/poker"
)

// PhaseConfig describes one step of a hand. Steps run in field order: hole cards, community
// cards, draw, betting.
type PhaseConfig struct {
	Name           string
	HoleCards      int
	CommunityCards int
	Draw           bool
	Betting        bool
	Showdown       bool // the hand is decided after this phase
}

// GameMode is a poker variant.
type GameMode interface {
	Name() string
	Phases() []PhaseConfig
	// ExecuteForcedBets posts blinds and antes and seeds ctx.CurrentBet and ctx.MinRaise.
	ExecuteForcedBets(t *Table, pm *PotManager, ctx *GameContext) error
	Evaluator() poker.Evaluator
	BettingStructure() BettingStructure
}

// Blinds posts antes from every dealt-in player, then the small and big blind. A player short of
// the amount posts what they have and is all-in.
type Blinds struct {
	Small int
	Big   int
	Ante  int
}

// Validate checks the blind amounts.
func (b Blinds) Validate() error {
	switch {
	case b.Small <= 0 || b.Big <= 0:
		return errors.New("blinds must be positive")
	case b.Big < b.Small:
		return fmt.Errorf("big blind %d below small blind %d", b.Big, b.Small)
	case b.Ante < 0:
		return errors.New("ante must not be negative")
	}
	return nil
}

func (b Blinds) ExecuteForcedBets(t *Table, pm *PotManager, ctx *GameContext) error {
	sb, bb, ok := t.BlindSeats()
	if !ok {
		return ErrNotEnoughPlayers
	}
	ctx.SmallBlind, ctx.BigBlind, ctx.Ante = b.Small, b.Big, b.Ante

	if b.Ante > 0 {
		for _, p := range t.Players() {
			if !p.SittingOut {
				PostAnte(p, pm, b.Ante)
			}
		}
	}
	small := PostBlind(t.Player(sb), pm, b.Small)
	big := PostBlind(t.Player(bb), pm, b.Big)

	ctx.CurrentBet = max(small, big)
	ctx.MinRaise = b.Big
	ctx.Pot = pm.Total()
	return nil
}

// PostBlind takes a live blind from p. It counts toward the street contribution.
func PostBlind(p *Player, pm *PotManager, amount int) int {
	paid := p.pay(amount)
	p.Bet += paid
	pm.Add(p.Name, paid)
	return paid
}

// PostAnte takes dead money from p.
func PostAnte(p *Player, pm *PotManager, amount int) int {
	paid := p.pay(amount)
	pm.Add(p.Name, paid)
	return paid
}

// Holdem is no-limit Texas Hold'em.
type Holdem struct{ Blinds }

func (Holdem) Name() string { return "holdem" }

func (Holdem) Phases() []PhaseConfig {
	return []PhaseConfig{
		{Name: "Pre-Flop", HoleCards: 2, Betting: true},
		{Name: "Flop", CommunityCards: 3, Betting: true},
		{Name: "Turn", CommunityCards: 1, Betting: true},
		{Name: "River", CommunityCards: 1, Betting: true, Showdown: true},
	}
}

func (Holdem) Evaluator() poker.Evaluator { return poker.StandardEvaluator{} }

func (Holdem) BettingStructure() BettingStructure { return NoLimit{} }

// Omaha is no-limit Omaha: four hole cards, two of which must play.
type Omaha struct{ Blinds }

func (Omaha) Name() string { return "omaha" }

func (Omaha) Phases() []PhaseConfig {
	return []PhaseConfig{
		{Name: "Pre-Flop", HoleCards: 4, Betting: true},
		{Name: "Flop", CommunityCards: 3, Betting: true},
		{Name: "Turn", CommunityCards: 1, Betting: true},
		{Name: "River", CommunityCards: 1, Betting: true, Showdown: true},
	}
}

func (Omaha) Evaluator() poker.Evaluator { return poker.OmahaEvaluator{} }

func (Omaha) BettingStructure() BettingStructure { return NoLimit{} }

// FiveCardDraw is no-limit five card draw with blinds and a single draw.
type FiveCardDraw struct{ Blinds }

func (FiveCardDraw) Name() string { return "draw" }

func (FiveCardDraw) Phases() []PhaseConfig {
	return []PhaseConfig{
		{Name: "Deal", HoleCards: 5, Betting: true},
		{Name: "Draw", Draw: true, Betting: true, Showdown: true},
	}
}

func (FiveCardDraw) Evaluator() poker.Evaluator { return poker.StandardEvaluator{} }

func (FiveCardDraw) BettingStructure() BettingStructure { return NoLimit{} }

// Variants lists the built-in variant names accepted by NewMode.
var Variants = []string{"holdem", "omaha", "draw"}

// NewMode returns the built-in variant called name.
func NewMode(name string, blinds Blinds) (GameMode, error) {
	if err := blinds.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(name) {
	case "holdem", "hold'em", "nlhe":
		return Holdem{blinds}, nil
	case "omaha":
		return Omaha{blinds}, nil
	case "draw", "five-card-draw":
		return FiveCardDraw{blinds}, nil
	}
	return nil, fmt.Errorf("unknown variant %q", name)
}
