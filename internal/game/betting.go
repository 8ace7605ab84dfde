package game

import (
	"fmt"
	"math"
)

// BettingStructure prices actions. Amounts are street contributions ("raise to").
type BettingStructure interface {
	Name() string
	// MinRaise returns the smallest legal raise increment above the current bet.
	MinRaise(ctx *GameContext) int
	// MaxRaise returns the largest legal raise increment above the current bet.
	MaxRaise(ctx *GameContext) int
	// ValidateAction returns nil or an error wrapping ErrBettingViolation.
	ValidateAction(action PlayerAction, player PlayerView, ctx *GameContext) error
	// LegalActions lists the actions available to player with their amount bounds.
	LegalActions(player PlayerView, ctx *GameContext) []ValidAction
}

// NoLimit is the no-limit betting structure: raises are bounded only by the stack.
type NoLimit struct{}

func (NoLimit) Name() string { return "no-limit" }

// MinRaise is the larger of the last full raise and the current bet.
func (NoLimit) MinRaise(ctx *GameContext) int {
	return max(ctx.MinRaise, ctx.CurrentBet)
}

func (NoLimit) MaxRaise(*GameContext) int { return math.MaxInt }

func (nl NoLimit) ValidateAction(action PlayerAction, player PlayerView, ctx *GameContext) error {
	if action.Kind == Fold {
		return nil
	}
	stack := player.Bet + player.Chips
	if action.Amount > stack {
		return violation(action, "exceeds stack of %d", stack)
	}
	if action.Amount < player.Bet {
		return violation(action, "below street contribution of %d", player.Bet)
	}

	switch action.Kind {
	case Check:
		if player.Bet != ctx.CurrentBet {
			return violation(action, "cannot check facing %d", ctx.CurrentBet)
		}
	case Call:
		if action.Amount != min(ctx.CurrentBet, stack) {
			return violation(action, "call must match %d", ctx.CurrentBet)
		}
	case Bet, Raise:
		if action.Amount <= ctx.CurrentBet {
			return violation(action, "must exceed current bet of %d", ctx.CurrentBet)
		}
		if action.Amount == stack {
			return nil
		}
		if inc := action.Amount - ctx.CurrentBet; inc < nl.MinRaise(ctx) {
			return violation(action, "raise of %d below minimum %d", inc, nl.MinRaise(ctx))
		}
	case AllIn:
		if player.Chips == 0 || action.Amount != stack {
			return violation(action, "all-in must commit the whole stack of %d", stack)
		}
	}
	return nil
}

func (nl NoLimit) LegalActions(player PlayerView, ctx *GameContext) []ValidAction {
	stack := player.Bet + player.Chips
	legal := []ValidAction{{Kind: Fold}}

	aggressive := Raise
	if player.Bet == ctx.CurrentBet {
		legal = append(legal, ValidAction{Kind: Check, Min: player.Bet, Max: player.Bet})
		aggressive = Bet
	} else {
		call := min(ctx.CurrentBet, stack)
		legal = append(legal, ValidAction{Kind: Call, Min: call, Max: call})
	}
	if lo := ctx.CurrentBet + nl.MinRaise(ctx); stack >= lo {
		legal = append(legal, ValidAction{Kind: aggressive, Min: lo, Max: stack})
	}
	if player.Chips > 0 {
		legal = append(legal, ValidAction{Kind: AllIn, Min: stack, Max: stack})
	}
	return legal
}

func violation(action PlayerAction, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s to %d: %s", ErrBettingViolation,
		action.Player, action.Kind, action.Amount, fmt.Sprintf(format, args...))
}
