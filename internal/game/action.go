package game

import (
	"fmt"
	"slices"
)

// ActionKind is the type of a betting action.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// ParseActionKind is the inverse of ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	for k := Fold; k <= AllIn; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return Fold, fmt.Errorf("unknown action %q", s)
}

// PlayerAction is a betting decision.
//
// Amount is the player's total contribution for the street once the action is applied. Deciders set
// it for Bet and Raise ("raise to"); the engine fills it in for every other kind. Fold and Check
// carry the contribution unchanged.
type PlayerAction struct {
	Player string
	Kind   ActionKind
	Amount int
}

func (a PlayerAction) String() string {
	switch a.Kind {
	case Fold, Check:
		return fmt.Sprintf("%s %s", a.Player, a.Kind)
	default:
		return fmt.Sprintf("%s %s %d", a.Player, a.Kind, a.Amount)
	}
}

// ValidAction is a legal action together with the bounds for its Amount.
type ValidAction struct {
	Kind ActionKind
	Min  int
	Max  int
}

// Allows reports whether kind appears in legal.
func Allows(legal []ValidAction, kind ActionKind) bool {
	return slices.ContainsFunc(legal, func(v ValidAction) bool { return v.Kind == kind })
}

// Find returns the entry for kind.
func Find(legal []ValidAction, kind ActionKind) (ValidAction, bool) {
	i := slices.IndexFunc(legal, func(v ValidAction) bool { return v.Kind == kind })
	if i < 0 {
		return ValidAction{}, false
	}
	return legal[i], true
}
