package game

import "github.com/lox/pokerengine/poker"

// Decider makes decisions for one seat. Calls block the engine until they return.
//
// RequestAction must return one of the legal kinds; anything else is treated as a fold. Returning
// ErrDecisionTimeout also folds the player, any other error aborts the hand.
type Decider interface {
	RequestAction(player PlayerView, snap Snapshot, legal []ValidAction) (PlayerAction, error)
	// RequestDiscard returns the hole cards to replace in a draw phase.
	RequestDiscard(player PlayerView, snap Snapshot) ([]poker.Card, error)
}

// Store persists chip balances and hand histories between sessions.
type Store interface {
	SavePlayerChips(players []PlayerView) error
	LoadPlayerChips() (map[string]int, error)
	LogHand(h *HandHistory) error
}
