package game

import "errors"

var (
	// ErrBettingViolation wraps every rejected bet, raise or call amount.
	ErrBettingViolation = errors.New("betting violation")
	// ErrNoActivePlayers is returned when a hand must be resolved but nobody is left in it.
	ErrNoActivePlayers = errors.New("no active players")
	// ErrNotEnoughPlayers is returned when fewer than two players can be dealt in.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	// ErrPotInvariant is returned when side pots do not add up to the contributions.
	ErrPotInvariant = errors.New("pot invariant violated")
	// ErrChipConservation is returned when a hand creates or destroys chips.
	ErrChipConservation = errors.New("chip conservation violated")
	// ErrDecisionTimeout is returned by a Decider that ran out of time. The engine folds the player.
	ErrDecisionTimeout = errors.New("decision timed out")
)
