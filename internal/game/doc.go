// Package game implements a rule-pluggable poker engine for no-limit hold'em, omaha and five card
// draw.
//
// The main type is Engine, which seats players at a Table and plays hands of one GameMode, asking
// each player's Decider for actions and reporting every state change to Observers.
//
// # Basic Usage
//
// Seat some deciders and play a session:
//
//	mode := game.Holdem{Blinds: game.Blinds{Small: 5, Big: 10}}
//	e, err := game.NewEngine(mode, []game.Seat{
//	    {Name: "alice", Chips: 1000, Decider: alice},
//	    {Name: "bob", Chips: 1000, Decider: bob},
//	}, game.WithSeed(42))
//	res, err := e.RunSession(ctx, 100)
//
// PlayHand plays a single hand without moving the button and returns its HandHistory.
//
// # Deterministic Testing
//
// WithSeed shuffles with a reproducible source from internal/randutil. For complete control over
// the cards, pass a pre-ordered deck:
//
//	deck := poker.NewOrderedDeck(poker.MustParseCards("AsAh KsKh 2c3d4h5s9c")...)
//	e, err := game.NewEngine(mode, seats, game.WithDeck(deck))
//
// # Architecture
//
// Engine delegates responsibilities to specialised components:
//   - GameMode: the phase list, forced bets and hand evaluator of a variant
//   - BettingStructure: legal actions and action validation (NoLimit)
//   - PotManager: contributions, side pots and pot resolution
//   - Table: the seat ring, button and blind positions
//   - Store: chip persistence and hand history archival
//
// An Engine is not safe for concurrent use. Independent engines share nothing and may run in
// parallel, one per goroutine.
package game
