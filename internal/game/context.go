package game

import (
	"slices"

	"github.com/lox/pokerengine/poker"
)

// GameContext is the mutable per-hand state. It is owned by the engine; game modes and betting
// structures receive it to post forced bets and price actions.
type GameContext struct {
	HandID     string
	Variant    string
	Phase      string
	Community  []poker.Card
	Pot        int
	CurrentBet int // highest street contribution
	MinRaise   int // last full raise increment this street
	SmallBlind int
	BigBlind   int
	Ante       int
	Actor      int // seat to act, -1 between decisions
}

func (c *GameContext) reset(handID, variant string) {
	*c = GameContext{HandID: handID, Variant: variant, Actor: -1}
}

// Snapshot is a deep copy of the table state. Hole cards of other players are never included.
type Snapshot struct {
	HandID     string
	Variant    string
	Phase      string
	Button     int
	Actor      int
	Community  []poker.Card
	Pot        int
	CurrentBet int
	MinRaise   int
	SmallBlind int
	BigBlind   int
	Players    []PlayerView
}

// Player returns the view of the named player.
func (s Snapshot) Player(name string) (PlayerView, bool) {
	i := slices.IndexFunc(s.Players, func(v PlayerView) bool { return v.Name == name })
	if i < 0 {
		return PlayerView{}, false
	}
	return s.Players[i], true
}

func newSnapshot(ctx *GameContext, t *Table) Snapshot {
	snap := Snapshot{
		HandID:     ctx.HandID,
		Variant:    ctx.Variant,
		Phase:      ctx.Phase,
		Button:     t.Button(),
		Actor:      ctx.Actor,
		Community:  slices.Clone(ctx.Community),
		Pot:        ctx.Pot,
		CurrentBet: ctx.CurrentBet,
		MinRaise:   ctx.MinRaise,
		SmallBlind: ctx.SmallBlind,
		BigBlind:   ctx.BigBlind,
		Players:    make([]PlayerView, 0, t.Len()),
	}
	for _, p := range t.Players() {
		snap.Players = append(snap.Players, p.publicView())
	}
	return snap
}
