package game

import (
	"slices"
	"time"

	"github.com/lox/pokerengine/poker"
)

// HistoryKind classifies a HistoryEvent.
type HistoryKind uint8

const (
	EventDealHole HistoryKind = iota
	EventDealBoard
	EventAction
	EventDraw
	EventShow
)

// HistoryEvent is one step of a hand in the order it happened.
type HistoryEvent struct {
	Kind      HistoryKind
	Phase     string
	Player    string       // empty for board deals
	Cards     []poker.Card // dealt, drawn or shown cards
	Discarded []poker.Card
	Action    PlayerAction
}

// HandHistory is the complete record of one hand, handed to Store.LogHand after payout.
// Per-player slices are in seat order and aligned with Players.
type HandHistory struct {
	ID         string
	Variant    string
	Number     int
	Started    time.Time
	Button     int
	SmallBlind int
	BigBlind   int
	Ante       int

	Players         []string
	StartingStacks  []int
	Antes           []int
	Blinds          []int
	Events          []HistoryEvent
	Board           []poker.Card
	Ranks           map[string]poker.HandRank
	Winnings        map[string]int
	FinishingStacks []int
	Unclaimed       int
	Showdown        bool
}

func newHandHistory(id, variant string, number int, started time.Time, t *Table) *HandHistory {
	h := &HandHistory{
		ID:       id,
		Variant:  variant,
		Number:   number,
		Started:  started,
		Button:   t.Button(),
		Ranks:    map[string]poker.HandRank{},
		Winnings: map[string]int{},
	}
	for _, p := range t.Players() {
		h.Players = append(h.Players, p.Name)
		h.StartingStacks = append(h.StartingStacks, p.Chips)
	}
	return h
}

func (h *HandHistory) recordForcedBets(t *Table, pm *PotManager, ctx *GameContext) {
	h.SmallBlind, h.BigBlind, h.Ante = ctx.SmallBlind, ctx.BigBlind, ctx.Ante
	h.Antes = make([]int, t.Len())
	h.Blinds = make([]int, t.Len())
	for i, p := range t.Players() {
		h.Blinds[i] = p.Bet
		h.Antes[i] = pm.Contribution(p.Name) - p.Bet
	}
}

func (h *HandHistory) add(e HistoryEvent) {
	e.Cards = slices.Clone(e.Cards)
	e.Discarded = slices.Clone(e.Discarded)
	h.Events = append(h.Events, e)
}

// Actions returns the betting actions of the hand in order.
func (h *HandHistory) Actions() []PlayerAction {
	var out []PlayerAction
	for _, e := range h.Events {
		if e.Kind == EventAction {
			out = append(out, e.Action)
		}
	}
	return out
}

// Net returns each player's chip change over the hand.
func (h *HandHistory) Net() map[string]int {
	net := make(map[string]int, len(h.Players))
	for i, name := range h.Players {
		if i < len(h.FinishingStacks) {
			net[name] = h.FinishingStacks[i] - h.StartingStacks[i]
		}
	}
	return net
}

// TotalPot returns the chips put in by all players.
func (h *HandHistory) TotalPot() int {
	total := 0
	for _, w := range h.Winnings {
		total += w
	}
	return total + h.Unclaimed
}
