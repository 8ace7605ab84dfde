package phh

import (
	"fmt"
	"strings"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// FromGame converts an engine hand history to PHH. Players are listed in position order starting
// left of the button; seats that sat the hand out are left out.
func FromGame(h *game.HandHistory, table string) *HandHistory {
	order := positionOrder(h)
	position := make(map[string]int, len(order))

	out := &HandHistory{
		Variant:   VariantCode(h.Variant),
		Table:     table,
		SeatCount: len(h.Players),
		MinBet:    h.BigBlind,
		HandID:    h.ID,
		Game:      h.Variant,
		Number:    h.Number,
		Unclaimed: h.Unclaimed,
		Timestamp: h.Started,
	}
	for i, seat := range order {
		name := h.Players[seat]
		position[name] = i + 1
		out.Players = append(out.Players, name)
		out.Seats = append(out.Seats, seat+1)
		out.Antes = append(out.Antes, at(h.Antes, seat))
		out.BlindsOrStraddles = append(out.BlindsOrStraddles, at(h.Blinds, seat))
		out.StartingStacks = append(out.StartingStacks, h.StartingStacks[seat])
		out.FinishingStacks = append(out.FinishingStacks, at(h.FinishingStacks, seat))
		out.Winnings = append(out.Winnings, h.Winnings[name])
	}
	out.Actions = actions(h, position)
	populateTimeFields(out)
	return out
}

func positionOrder(h *game.HandHistory) []int {
	n := len(h.Players)
	order := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		seat := (h.Button + i) % n
		if h.StartingStacks[seat] > 0 {
			order = append(order, seat)
		}
	}
	return order
}

func actions(h *game.HandHistory, position map[string]int) []string {
	var (
		out       []string
		phase     string
		streetBet int
	)
	for _, b := range h.Blinds {
		streetBet = max(streetBet, b)
	}

	for _, ev := range h.Events {
		if ev.Phase != phase {
			if phase != "" {
				streetBet = 0
			}
			phase = ev.Phase
		}
		p := position[ev.Player]
		switch ev.Kind {
		case game.EventDealHole:
			out = append(out, fmt.Sprintf("d dh p%d %s", p, cards(ev.Cards)))
		case game.EventDealBoard:
			out = append(out, "d db "+cards(ev.Cards))
		case game.EventDraw:
			out = append(out, strings.TrimSpace(fmt.Sprintf("p%d sd %s", p, cards(ev.Discarded))))
			if len(ev.Cards) > 0 {
				out = append(out, fmt.Sprintf("d dh p%d %s", p, cards(ev.Cards)))
			}
		case game.EventAction:
			out = append(out, FormatAction(p, ev.Action, streetBet))
			if ev.Action.Kind != game.Fold {
				streetBet = max(streetBet, ev.Action.Amount)
			}
		case game.EventShow:
			out = append(out, fmt.Sprintf("p%d sm %s", p, cards(ev.Cards)))
		}
	}
	return out
}

func cards(cs []poker.Card) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.String())
	}
	return b.String()
}

func at(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func populateTimeFields(hist *HandHistory) {
	t := hist.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	hist.Time = utc.Format("15:04:05")
	hist.TimeZone = "UTC"
	hist.Day = utc.Day()
	hist.Month = int(utc.Month())
	hist.Year = utc.Year()
}
