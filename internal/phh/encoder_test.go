package phh_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/phh"
	"github.com/lox/pokerengine/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		action    game.PlayerAction
		streetBet int
		want      string
	}{
		{"fold", game.PlayerAction{Kind: game.Fold, Amount: 10}, 20, "p1 f"},
		{"check", game.PlayerAction{Kind: game.Check}, 0, "p1 cc"},
		{"call", game.PlayerAction{Kind: game.Call, Amount: 50}, 50, "p1 cc"},
		{"bet", game.PlayerAction{Kind: game.Bet, Amount: 40}, 0, "p1 cbr 40"},
		{"raise", game.PlayerAction{Kind: game.Raise, Amount: 120}, 40, "p1 cbr 120"},
		{"all-in raise", game.PlayerAction{Kind: game.AllIn, Amount: 350}, 100, "p1 cbr 350"},
		{"all-in call", game.PlayerAction{Kind: game.AllIn, Amount: 80}, 100, "p1 cc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, phh.FormatAction(1, tt.action, tt.streetBet))
		})
	}
}

func TestEncodeHandHistory(t *testing.T) {
	t.Parallel()

	hand := &phh.HandHistory{
		Variant:           "NT",
		Table:             "default",
		SeatCount:         3,
		Seats:             []int{2, 3, 1},
		Antes:             []int{0, 0, 0},
		BlindsOrStraddles: []int{1, 2, 0},
		MinBet:            2,
		StartingStacks:    []int{200, 200, 200},
		FinishingStacks:   []int{199, 204, 197},
		Winnings:          []int{0, 9, 0},
		Actions:           []string{"d dh p1 AhKh", "d dh p2 7c2d", "d dh p3 QsJs", "p3 cbr 6", "p1 f", "p2 cc"},
		Players:           []string{"bob", "carol", "alice"},
		HandID:            "hand-00042",
		Time:              "15:22:00",
		TimeZone:          "UTC",
		Day:               14,
		Month:             11,
		Year:              2025,
		Game:              "holdem",
		Number:            42,
	}

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"default\"\n" +
		"seat_count = 3\n" +
		"seats = [2, 3, 1]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [200, 200, 200]\n" +
		"finishing_stacks = [199, 204, 197]\n" +
		"winnings = [0, 9, 0]\n" +
		"actions = [\"d dh p1 AhKh\", \"d dh p2 7c2d\", \"d dh p3 QsJs\", \"p3 cbr 6\", \"p1 f\", \"p2 cc\"]\n" +
		"players = [\"bob\", \"carol\", \"alice\"]\n" +
		"hand = \"hand-00042\"\n" +
		"time = \"15:22:00\"\n" +
		"time_zone = \"UTC\"\n" +
		"day = 14\n" +
		"month = 11\n" +
		"year = 2025\n" +
		"_game = \"holdem\"\n" +
		"_number = 42\n"
	assert.Equal(t, want, buf.String())

	decoded, err := phh.Decode(strings.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, hand, decoded)
	assert.Equal(t, []string{"carol"}, decoded.Winners())

	assert.Error(t, phh.Encode(&buf, nil))
}

func event(kind game.HistoryKind, phase, player, cards string) game.HistoryEvent {
	ev := game.HistoryEvent{Kind: kind, Phase: phase, Player: player}
	if cards != "" {
		ev.Cards = poker.MustParseCards(cards)
	}
	return ev
}

func action(phase, player string, kind game.ActionKind, amount int) game.HistoryEvent {
	return game.HistoryEvent{
		Kind:   game.EventAction,
		Phase:  phase,
		Player: player,
		Action: game.PlayerAction{Player: player, Kind: kind, Amount: amount},
	}
}

func TestFromGameHoldem(t *testing.T) {
	t.Parallel()

	h := &game.HandHistory{
		ID:              "hand-1",
		Variant:         "holdem",
		Number:          7,
		Started:         time.Date(2025, time.March, 2, 9, 30, 0, 0, time.UTC),
		Button:          0,
		SmallBlind:      5,
		BigBlind:        10,
		Players:         []string{"A", "B", "C"},
		StartingStacks:  []int{100, 100, 100},
		Antes:           []int{0, 0, 0},
		Blinds:          []int{0, 5, 10},
		FinishingStacks: []int{205, 95, 0},
		Winnings:        map[string]int{"A": 205},
		Showdown:        true,
		Events: []game.HistoryEvent{
			event(game.EventDealHole, "Pre-Flop", "B", "AsAh"),
			event(game.EventDealHole, "Pre-Flop", "C", "KsKh"),
			event(game.EventDealHole, "Pre-Flop", "A", "2c7d"),
			action("Pre-Flop", "A", game.Raise, 30),
			action("Pre-Flop", "B", game.Fold, 5),
			action("Pre-Flop", "C", game.Call, 30),
			event(game.EventDealBoard, "Flop", "", "9c8d4h"),
			action("Flop", "C", game.Check, 0),
			action("Flop", "A", game.Bet, 20),
			action("Flop", "C", game.AllIn, 70),
			action("Flop", "A", game.Call, 70),
			event(game.EventDealBoard, "Turn", "", "7s"),
			event(game.EventDealBoard, "River", "", "7h"),
			event(game.EventShow, "Showdown", "C", "KsKh"),
			event(game.EventShow, "Showdown", "A", "2c7d"),
		},
	}

	got := phh.FromGame(h, "main")

	assert.Equal(t, "NT", got.Variant)
	assert.Equal(t, "main", got.Table)
	assert.Equal(t, []string{"B", "C", "A"}, got.Players)
	assert.Equal(t, []int{2, 3, 1}, got.Seats)
	assert.Equal(t, []int{5, 10, 0}, got.BlindsOrStraddles)
	assert.Equal(t, []int{95, 0, 205}, got.FinishingStacks)
	assert.Equal(t, []int{0, 0, 205}, got.Winnings)
	assert.Equal(t, 10, got.MinBet)
	assert.Equal(t, "09:30:00", got.Time)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, map[string]int{"A": 105, "B": -5, "C": -100}, got.Net())
	assert.Equal(t, []string{
		"d dh p1 AsAh",
		"d dh p2 KsKh",
		"d dh p3 2c7d",
		"p3 cbr 30",
		"p1 f",
		"p2 cc",
		"d db 9c8d4h",
		"p2 cc",
		"p3 cbr 20",
		"p2 cbr 70",
		"p3 cc",
		"d db 7s",
		"d db 7h",
		"p2 sm KsKh",
		"p3 sm 2c7d",
	}, got.Actions)
}

func TestFromGameDrawSkipsSittingOut(t *testing.T) {
	t.Parallel()

	h := &game.HandHistory{
		ID:              "hand-2",
		Variant:         "draw",
		Button:          2,
		BigBlind:        2,
		Players:         []string{"A", "B", "C"},
		StartingStacks:  []int{50, 50, 0},
		FinishingStacks: []int{50, 50, 0},
		Winnings:        map[string]int{},
		Events: []game.HistoryEvent{
			{Kind: game.EventDraw, Phase: "Draw", Player: "A", Discarded: poker.MustParseCards("2c3c"), Cards: poker.MustParseCards("AsAh")},
			{Kind: game.EventDraw, Phase: "Draw", Player: "B"},
		},
	}

	got := phh.FromGame(h, "")
	assert.Equal(t, "ND", got.Variant)
	assert.Equal(t, 3, got.SeatCount)
	assert.Equal(t, []int{1, 2}, got.Seats)
	assert.Equal(t, []string{"p1 sd 2c3c", "d dh p1 AsAh", "p2 sd"}, got.Actions)
	assert.Empty(t, got.Time)
}

func TestSectionsDecodeInOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	for _, section := range []int{2, 10, 1} {
		hand := &phh.HandHistory{
			Variant:           "NT",
			Antes:             []int{0, 0},
			BlindsOrStraddles: []int{1, 2},
			MinBet:            2,
			StartingStacks:    []int{100, 100},
			Actions:           []string{"p1 f"},
			Number:            section,
		}
		if section != 10 {
			hand.HandID = "h" + string(rune('0'+section))
		}
		require.NoError(t, phh.WriteSection(&buf, section, hand))
	}

	hands, err := phh.DecodeSections(&buf)
	require.NoError(t, err)
	require.Len(t, hands, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{hands[0].Number, hands[1].Number, hands[2].Number})
	assert.Equal(t, "h1", hands[0].HandID)
	assert.Equal(t, "10", hands[2].HandID, "section name stands in for a missing hand id")
	assert.Equal(t, []string{"p1 f"}, hands[1].Actions)
}

func TestVariantCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NT", phh.VariantCode("holdem"))
	assert.Equal(t, "NO", phh.VariantCode("omaha"))
	assert.Equal(t, "custom", phh.VariantCode("custom"))
}
