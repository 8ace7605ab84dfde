package filestore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/store/filestore"
	"github.com/lox/pokerengine/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history(id string, number int) *game.HandHistory {
	return &game.HandHistory{
		ID:              id,
		Variant:         "holdem",
		Number:          number,
		Started:         time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
		BigBlind:        10,
		Players:         []string{"A", "B"},
		StartingStacks:  []int{100, 100},
		Antes:           []int{0, 0},
		Blinds:          []int{5, 10},
		FinishingStacks: []int{95, 105},
		Winnings:        map[string]int{"B": 15},
		Events: []game.HistoryEvent{
			{Kind: game.EventDealHole, Phase: "Pre-Flop", Player: "B", Cards: poker.MustParseCards("AsKs")},
			{Kind: game.EventDealHole, Phase: "Pre-Flop", Player: "A", Cards: poker.MustParseCards("2c7d")},
			{Kind: game.EventAction, Phase: "Pre-Flop", Player: "A", Action: game.PlayerAction{Player: "A", Kind: game.Fold, Amount: 5}},
		},
	}
}

func TestChipsRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := filestore.Open(dir)
	require.NoError(t, err)

	chips, err := s.LoadPlayerChips()
	require.NoError(t, err)
	assert.Empty(t, chips)

	require.NoError(t, s.SavePlayerChips([]game.PlayerView{{Name: "A", Chips: 120}, {Name: "B", Chips: 80}}))
	require.NoError(t, s.SavePlayerChips([]game.PlayerView{{Name: "A", Chips: 130}, {Name: "B", Chips: 70}}))

	chips, err = s.LoadPlayerChips()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 130, "B": 70}, chips)

	data, err := os.ReadFile(filepath.Join(dir, filestore.ChipsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[chips]")
}

func TestCorruptChipsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filestore.ChipsFile), []byte("chips = ["), 0o644))

	s, err := filestore.Open(dir)
	require.NoError(t, err)
	_, err = s.LoadPlayerChips()
	assert.ErrorContains(t, err, "read chips")
}

func TestLogHandAppendsSections(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := filestore.Open(dir, filestore.WithTable("friday"))
	require.NoError(t, err)

	require.NoError(t, s.LogHand(history("h-1", 1)))
	require.NoError(t, s.LogHand(history("h-2", 2)))

	reopened, err := filestore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, reopened.LogHand(history("h-3", 3)))

	hands, err := reopened.Hands()
	require.NoError(t, err)
	require.Len(t, hands, 3)
	assert.Equal(t, []string{"h-1", "h-2", "h-3"}, []string{hands[0].HandID, hands[1].HandID, hands[2].HandID})
	assert.Equal(t, "friday", hands[0].Table)
	assert.Equal(t, "default", hands[2].Table)
	assert.Equal(t, []string{"d dh p1 AsKs", "d dh p2 2c7d", "p2 f"}, hands[0].Actions)
	assert.Equal(t, map[string]int{"A": -5, "B": 5}, hands[1].Net())
}
