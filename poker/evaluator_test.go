package poker

import (
	"testing"

	"github.com/lox/pokerengine/internal/randutil"
	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category Category
		tiebreak []Rank
	}{
		{"royal flush", "AsKsQsJsTs9h8h", RoyalFlush, []Rank{Ace, King, Queen, Jack, Ten}},
		{"straight flush", "9s8s7s6s5s4h3h", StraightFlush, []Rank{Nine, Eight, Seven, Six, Five}},
		{"steel wheel", "5h4h3h2hAhKd", StraightFlush, []Rank{Five, Four, Three, Two, Ace}},
		{"quads", "AsAhAdAcKs2h3h", FourOfAKind, []Rank{Ace, King}},
		{"full house", "AsAhAdKsKh2h3c", FullHouse, []Rank{Ace, King}},
		{"two trips make a boat", "9s9h9dKsKhKc2d", FullHouse, []Rank{King, Nine}},
		{"flush", "AsKsQs8s6s4h3h", Flush, []Rank{Ace, King, Queen, Eight, Six}},
		{"flush uses top five of suit", "AsKs9s8s6s3s2s", Flush, []Rank{Ace, King, Nine, Eight, Six}},
		{"broadway", "AsKhQdJcTs9h8h", Straight, []Rank{Ace, King, Queen, Jack, Ten}},
		{"wheel", "As2d3c4h5sKd9c", Straight, []Rank{Five, Four, Three, Two, Ace}},
		{"trips", "AsAhAdKs9c7h5h", ThreeOfAKind, []Rank{Ace, King, Nine}},
		{"two pair", "AsAhKdKs9c7h5h", TwoPair, []Rank{Ace, King, Nine}},
		{"three pair kicker", "KsKh9d9s7c7h2d", TwoPair, []Rank{King, Nine, Seven}},
		{"pair", "AsAhKdQs9c7h5h", Pair, []Rank{Ace, King, Queen, Nine}},
		{"high card", "AsKhQd9s7c5h3d", HighCard, []Rank{Ace, King, Queen, Nine, Seven}},
		{"five cards", "2c2d7h9sJc", Pair, []Rank{Two, Jack, Nine, Seven}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank := Evaluate(MustParseCards(tt.cards))
			assert.Equal(t, tt.category, rank.Category, rank.String())
			assert.Equal(t, tt.tiebreak, rank.Tiebreak)
		})
	}
}

func TestHandRankCompare(t *testing.T) {
	t.Parallel()

	eval := func(s string) HandRank { return Evaluate(MustParseCards(s)) }

	a := assert.New(t)
	a.True(eval("AsAhKdKs9c7h5h").Beats(eval("AsAhKdKs8c7h5h")), "kicker decides two pair")
	a.True(eval("6s5h4d3c2s").Beats(eval("As2d3c4h5s")), "six high straight beats the wheel")
	a.False(eval("2c3c4c5c7c").Beats(eval("AsAdAhKsKd")), "full house beats flush")
	a.Equal(0, eval("AsKhQd9s7c").Compare(eval("AdKcQh9c7d")), "suits never break ties")
	a.Equal(-1, eval("KsKh5d4s2c").Compare(eval("AsAh5c4d2d")))
	a.Equal(1, HandRank{Category: Pair, Tiebreak: []Rank{Ace, King}}.Compare(HandRank{Category: Pair, Tiebreak: []Rank{Ace}}))
	a.Equal("Two Pair [A K 9]", eval("AsAhKdKs9c7h5h").String())
}

func TestStandardEvaluatorValidates(t *testing.T) {
	t.Parallel()

	var e StandardEvaluator
	_, err := e.Evaluate(MustParseCards("AsKs"), MustParseCards("QsJs"))
	assert.ErrorIs(t, err, ErrInvalidCardCount)

	_, err = e.Evaluate(MustParseCards("AsKs"), MustParseCards("QsJsAs"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	rank, err := e.Evaluate(MustParseCards("AsKs"), MustParseCards("QsJsTs2d3d"))
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, rank.Category)
}

func TestOmahaEvaluatorUsesTwoHoleCards(t *testing.T) {
	t.Parallel()

	var e OmahaEvaluator

	// Four spades on board with one in hand is not a flush in Omaha.
	rank, err := e.Evaluate(MustParseCards("As2d3c4h"), MustParseCards("KsQsJs9s8d"))
	require.NoError(t, err)
	assert.NotEqual(t, Flush, rank.Category)

	// Quads in the hand only play two of them.
	rank, err = e.Evaluate(MustParseCards("AsAhAdAc"), MustParseCards("Kd7c2s"))
	require.NoError(t, err)
	assert.Equal(t, Pair, rank.Category)
	assert.Equal(t, []Rank{Ace, King, Seven, Two}, rank.Tiebreak)

	rank, err = e.Evaluate(MustParseCards("AsKs2d3c"), MustParseCards("QsJsTs"))
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, rank.Category)

	_, err = e.Evaluate(MustParseCards("AsKs2d3c"), MustParseCards("QsJs"))
	assert.ErrorIs(t, err, ErrInvalidCardCount)
}

func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	suits := [...]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	r := ph.Rank(c.Rank)
	if c.Rank == Ace {
		r = 1
	}
	card, err := ph.MakeCard(suits[c.Suit], r)
	require.NoError(t, err)
	return card
}

// TestEvaluateAgreesWithOracle compares relative ordering of random seven card hands against an
// independent table-driven evaluator.
func TestEvaluateAgreesWithOracle(t *testing.T) {
	t.Parallel()

	rng := randutil.New(20240601)
	for i := 0; i < 2000; i++ {
		deck := NewDeck(rng)
		left, err := deck.DealN(7)
		require.NoError(t, err)
		right, err := deck.DealN(7)
		require.NoError(t, err)

		var l7, r7 [7]ph.Card
		for j := range 7 {
			l7[j] = toOracle(t, left[j])
			r7[j] = toOracle(t, right[j])
		}
		want := 0
		switch ls, rs := ph.Eval7(&l7), ph.Eval7(&r7); {
		case ls > rs:
			want = 1
		case ls < rs:
			want = -1
		}

		got := Evaluate(left).Compare(Evaluate(right))
		require.Equal(t, want, got, "%s vs %s: %s vs %s",
			FormatCards(left), FormatCards(right), Evaluate(left), Evaluate(right))
	}
}
