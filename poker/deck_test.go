package poker

import (
	"testing"

	"github.com/lox/pokerengine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDealsEveryCardOnce(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(42))
	assert.Equal(t, DeckSize, d.Remaining())

	seen := make(map[Card]bool)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Deal()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	assert.Equal(t, 0, d.Remaining())

	_, err := d.Deal()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDeckDealNIsAllOrNothing(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(1))
	_, err := d.DealN(50)
	require.NoError(t, err)

	_, err = d.DealN(3)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, 2, d.Remaining())

	d.Reset()
	assert.Equal(t, DeckSize, d.Remaining())
}

func TestDeckShuffleIsSeeded(t *testing.T) {
	t.Parallel()

	a, _ := NewDeck(randutil.New(7)).DealN(10)
	b, _ := NewDeck(randutil.New(7)).DealN(10)
	c, _ := NewDeck(randutil.New(8)).DealN(10)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestOrderedDeck(t *testing.T) {
	t.Parallel()

	top := MustParseCards("AsKsQh")
	d := NewOrderedDeck(top...)
	got, err := d.DealN(3)
	require.NoError(t, err)
	assert.Equal(t, top, got)

	rest, err := d.DealN(d.Remaining())
	require.NoError(t, err)
	assert.Len(t, rest, DeckSize-3)
	for _, c := range rest {
		assert.NotContains(t, top, c)
	}

	d.Reset()
	first, _ := d.Deal()
	assert.Equal(t, top[0], first)

	assert.Panics(t, func() { NewOrderedDeck(top[0], top[0]) })
}
