package poker

import (
	"fmt"
	"strings"
)

// Category enumerates hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the comparable strength of a five card hand: its category plus the ranks that
// break ties within the category, most significant first.
type HandRank struct {
	Category Category
	Tiebreak []Rank
}

// Compare returns 1 if h beats other, -1 if other beats h and 0 on a tie.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.Tiebreak) && i < len(other.Tiebreak); i++ {
		if h.Tiebreak[i] != other.Tiebreak[i] {
			if h.Tiebreak[i] > other.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(h.Tiebreak) > len(other.Tiebreak):
		return 1
	case len(h.Tiebreak) < len(other.Tiebreak):
		return -1
	}
	return 0
}

// Beats is shorthand for Compare(other) > 0.
func (h HandRank) Beats(other HandRank) bool {
	return h.Compare(other) > 0
}

// String describes the hand, e.g. "Two Pair [K Q 9]".
func (h HandRank) String() string {
	if len(h.Tiebreak) == 0 {
		return h.Category.String()
	}
	ranks := make([]string, len(h.Tiebreak))
	for i, r := range h.Tiebreak {
		ranks[i] = r.String()
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(ranks, " "))
}
