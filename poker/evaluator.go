package poker

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidCardCount is returned when an evaluator is given too few or too many cards.
	ErrInvalidCardCount = errors.New("invalid card count")
	// ErrDuplicateCard is returned when the same card appears twice in one evaluation.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Evaluator ranks a player's hole cards against the board.
type Evaluator interface {
	Evaluate(hole, board []Card) (HandRank, error)
}

// StandardEvaluator picks the best five cards out of any combination of hole and board cards,
// as in Hold'em and draw games. It accepts 5 to 7 cards in total.
type StandardEvaluator struct{}

// Evaluate implements Evaluator.
func (StandardEvaluator) Evaluate(hole, board []Card) (HandRank, error) {
	all := make([]Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	if len(all) < 5 || len(all) > 7 {
		return HandRank{}, fmt.Errorf("%w: %d cards, need 5 to 7", ErrInvalidCardCount, len(all))
	}
	if err := checkCards(all); err != nil {
		return HandRank{}, err
	}
	return Evaluate(all), nil
}

// OmahaEvaluator requires exactly two hole cards and exactly three board cards in the final hand.
type OmahaEvaluator struct{}

// Evaluate implements Evaluator.
func (OmahaEvaluator) Evaluate(hole, board []Card) (HandRank, error) {
	if len(hole) < 2 || len(board) < 3 || len(board) > 5 {
		return HandRank{}, fmt.Errorf("%w: omaha needs 2+ hole and 3-5 board cards, got %d and %d",
			ErrInvalidCardCount, len(hole), len(board))
	}
	all := make([]Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	if err := checkCards(all); err != nil {
		return HandRank{}, err
	}

	var best HandRank
	found := false
	five := make([]Card, 5)
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						five[0], five[1] = hole[i], hole[j]
						five[2], five[3], five[4] = board[a], board[b], board[c]
						rank := Evaluate(five)
						if !found || rank.Beats(best) {
							best, found = rank, true
						}
					}
				}
			}
		}
	}
	return best, nil
}

func checkCards(cards []Card) error {
	var seen [DeckSize]bool
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("invalid card %v", c)
		}
		if seen[c.index()] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.index()] = true
	}
	return nil
}

type rankGroup struct {
	rank  Rank
	count int
}

// Evaluate returns the best five card hand among 5 to 7 cards. Inputs are not validated; use an
// Evaluator when the cards come from outside the engine.
func Evaluate(cards []Card) HandRank {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b Card) int { return int(b.Rank) - int(a.Rank) })

	var suited [4][]Rank
	for _, c := range sorted {
		suited[c.Suit] = append(suited[c.Suit], c.Rank)
	}
	for _, ranks := range suited {
		if len(ranks) < 5 {
			continue
		}
		if run, ok := straightRun(ranks); ok {
			if run[0] == Ace {
				return HandRank{Category: RoyalFlush, Tiebreak: run}
			}
			return HandRank{Category: StraightFlush, Tiebreak: run}
		}
		return HandRank{Category: Flush, Tiebreak: slices.Clone(ranks[:5])}
	}

	distinct := distinctRanks(sorted)
	groups := groupRanks(sorted)
	top := groups[0]

	if top.count == 4 {
		return HandRank{Category: FourOfAKind, Tiebreak: withKickers(distinct, 1, top.rank)}
	}
	if top.count == 3 && len(groups) > 1 && groups[1].count >= 2 {
		return HandRank{Category: FullHouse, Tiebreak: []Rank{top.rank, groups[1].rank}}
	}
	if run, ok := straightRun(distinct); ok {
		return HandRank{Category: Straight, Tiebreak: run}
	}
	if top.count == 3 {
		return HandRank{Category: ThreeOfAKind, Tiebreak: withKickers(distinct, 2, top.rank)}
	}
	if top.count == 2 && len(groups) > 1 && groups[1].count == 2 {
		return HandRank{Category: TwoPair, Tiebreak: withKickers(distinct, 1, top.rank, groups[1].rank)}
	}
	if top.count == 2 {
		return HandRank{Category: Pair, Tiebreak: withKickers(distinct, 3, top.rank)}
	}
	return HandRank{Category: HighCard, Tiebreak: withKickers(distinct, 5)}
}

// straightRun finds the highest five consecutive ranks in a descending, duplicate-free list.
// The wheel is reported as 5-4-3-2-A.
func straightRun(desc []Rank) ([]Rank, bool) {
	for i := 0; i+5 <= len(desc); i++ {
		ok := true
		for k := 1; k < 5; k++ {
			if desc[i+k] != desc[i]-Rank(k) {
				ok = false
				break
			}
		}
		if ok {
			return slices.Clone(desc[i : i+5]), true
		}
	}
	wheel := []Rank{Five, Four, Three, Two, Ace}
	for _, r := range wheel {
		if !slices.Contains(desc, r) {
			return nil, false
		}
	}
	return wheel, true
}

// distinctRanks returns the distinct ranks of cards sorted in descending order.
func distinctRanks(desc []Card) []Rank {
	out := make([]Rank, 0, len(desc))
	for _, c := range desc {
		if len(out) == 0 || out[len(out)-1] != c.Rank {
			out = append(out, c.Rank)
		}
	}
	return out
}

// groupRanks counts cards per rank, ordered by count then rank, both descending.
func groupRanks(desc []Card) []rankGroup {
	var counts [Ace + 1]int
	for _, c := range desc {
		counts[c.Rank]++
	}
	groups := make([]rankGroup, 0, len(desc))
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int { return b.count - a.count })
	return groups
}

// withKickers returns the made ranks followed by up to n of the highest remaining distinct ranks.
func withKickers(distinct []Rank, n int, made ...Rank) []Rank {
	out := make([]Rank, 0, len(made)+n)
	out = append(out, made...)
	for _, r := range distinct {
		if n == 0 {
			break
		}
		if slices.Contains(made, r) {
			continue
		}
		out = append(out, r)
		n--
	}
	return out
}
