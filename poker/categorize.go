package poker

// Tier is a coarse strength bucket for two starting cards.
type Tier uint8

const (
	TierTrash Tier = iota
	TierWeak
	TierMedium
	TierStrong
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierMedium:
		return "medium"
	case TierWeak:
		return "weak"
	default:
		return "trash"
	}
}

// StartingTier buckets a two card starting hand:
// premium is JJ+ and AK, strong is TT, AQ and AJ, medium is 77-99 and suited broadway,
// weak is 22-66 and suited cards within two ranks, everything else is trash.
func StartingTier(a, b Card) Tier {
	lo, hi := a.Rank, b.Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := a.Suit == b.Suit

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return TierPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return TierStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return TierMedium
	case pair, suited && hi-lo <= 2:
		return TierWeak
	}
	return TierTrash
}
