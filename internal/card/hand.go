package card

// HandRank is the poker rank of a played hand. Ranking itself happens
// outside this module; scoring only compares ranks for equality.
type HandRank int8

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
	FiveOfAKind
	FlushHouse
	FlushFive
)

var handRankNames = [...]string{
	HighCard:      "High Card",
	OnePair:       "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
	FiveOfAKind:   "Five of a Kind",
	FlushHouse:    "Flush House",
	FlushFive:     "Flush Five",
}

func (r HandRank) String() string {
	if r < 0 || int(r) >= len(handRankNames) {
		return "Unknown"
	}
	return handRankNames[r]
}

// ContainsPair reports whether a hand of this rank necessarily holds a pair.
func (r HandRank) ContainsPair() bool {
	switch r {
	case OnePair, TwoPair, ThreeOfAKind, FullHouse, FourOfAKind, FiveOfAKind, FlushHouse, FlushFive:
		return true
	}
	return false
}

// Hand is a played selection of cards together with its already
// evaluated rank.
type Hand struct {
	Cards []Card
	Rank  HandRank

	// Scoring is the subset of Cards that score for Rank. Nil means every
	// card in Cards scores.
	Scoring []Card
}

// NewHand builds a hand where every card scores.
func NewHand(rank HandRank, cards ...Card) *Hand {
	return &Hand{Cards: cards, Rank: rank}
}

// ScoringCards returns the cards that score for this hand.
func (h *Hand) ScoringCards() []Card {
	if h == nil {
		return nil
	}
	if h.Scoring != nil {
		return h.Scoring
	}
	return h.Cards
}

// CountSuit counts scoring cards of the given suit.
func (h *Hand) CountSuit(s Suit) int {
	n := 0
	for _, c := range h.ScoringCards() {
		if c.Suit == s {
			n++
		}
	}
	return n
}
