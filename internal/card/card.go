package card

import "fmt"

// Suit of a playing card.
type Suit int8

const (
	Spade Suit = iota
	Heart
	Club
	Diamond
)

func (s Suit) String() string {
	switch s {
	case Spade:
		return "Spades"
	case Heart:
		return "Hearts"
	case Club:
		return "Clubs"
	case Diamond:
		return "Diamonds"
	default:
		return fmt.Sprintf("Suit(%d)", int8(s))
	}
}

// Value is the face value of a card, 2..14 (Ace high).
type Value int8

const (
	Two Value = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Enhancement applied to a card by consumables.
type Enhancement int8

const (
	EnhancementNone Enhancement = iota
	EnhancementBonus
	EnhancementMult
	EnhancementWild
	EnhancementGlass
	EnhancementSteel
	EnhancementStone
	EnhancementGold
	EnhancementLucky
)

// Card is a single playing card. Cards are plain values and are never mutated
// by scoring; transformations are reported through effect records instead.
type Card struct {
	Value       Value       `json:"value"`
	Suit        Suit        `json:"suit"`
	Enhancement Enhancement `json:"enhancement,omitempty"`
}

// New creates an unenhanced card.
func New(v Value, s Suit) Card {
	return Card{Value: v, Suit: s}
}

// IsFace reports whether the card is a Jack, Queen or King.
func (c Card) IsFace() bool {
	return c.Value >= Jack && c.Value <= King
}

// Chips returns the base chip value of the card.
// Stone cards always give 50 regardless of value.
func (c Card) Chips() int {
	if c.Enhancement == EnhancementStone {
		return 50
	}
	switch {
	case c.Value == Ace:
		return 11
	case c.Value >= Ten:
		return 10
	default:
		return int(c.Value)
	}
}

func (c Card) String() string {
	var v string
	switch c.Value {
	case Jack:
		v = "J"
	case Queen:
		v = "Q"
	case King:
		v = "K"
	case Ace:
		v = "A"
	default:
		v = fmt.Sprintf("%d", int8(c.Value))
	}
	return v + " of " + c.Suit.String()
}
