package joker

import (
	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/state"
)

// Stage of the round, as reported by the turn driver.
type Stage int8

const (
	StagePreBlind Stage = iota
	StageBlindSmall
	StageBlindBig
	StageBlindBoss
	StagePostBlind
	StageShop
	StageEnd
)

// IsBlind reports whether the stage is one of the three blinds.
func (s Stage) IsBlind() bool {
	return s >= StageBlindSmall && s <= StageBlindBoss
}

func (s Stage) String() string {
	switch s {
	case StagePreBlind:
		return "PreBlind"
	case StageBlindSmall:
		return "SmallBlind"
	case StageBlindBig:
		return "BigBlind"
	case StageBlindBoss:
		return "BossBlind"
	case StagePostBlind:
		return "PostBlind"
	case StageShop:
		return "Shop"
	case StageEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// RNG is the uniform sampling capability provided by the game.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	Float64() float64
	IntN(n int) int
}

// Context is the read-only snapshot handed to joker callbacks.
type Context struct {
	Chips int
	Mult  int
	Money int

	Ante         int
	Round        int
	Stage        Stage
	HandsPlayed  int
	DiscardsUsed int

	// Jokers is the owned collection, in stored order.
	Jokers    []Joker
	Held      []card.Card
	Discarded []card.Card

	HandTypeCounts map[card.HandRank]int

	CardsInDeck      int
	StoneCardsInDeck int
	SteelCardsInDeck int

	States *state.Store
	RNG    RNG
}

// HandScore is the running score a Gameplay joker may inspect.
type HandScore struct {
	Chips int
	Mult  float64
}

// ProcessContext is passed to Gameplay jokers. Card is set only while a card
// is being scored; Hand is set whenever the played hand is known.
type ProcessContext struct {
	Game   *Context
	Score  HandScore
	Played []card.Card
	Held   []card.Card

	Hand *card.Hand
	Card *card.Card
}

// ProcessResult is what a Gameplay joker contributes.
type ProcessResult struct {
	ChipsAdded  int
	MultAdded   float64
	Retriggered bool
}
