package catalog

import (
	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
)

// Jokers with the unified callback shape only.

type plainJoker struct{ joker.Base }

func (plainJoker) OnHandPlayed(*joker.Context, *card.Hand) effect.Effect {
	return effect.Mult(4)
}

// suitJoker adds mult for every scored card of its suit.
type suitJoker struct {
	joker.Base
	suit card.Suit
	mult int
}

func (j suitJoker) OnCardScored(_ *joker.Context, c card.Card) effect.Effect {
	if c.Suit != j.suit && c.Enhancement != card.EnhancementWild {
		return effect.None
	}
	return effect.Mult(j.mult)
}

// pairJoker rewards any hand containing a pair.
type pairJoker struct{ joker.Base }

func (pairJoker) OnHandPlayed(_ *joker.Context, hand *card.Hand) effect.Effect {
	if hand == nil || !hand.Rank.ContainsPair() {
		return effect.None
	}
	return effect.Mult(8)
}

type abstractJoker struct{ joker.Base }

func (abstractJoker) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	return effect.Mult(3 * len(ctx.Jokers))
}

type blueJoker struct{ joker.Base }

func (blueJoker) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	return effect.Chips(2 * ctx.CardsInDeck)
}

type stoneJoker struct{ joker.Base }

func (stoneJoker) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	return effect.Chips(25 * ctx.StoneCardsInDeck)
}

type steelJoker struct{ joker.Base }

func (steelJoker) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	if ctx.SteelCardsInDeck == 0 {
		return effect.None
	}
	return effect.XMult(1 + 0.2*float64(ctx.SteelCardsInDeck))
}

// cavendishOdds is the 1 in N chance of going extinct at round end.
const cavendishOdds = 1000

type cavendish struct{ joker.Base }

func (cavendish) OnHandPlayed(*joker.Context, *card.Hand) effect.Effect {
	return effect.XMult(3)
}

func (cavendish) OnRoundEnd(ctx *joker.Context) effect.Effect {
	if ctx.RNG == nil || ctx.RNG.IntN(cavendishOdds) != 0 {
		return effect.None
	}
	return effect.Effect{DestroySelf: true, Message: "Extinct!"}
}

type goldenJoker struct{ joker.Base }

func (goldenJoker) OnRoundEnd(*joker.Context) effect.Effect {
	return effect.Money(4)
}

type supernova struct{ joker.Base }

func (supernova) OnHandPlayed(ctx *joker.Context, hand *card.Hand) effect.Effect {
	if hand == nil {
		return effect.None
	}
	return effect.Mult(ctx.HandTypeCounts[hand.Rank])
}

func init() {
	Register("joker", func() joker.Joker {
		return plainJoker{joker.NewBase("joker", "Joker", "+4 Mult", joker.Common, 2)}
	})
	Register("greedy_joker", func() joker.Joker {
		return suitJoker{
			Base: joker.NewBase("greedy_joker", "Greedy Joker",
				"Played cards with Diamond suit give +3 Mult when scored", joker.Common, 5),
			suit: card.Diamond,
			mult: 3,
		}
	})
	Register("lusty_joker", func() joker.Joker {
		return suitJoker{
			Base: joker.NewBase("lusty_joker", "Lusty Joker",
				"Played cards with Heart suit give +3 Mult when scored", joker.Common, 5),
			suit: card.Heart,
			mult: 3,
		}
	})
	Register("jolly_joker", func() joker.Joker {
		return pairJoker{joker.NewBase("jolly_joker", "Jolly Joker",
			"+8 Mult if played hand contains a Pair", joker.Common, 3)}
	})
	Register("abstract_joker", func() joker.Joker {
		return abstractJoker{joker.NewBase("abstract_joker", "Abstract Joker",
			"+3 Mult for each Joker card", joker.Common, 4)}
	})
	Register("blue_joker", func() joker.Joker {
		return blueJoker{joker.NewBase("blue_joker", "Blue Joker",
			"+2 Chips for each remaining card in deck", joker.Common, 5)}
	})
	Register("stone_joker", func() joker.Joker {
		return stoneJoker{joker.NewBase("stone_joker", "Stone Joker",
			"Gives +25 Chips for each Stone Card in your full deck", joker.Uncommon, 6)}
	})
	Register("steel_joker", func() joker.Joker {
		return steelJoker{joker.NewBase("steel_joker", "Steel Joker",
			"Gives X0.2 Mult for each Steel Card in your full deck", joker.Uncommon, 7)}
	})
	Register("cavendish", func() joker.Joker {
		return cavendish{joker.NewBase("cavendish", "Cavendish",
			"X3 Mult, 1 in 1000 chance this card is destroyed at end of round", joker.Common, 4)}
	})
	Register("golden_joker", func() joker.Joker {
		return goldenJoker{joker.NewBase("golden_joker", "Golden Joker",
			"Earn $4 at end of round", joker.Common, 6)}
	})
	Register("supernova", func() joker.Joker {
		return supernova{joker.NewBase("supernova", "Supernova",
			"Adds the number of times poker hand has been played this run to Mult", joker.Common, 5)}
	})

	joker.RegisterLegacyProfile("greedy_joker", joker.LegacyProfile{
		Gameplay: true,
		Stages:   []joker.Stage{joker.StageBlindSmall, joker.StageBlindBig, joker.StageBlindBoss},
	})
	joker.RegisterLegacyProfile("lusty_joker", joker.LegacyProfile{
		Gameplay: true,
		Stages:   []joker.Stage{joker.StageBlindSmall, joker.StageBlindBig, joker.StageBlindBoss},
	})
	joker.RegisterLegacyProfile("jolly_joker", joker.LegacyProfile{Gameplay: true, Priority: 1})
}
