package catalog

import "github.com/udisondev/balatrogo/internal/joker"

// passiveJoker only adjusts the round setup.
type passiveJoker struct {
	joker.Base
	joker.NeutralModifiers
	handSize int
	discards int
}

func (p passiveJoker) HandSizeModifier() int { return p.handSize }
func (p passiveJoker) DiscardModifier() int  { return p.discards }

func init() {
	Register("juggler", func() joker.Joker {
		return passiveJoker{
			Base:     joker.NewBase("juggler", "Juggler", "+1 hand size", joker.Common, 4),
			handSize: 1,
		}
	})
	Register("drunkard", func() joker.Joker {
		return passiveJoker{
			Base:     joker.NewBase("drunkard", "Drunkard", "+1 discard each round", joker.Common, 4),
			discards: 1,
		}
	})
	Register("troubadour", func() joker.Joker {
		return passiveJoker{
			Base:     joker.NewBase("troubadour", "Troubadour", "+2 hand size, -1 hand each round", joker.Uncommon, 6),
			handSize: 2,
		}
	})
}
