package catalog

import (
	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
)

// faceJoker implements both shapes: Gameplay for the engine's fast path and
// the unified callback for callers that only know Joker.
type faceJoker struct {
	joker.Base
	chips    int
	mult     int
	priority int
}

var (
	_ joker.Joker    = faceJoker{}
	_ joker.Gameplay = faceJoker{}
)

func (f faceJoker) CanTrigger(stage joker.Stage, pc *joker.ProcessContext) bool {
	return stage.IsBlind() && pc != nil && pc.Card != nil && pc.Card.IsFace()
}

func (f faceJoker) Process(_ joker.Stage, _ *joker.ProcessContext) joker.ProcessResult {
	return joker.ProcessResult{ChipsAdded: f.chips, MultAdded: float64(f.mult)}
}

func (f faceJoker) Priority(joker.Stage) int { return f.priority }

func (f faceJoker) OnCardScored(_ *joker.Context, c card.Card) effect.Effect {
	if !c.IsFace() {
		return effect.None
	}
	return effect.Effect{Chips: f.chips, Mult: f.mult}
}

// evenSteven adds mult for even ranked scored cards.
type evenSteven struct {
	joker.Base
	joker.NopLifecycle
}

func (evenSteven) CanTrigger(_ joker.Stage, pc *joker.ProcessContext) bool {
	return pc != nil && pc.Card != nil && pc.Card.Value <= card.Ten && pc.Card.Value%2 == 0
}

func (evenSteven) Process(joker.Stage, *joker.ProcessContext) joker.ProcessResult {
	return joker.ProcessResult{MultAdded: 4}
}

func (evenSteven) Priority(joker.Stage) int { return 0 }

func (evenSteven) OnCardScored(_ *joker.Context, c card.Card) effect.Effect {
	if c.Value > card.Ten || c.Value%2 != 0 {
		return effect.None
	}
	return effect.Mult(4)
}

func init() {
	Register("scary_face", func() joker.Joker {
		return faceJoker{
			Base: joker.NewBase("scary_face", "Scary Face",
				"Played face cards give +30 Chips when scored", joker.Common, 4),
			chips: 30,
		}
	})
	Register("smiley_face", func() joker.Joker {
		return faceJoker{
			Base: joker.NewBase("smiley_face", "Smiley Face",
				"Played face cards give +5 Mult when scored", joker.Common, 4),
			mult:     5,
			priority: 1,
		}
	})
	Register("even_steven", func() joker.Joker {
		return evenSteven{Base: joker.NewBase("even_steven", "Even Steven",
			"Played cards with even rank give +4 Mult when scored", joker.Common, 4)}
	})
}
