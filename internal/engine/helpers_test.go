package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
	"github.com/udisondev/balatrogo/internal/state"
)

// fixedJoker returns the same effects on every call.
type fixedJoker struct {
	joker.Base
	hand  effect.Effect
	card  effect.Effect
	round effect.Effect
}

func (f fixedJoker) OnHandPlayed(*joker.Context, *card.Hand) effect.Effect { return f.hand }
func (f fixedJoker) OnCardScored(*joker.Context, card.Card) effect.Effect  { return f.card }
func (f fixedJoker) OnRoundEnd(*joker.Context) effect.Effect               { return f.round }

func onHand(id string, e effect.Effect) joker.Joker {
	return fixedJoker{Base: joker.NewBase(joker.ID(id), id, "", joker.Common, 4), hand: e}
}

func onCard(id string, e effect.Effect) joker.Joker {
	return fixedJoker{Base: joker.NewBase(joker.ID(id), id, "", joker.Common, 4), card: e}
}

// gameplayJoker takes the specialized path.
type gameplayJoker struct {
	joker.Base
	allow     bool
	priority  int
	result    joker.ProcessResult
	processed *int
}

func (g gameplayJoker) CanTrigger(joker.Stage, *joker.ProcessContext) bool { return g.allow }
func (g gameplayJoker) Priority(joker.Stage) int                         { return g.priority }

func (g gameplayJoker) Process(joker.Stage, *joker.ProcessContext) joker.ProcessResult {
	if g.processed != nil {
		*g.processed++
	}
	return g.result
}

func newGameplay(id string, priority int, chips int) gameplayJoker {
	return gameplayJoker{
		Base:     joker.NewBase(joker.ID(id), id, "", joker.Uncommon, 5),
		allow:    true,
		priority: priority,
		result:   joker.ProcessResult{ChipsAdded: chips},
	}
}

// dualJoker implements both shapes. Process reports the additive part of the
// callback effect, so both paths describe the same joker.
type dualJoker struct {
	joker.Base
	e effect.Effect
}

func (d dualJoker) OnHandPlayed(*joker.Context, *card.Hand) effect.Effect { return d.e }
func (d dualJoker) OnCardScored(*joker.Context, card.Card) effect.Effect  { return d.e }
func (d dualJoker) CanTrigger(joker.Stage, *joker.ProcessContext) bool    { return true }
func (d dualJoker) Priority(joker.Stage) int                              { return 0 }

func (d dualJoker) Process(joker.Stage, *joker.ProcessContext) joker.ProcessResult {
	return joker.ProcessResult{
		ChipsAdded:  d.e.Chips,
		MultAdded:   float64(d.e.Mult),
		Retriggered: d.e.Retrigger > 0,
	}
}

func newDual(id string, e effect.Effect) dualJoker {
	return dualJoker{Base: joker.NewBase(joker.ID(id), id, "", joker.Uncommon, 5), e: e}
}

// unifiedOnly hides every capability but the unified callbacks.
type unifiedOnly struct{ joker.Joker }

// modifierJoker only carries passive modifiers.
type modifierJoker struct {
	joker.Base
	chipMult  float64
	scoreMult float64
	handSize  int
	discards  int
}

func (m modifierJoker) ChipMult() float64     { return m.chipMult }
func (m modifierJoker) ScoreMult() float64    { return m.scoreMult }
func (m modifierJoker) HandSizeModifier() int { return m.handSize }
func (m modifierJoker) DiscardModifier() int  { return m.discards }

// recordingJoker logs lifecycle hooks.
type recordingJoker struct {
	joker.Base
	log *[]string
}

func (r recordingJoker) record(s string) { *r.log = append(*r.log, string(r.ID())+":"+s) }

func (r recordingJoker) Purchased(*joker.Context)    { r.record("purchased") }
func (r recordingJoker) Sold(*joker.Context)         { r.record("sold") }
func (r recordingJoker) Destroyed(*joker.Context)    { r.record("destroyed") }
func (r recordingJoker) RoundStarted(*joker.Context) { r.record("round_started") }
func (r recordingJoker) RoundEnded(*joker.Context)   { r.record("round_ended") }

func (r recordingJoker) PeerAdded(_ *joker.Context, id joker.ID) {
	r.record("peer_added:" + string(id))
}

func (r recordingJoker) PeerRemoved(_ *joker.Context, id joker.ID) {
	r.record("peer_removed:" + string(id))
}

func newContext() *joker.Context {
	return &joker.Context{
		Stage:  joker.StageBlindSmall,
		States: state.NewStore(),
	}
}

func mustProcessor(t testing.TB, opts Options) *Processor {
	t.Helper()
	p, err := NewProcessor(opts)
	require.NoError(t, err)
	return p
}

func permutations(jokers []joker.Joker) [][]joker.Joker {
	if len(jokers) <= 1 {
		return [][]joker.Joker{append([]joker.Joker(nil), jokers...)}
	}
	var out [][]joker.Joker
	for i := range jokers {
		rest := make([]joker.Joker, 0, len(jokers)-1)
		rest = append(rest, jokers[:i]...)
		rest = append(rest, jokers[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]joker.Joker{jokers[i]}, p...))
		}
	}
	return out
}
