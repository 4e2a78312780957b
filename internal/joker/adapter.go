package joker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/state"
)

// LegacyProfile tells the Adapter which decomposed capabilities a unified
// joker really has. Zero values are neutral.
type LegacyProfile struct {
	// Gameplay routes Process through the wrapped callbacks.
	Gameplay bool
	Priority int
	// Stages restricts CanTrigger. Empty means every stage.
	Stages []Stage

	ChipMult         float64
	ScoreMult        float64
	HandSizeModifier int
	DiscardModifier  int

	// Stateful exposes the store entry keyed by the joker ID.
	Stateful bool
}

func (p LegacyProfile) hasModifiers() bool {
	return (p.ChipMult != 0 && p.ChipMult != 1) ||
		(p.ScoreMult != 0 && p.ScoreMult != 1) ||
		p.HandSizeModifier != 0 ||
		p.DiscardModifier != 0
}

// legacyProfiles maps joker ID → profile.
// Populated by init() functions via RegisterLegacyProfile.
var legacyProfiles = map[ID]LegacyProfile{}

// RegisterLegacyProfile records the capabilities of a unified joker type.
// Call it from init(); the table is read without locking afterwards.
func RegisterLegacyProfile(id ID, p LegacyProfile) {
	legacyProfiles[id] = p
}

// LookupLegacyProfile returns the registered profile for id.
func LookupLegacyProfile(id ID) (LegacyProfile, bool) {
	p, ok := legacyProfiles[id]
	return p, ok
}

// Adapter exposes a unified Joker through the decomposed capability
// interfaces. Jokers missing from the profile table get neutral
// capabilities. Lifecycle, Stateful and EventListener implementations of the
// wrapped joker are forwarded and take precedence over the profile. The
// Adapter never fails.
type Adapter struct {
	inner   Joker
	profile LegacyProfile
	known   bool
	// native holds the capabilities forwarded to inner.
	native Capabilities
}

var (
	_ Joker     = (*Adapter)(nil)
	_ Gameplay  = (*Adapter)(nil)
	_ Modifiers = (*Adapter)(nil)
	_ Stateful  = (*Adapter)(nil)
	_ Lifecycle = (*Adapter)(nil)
	_ Shaped    = (*Adapter)(nil)

	_ EffectProcessor = (*Adapter)(nil)
	_ EventListener   = (*Adapter)(nil)
)

// forwarded lists the capabilities the Adapter delegates to the wrapped joker.
const forwarded = CapLifecycle | CapState | CapEvents

// NewAdapter wraps j. Wrapping an Adapter returns it unchanged.
func NewAdapter(j Joker) *Adapter {
	if a, ok := j.(*Adapter); ok {
		return a
	}

	p, ok := LookupLegacyProfile(j.ID())
	if !ok {
		slog.Debug("legacy joker has no capability profile, using neutral defaults",
			"joker", j.ID(),
			"type", fmt.Sprintf("%T", j))
	}
	return &Adapter{inner: j, profile: p, known: ok, native: Probe(j) & forwarded}
}

// Unwrap returns the wrapped joker.
func (a *Adapter) Unwrap() Joker { return a.inner }

// Recognized reports whether the wrapped joker has a registered profile.
func (a *Adapter) Recognized() bool { return a.known }

// CapabilityKey implements Shaped. All adapters around the same catalog ID
// share one profile; the forwarded set tells apart inner types that differ.
func (a *Adapter) CapabilityKey() string {
	return fmt.Sprintf("legacy:%s:%d", a.inner.ID(), a.native)
}

// Capabilities implements Shaped.
func (a *Adapter) Capabilities() Capabilities {
	c := a.native
	if a.profile.Gameplay {
		c |= CapGameplay
	}
	if a.profile.hasModifiers() {
		c |= CapModifiers
	}
	if a.profile.Stateful {
		c |= CapState
	}
	return c
}

// Identity.

func (a *Adapter) ID() ID              { return a.inner.ID() }
func (a *Adapter) Name() string        { return a.inner.Name() }
func (a *Adapter) Description() string { return a.inner.Description() }
func (a *Adapter) Rarity() Rarity      { return a.inner.Rarity() }
func (a *Adapter) Cost() int           { return a.inner.Cost() }
func (a *Adapter) Unique() bool        { return a.inner.Unique() }

// Unified callbacks pass straight through.

func (a *Adapter) OnHandPlayed(ctx *Context, hand *card.Hand) effect.Effect {
	return a.inner.OnHandPlayed(ctx, hand)
}

func (a *Adapter) OnCardScored(ctx *Context, c card.Card) effect.Effect {
	return a.inner.OnCardScored(ctx, c)
}

func (a *Adapter) OnBlindStart(ctx *Context) effect.Effect {
	return a.inner.OnBlindStart(ctx)
}

func (a *Adapter) OnShopOpen(ctx *Context) effect.Effect {
	return a.inner.OnShopOpen(ctx)
}

func (a *Adapter) OnDiscard(ctx *Context, cards []card.Card) effect.Effect {
	return a.inner.OnDiscard(ctx, cards)
}

func (a *Adapter) OnRoundEnd(ctx *Context) effect.Effect {
	return a.inner.OnRoundEnd(ctx)
}

// Gameplay.

func (a *Adapter) CanTrigger(stage Stage, _ *ProcessContext) bool {
	if !a.profile.Gameplay {
		return false
	}
	return len(a.profile.Stages) == 0 || slices.Contains(a.profile.Stages, stage)
}

// ProcessEffect implements EffectProcessor with the wrapped callback's full
// effect: card-scored when pc.Card is set, hand-played otherwise.
func (a *Adapter) ProcessEffect(_ Stage, pc *ProcessContext) effect.Effect {
	if !a.profile.Gameplay || pc == nil {
		return effect.None
	}
	if pc.Card != nil {
		return a.inner.OnCardScored(pc.Game, *pc.Card)
	}
	return a.inner.OnHandPlayed(pc.Game, pc.Hand)
}

// Process reports the additive part of ProcessEffect.
func (a *Adapter) Process(stage Stage, pc *ProcessContext) ProcessResult {
	e := a.ProcessEffect(stage, pc)
	return ProcessResult{
		ChipsAdded:  e.Chips,
		MultAdded:   float64(e.Mult),
		Retriggered: e.Retrigger > 0,
	}
}

func (a *Adapter) Priority(Stage) int { return a.profile.Priority }

// Modifiers.

func (a *Adapter) ChipMult() float64 {
	if a.profile.ChipMult == 0 {
		return 1.0
	}
	return a.profile.ChipMult
}

func (a *Adapter) ScoreMult() float64 {
	if a.profile.ScoreMult == 0 {
		return 1.0
	}
	return a.profile.ScoreMult
}

func (a *Adapter) HandSizeModifier() int { return a.profile.HandSizeModifier }
func (a *Adapter) DiscardModifier() int  { return a.profile.DiscardModifier }

// Stateful.

func (a *Adapter) HasState() bool {
	if s, ok := a.inner.(Stateful); ok {
		return s.HasState()
	}
	return a.profile.Stateful
}

func (a *Adapter) SerializeState(store *state.Store) (json.RawMessage, error) {
	if s, ok := a.inner.(Stateful); ok {
		return s.SerializeState(store)
	}
	if !a.profile.Stateful {
		return nil, nil
	}
	st, _, err := store.Lookup(a.ID().StateKey())
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding state of %s: %w", a.ID(), err)
	}
	return raw, nil
}

func (a *Adapter) DeserializeState(store *state.Store, raw json.RawMessage) error {
	if s, ok := a.inner.(Stateful); ok {
		return s.DeserializeState(store, raw)
	}
	if !a.profile.Stateful || len(raw) == 0 {
		return nil
	}
	var st state.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("decoding state of %s: %w", a.ID(), err)
	}
	return store.UpdateState(a.ID().StateKey(), func(cur *state.State) {
		*cur = st
	})
}

func (a *Adapter) ResetState(store *state.Store) error {
	if s, ok := a.inner.(Stateful); ok {
		return s.ResetState(store)
	}
	if !a.profile.Stateful {
		return nil
	}
	return store.Reset(a.ID().StateKey())
}

// OnEvent implements EventListener for wrapped scaling jokers.
func (a *Adapter) OnEvent(ctx *Context, ev Event) error {
	if l, ok := a.inner.(EventListener); ok {
		return l.OnEvent(ctx, ev)
	}
	return nil
}

// Lifecycle hooks reach the wrapped joker only if it implements Lifecycle.

func (a *Adapter) lifecycle() Lifecycle {
	if l, ok := a.inner.(Lifecycle); ok {
		return l
	}
	return NopLifecycle{}
}

func (a *Adapter) Purchased(ctx *Context)             { a.lifecycle().Purchased(ctx) }
func (a *Adapter) Sold(ctx *Context)                  { a.lifecycle().Sold(ctx) }
func (a *Adapter) Destroyed(ctx *Context)             { a.lifecycle().Destroyed(ctx) }
func (a *Adapter) RoundStarted(ctx *Context)          { a.lifecycle().RoundStarted(ctx) }
func (a *Adapter) RoundEnded(ctx *Context)            { a.lifecycle().RoundEnded(ctx) }
func (a *Adapter) PeerAdded(ctx *Context, other ID)   { a.lifecycle().PeerAdded(ctx, other) }
func (a *Adapter) PeerRemoved(ctx *Context, other ID) { a.lifecycle().PeerRemoved(ctx, other) }
