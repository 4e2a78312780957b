package joker

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/state"
)

// ID is a stable catalog identifier. It names a joker type, not an owned
// copy: two copies of the same joker share an ID.
type ID string

// StateKey returns the default state store key for the ID.
func (id ID) StateKey() state.Key {
	return state.Key(id)
}

// Rarity of a joker.
type Rarity int8

const (
	Common Rarity = iota
	Uncommon
	Rare
	Legendary
)

func (r Rarity) String() string {
	switch r {
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Legendary:
		return "Legendary"
	default:
		return fmt.Sprintf("Rarity(%d)", int8(r))
	}
}

// Identity is implemented by every joker. Methods must be cheap and free of
// side effects.
type Identity interface {
	ID() ID
	Name() string
	Description() string
	Rarity() Rarity
	Cost() int
	Unique() bool
}

// Joker is the unified callback shape most jokers implement. Every callback
// is total: it always returns an Effect, effect.None when nothing happens.
// Callbacks must treat ctx as read-only; mutable state lives in ctx.States.
type Joker interface {
	Identity

	OnHandPlayed(ctx *Context, hand *card.Hand) effect.Effect
	OnCardScored(ctx *Context, c card.Card) effect.Effect
	OnBlindStart(ctx *Context) effect.Effect
	OnShopOpen(ctx *Context) effect.Effect
	OnDiscard(ctx *Context, cards []card.Card) effect.Effect
	OnRoundEnd(ctx *Context) effect.Effect
}

// Lifecycle hooks fired by the inventory subsystem.
// Embed NopLifecycle to implement only the hooks you need.
type Lifecycle interface {
	Purchased(ctx *Context)
	Sold(ctx *Context)
	Destroyed(ctx *Context)
	RoundStarted(ctx *Context)
	RoundEnded(ctx *Context)
	PeerAdded(ctx *Context, other ID)
	PeerRemoved(ctx *Context, other ID)
}

// Gameplay is the decomposed scoring capability. CanTrigger is a cheap
// pre-filter checked before Process. Lower Priority values are evaluated
// first when priority ordering is enabled.
type Gameplay interface {
	CanTrigger(stage Stage, pc *ProcessContext) bool
	Process(stage Stage, pc *ProcessContext) ProcessResult
	Priority(stage Stage) int
}

// EffectProcessor is an optional extension of Gameplay. When present the
// engine's fast path takes the whole effect record from ProcessEffect instead
// of the additive ProcessResult.
type EffectProcessor interface {
	ProcessEffect(stage Stage, pc *ProcessContext) effect.Effect
}

// Modifiers are passive adjustments. Embed NeutralModifiers for defaults.
type Modifiers interface {
	ChipMult() float64
	ScoreMult() float64
	HandSizeModifier() int
	DiscardModifier() int
}

// Stateful jokers expose their store-backed state for persistence.
type Stateful interface {
	HasState() bool
	SerializeState(store *state.Store) (json.RawMessage, error)
	DeserializeState(store *state.Store, raw json.RawMessage) error
	ResetState(store *state.Store) error
}

// EventListener receives game events supplied by the caller, e.g. to drive
// scaling jokers.
type EventListener interface {
	OnEvent(ctx *Context, ev Event) error
}

// NopLifecycle implements Lifecycle with no-op hooks.
type NopLifecycle struct{}

func (NopLifecycle) Purchased(*Context)       {}
func (NopLifecycle) Sold(*Context)            {}
func (NopLifecycle) Destroyed(*Context)       {}
func (NopLifecycle) RoundStarted(*Context)    {}
func (NopLifecycle) RoundEnded(*Context)      {}
func (NopLifecycle) PeerAdded(*Context, ID)   {}
func (NopLifecycle) PeerRemoved(*Context, ID) {}

// NeutralModifiers implements Modifiers with neutral values.
type NeutralModifiers struct{}

func (NeutralModifiers) ChipMult() float64     { return 1.0 }
func (NeutralModifiers) ScoreMult() float64    { return 1.0 }
func (NeutralModifiers) HandSizeModifier() int { return 0 }
func (NeutralModifiers) DiscardModifier() int  { return 0 }
