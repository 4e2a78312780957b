package joker

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/state"
)

// ScalingEffect selects which effect slot a scaling joker fills.
type ScalingEffect uint8

const (
	ScaleChips ScalingEffect = iota + 1
	ScaleMult
	ScaleMultMultiplier
	ScaleMoney
)

func (e ScalingEffect) String() string {
	switch e {
	case ScaleChips:
		return "chips"
	case ScaleMult:
		return "mult"
	case ScaleMultMultiplier:
		return "mult_multiplier"
	case ScaleMoney:
		return "money"
	default:
		return fmt.Sprintf("scaling_effect(%d)", uint8(e))
	}
}

// ParseScalingEffect parses the names produced by ScalingEffect.String.
func ParseScalingEffect(s string) (ScalingEffect, error) {
	for _, e := range []ScalingEffect{ScaleChips, ScaleMult, ScaleMultMultiplier, ScaleMoney} {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown scaling effect %q", s)
}

// ScalingConfig describes a data-driven scaling joker.
type ScalingConfig struct {
	Trigger   Condition
	Effect    ScalingEffect
	BaseValue float64
	Increment float64

	// Reset, if set, restores BaseValue when matched. Nil never resets.
	Reset *Condition
	// Max, if set, clamps the value on every increment.
	Max *float64

	// PerInstance keys state by instance instead of catalog ID, so owned
	// copies accumulate independently.
	PerInstance bool
}

// Scaling is a joker whose effect grows from an accumulated value kept in the
// state store. It never holds the value itself.
//
// State machine: idle → matching trigger event → value += increment (clamped)
// → OnHandPlayed emits the value → matching reset event restores BaseValue.
type Scaling struct {
	Base
	NopLifecycle

	cfg      ScalingConfig
	instance uuid.UUID
}

var (
	_ Joker         = (*Scaling)(nil)
	_ Lifecycle     = (*Scaling)(nil)
	_ Stateful      = (*Scaling)(nil)
	_ EventListener = (*Scaling)(nil)
)

// NewScaling validates cfg and creates a scaling joker.
func NewScaling(b Base, cfg ScalingConfig) (*Scaling, error) {
	if !triggerKinds[cfg.Trigger.Kind] {
		return nil, fmt.Errorf("joker %s: %s cannot trigger scaling", b.ID(), cfg.Trigger.Kind)
	}
	if cfg.Reset != nil && !resetKinds[cfg.Reset.Kind] {
		return nil, fmt.Errorf("joker %s: %s cannot reset scaling", b.ID(), cfg.Reset.Kind)
	}
	switch cfg.Effect {
	case ScaleChips, ScaleMult, ScaleMultMultiplier, ScaleMoney:
	default:
		return nil, fmt.Errorf("joker %s: %s", b.ID(), cfg.Effect)
	}
	if cfg.Max != nil && *cfg.Max < cfg.BaseValue {
		return nil, fmt.Errorf("joker %s: max %g below base value %g", b.ID(), *cfg.Max, cfg.BaseValue)
	}

	return &Scaling{
		Base:     b,
		cfg:      cfg,
		instance: uuid.New(),
	}, nil
}

// Config returns the scaling configuration.
func (s *Scaling) Config() ScalingConfig {
	return s.cfg
}

// InstanceID identifies this owned copy.
func (s *Scaling) InstanceID() uuid.UUID {
	return s.instance
}

// StateKey is where the accumulated value lives in the store.
func (s *Scaling) StateKey() state.Key {
	if s.cfg.PerInstance {
		return state.Key(string(s.ID()) + "#" + s.instance.String())
	}
	return s.ID().StateKey()
}

// Matches reports whether ev is this joker's trigger.
func (s *Scaling) Matches(ev Event) bool {
	return s.cfg.Trigger.Matches(ev)
}

// ResetsOn reports whether ev is this joker's reset condition.
func (s *Scaling) ResetsOn(ev Event) bool {
	return s.cfg.Reset != nil && s.cfg.Reset.Matches(ev)
}

// Value returns the current value, BaseValue if no state was stored yet.
func (s *Scaling) Value(store *state.Store) (float64, error) {
	st, ok, err := store.Lookup(s.StateKey())
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.cfg.BaseValue, nil
	}
	return st.AccumulatedValue, nil
}

// HandleEvent applies the reset and then the trigger for ev. Reset goes
// first so one event cannot trigger and immediately wipe the increment.
func (s *Scaling) HandleEvent(store *state.Store, ev Event) error {
	key := s.StateKey()

	if s.ResetsOn(ev) {
		if err := store.SetAccumulatedValue(key, s.cfg.BaseValue); err != nil {
			return fmt.Errorf("resetting %s: %w", s.ID(), err)
		}
	}

	if !s.Matches(ev) {
		return nil
	}

	inc := s.cfg.Increment
	maxValue := s.cfg.Max
	seed := state.State{AccumulatedValue: s.cfg.BaseValue}
	err := store.UpdateStateWithDefault(key, seed, func(st *state.State) {
		v := st.AccumulatedValue + inc
		if maxValue != nil && v > *maxValue {
			v = *maxValue
		}
		st.AccumulatedValue = v
	})
	if err != nil {
		return fmt.Errorf("scaling %s on %s: %w", s.ID(), ev, err)
	}
	return nil
}

// CurrentEffect builds the effect for the current value.
func (s *Scaling) CurrentEffect(store *state.Store) (effect.Effect, error) {
	v, err := s.Value(store)
	if err != nil {
		return effect.None, err
	}

	switch s.cfg.Effect {
	case ScaleChips:
		return effect.Chips(int(v)), nil
	case ScaleMult:
		return effect.Mult(int(v)), nil
	case ScaleMultMultiplier:
		return effect.XMult(v), nil
	case ScaleMoney:
		return effect.Money(int(v)), nil
	}
	return effect.None, nil
}

// DynamicDescription appends the current value to the description.
func (s *Scaling) DynamicDescription(store *state.Store) string {
	v, err := s.Value(store)
	if err != nil {
		return s.Description()
	}

	var current string
	switch s.cfg.Effect {
	case ScaleChips:
		current = fmt.Sprintf("Currently: +%d Chips", int(v))
	case ScaleMult:
		current = fmt.Sprintf("Currently: +%d Mult", int(v))
	case ScaleMultMultiplier:
		current = fmt.Sprintf("Currently: X%.1f Mult", v)
	case ScaleMoney:
		current = fmt.Sprintf("Currently: +$%d", int(v))
	}
	return s.Description() + "\n" + current
}

// OnHandPlayed emits the accumulated value. The HandPlayed event itself is
// delivered separately through OnEvent.
func (s *Scaling) OnHandPlayed(ctx *Context, _ *card.Hand) effect.Effect {
	e, err := s.CurrentEffect(ctx.States)
	if err != nil {
		slog.Error("scaling joker state unavailable", "joker", s.ID(), "error", err)
		return effect.None
	}
	return e
}

// OnEvent implements EventListener.
func (s *Scaling) OnEvent(ctx *Context, ev Event) error {
	return s.HandleEvent(ctx.States, ev)
}

// Purchased seeds the store with the base value.
func (s *Scaling) Purchased(ctx *Context) {
	if err := s.ResetState(ctx.States); err != nil {
		slog.Error("seeding scaling joker", "joker", s.ID(), "error", err)
	}
}

func (s *Scaling) HasState() bool { return true }

// SerializeState encodes the joker's store entry.
func (s *Scaling) SerializeState(store *state.Store) (json.RawMessage, error) {
	st, ok, err := store.Lookup(s.StateKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		st = state.State{AccumulatedValue: s.cfg.BaseValue}
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding state of %s: %w", s.ID(), err)
	}
	return raw, nil
}

// DeserializeState replaces the joker's store entry.
func (s *Scaling) DeserializeState(store *state.Store, raw json.RawMessage) error {
	var st state.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("decoding state of %s: %w", s.ID(), err)
	}
	return store.UpdateState(s.StateKey(), func(cur *state.State) {
		*cur = st
	})
}

// ResetState restores the base value.
func (s *Scaling) ResetState(store *state.Store) error {
	base := s.cfg.BaseValue
	return store.UpdateState(s.StateKey(), func(st *state.State) {
		st.AccumulatedValue = base
	})
}
