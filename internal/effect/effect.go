package effect

import (
	"fmt"
	"strings"

	"github.com/udisondev/balatrogo/internal/card"
)

// Effect is one modifier's contribution to one trigger.
//
// The zero value is neutral. MultMultiplier == 0 means "no multiplier" and is
// merged as 1.0: a genuine x0 cannot be expressed. Scoring code relies on
// this, so zero-valued Effects returned from default callbacks stay neutral.
type Effect struct {
	Chips          int
	Mult           int
	Money          int
	MultMultiplier float64
	Retrigger      uint

	HandSizeMod       int
	DiscardMod        int
	SellValueIncrease int

	DestroySelf    bool
	DestroyOthers  []string
	TransformCards []card.Card

	Message string
}

// None is the neutral effect.
var None = Effect{}

// Chips returns an effect adding n chips.
func Chips(n int) Effect { return Effect{Chips: n} }

// Mult returns an effect adding n mult.
func Mult(n int) Effect { return Effect{Mult: n} }

// Money returns an effect granting n money.
func Money(n int) Effect { return Effect{Money: n} }

// XMult returns an effect multiplying mult by x.
func XMult(x float64) Effect { return Effect{MultMultiplier: x} }

// Multiplier returns the effective multiplier, mapping the absent value 0.0
// to the neutral 1.0.
func (e Effect) Multiplier() float64 {
	if e.MultMultiplier == 0 {
		return 1.0
	}
	return e.MultMultiplier
}

// HasMultiplier reports whether the effect carries a multiplier at all.
func (e Effect) HasMultiplier() bool {
	return e.MultMultiplier != 0
}

// IsEmpty reports whether the effect changes nothing.
func (e Effect) IsEmpty() bool {
	return e.Chips == 0 &&
		e.Mult == 0 &&
		e.Money == 0 &&
		e.MultMultiplier == 0 &&
		e.Retrigger == 0 &&
		e.HandSizeMod == 0 &&
		e.DiscardMod == 0 &&
		e.SellValueIncrease == 0 &&
		!e.DestroySelf &&
		len(e.DestroyOthers) == 0 &&
		len(e.TransformCards) == 0 &&
		e.Message == ""
}

// WithRetrigger returns a copy of e that repeats n additional times.
func (e Effect) WithRetrigger(n uint) Effect {
	e.Retrigger = n
	return e
}

// WithMessage returns a copy of e carrying msg.
func (e Effect) WithMessage(msg string) Effect {
	e.Message = msg
	return e
}

// Describe renders the numeric part of e for diagnostics, e.g.
// "+30 Chips, +4 Mult, X1.5 Mult".
func (e Effect) Describe() string {
	parts := make([]string, 0, 5)
	if e.Chips != 0 {
		parts = append(parts, fmt.Sprintf("%+d Chips", e.Chips))
	}
	if e.Mult != 0 {
		parts = append(parts, fmt.Sprintf("%+d Mult", e.Mult))
	}
	if e.Money != 0 {
		parts = append(parts, fmt.Sprintf("%+d$", e.Money))
	}
	if e.HasMultiplier() {
		parts = append(parts, fmt.Sprintf("X%g Mult", e.MultMultiplier))
	}
	if e.Retrigger > 0 {
		parts = append(parts, fmt.Sprintf("retrigger x%d", e.Retrigger))
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}
