package engine

import (
	"cmp"
	"fmt"

	"github.com/udisondev/balatrogo/internal/effect"
)

// Policy selects how the effects of one evaluation reduce to an aggregate.
type Policy uint8

const (
	// PolicySum adds chips, mult and money and multiplies multipliers.
	PolicySum Policy = iota
	PolicyMaximum
	PolicyMinimum
	// PolicyFirstWins and PolicyLastWins are order-sensitive.
	PolicyFirstWins
	PolicyLastWins
)

var policyNames = [...]string{
	PolicySum:       "sum",
	PolicyMaximum:   "maximum",
	PolicyMinimum:   "minimum",
	PolicyFirstWins: "first_wins",
	PolicyLastWins:  "last_wins",
}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

// ParsePolicy parses the names produced by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if name == s {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown combination policy %q", s)
}

// reducer folds expanded contributions into one effect. It never sees
// empty effects and returns effect.None for an empty slice.
type reducer func([]effect.Effect) effect.Effect

func (p Policy) reducer() (reducer, error) {
	switch p {
	case PolicySum:
		return reduceSum, nil
	case PolicyMaximum:
		return reduceMax, nil
	case PolicyMinimum:
		return reduceMin, nil
	case PolicyFirstWins:
		return reduceFirst, nil
	case PolicyLastWins:
		return reduceLast, nil
	default:
		return nil, fmt.Errorf("unknown combination policy %s", p)
	}
}

func reduceSum(effects []effect.Effect) effect.Effect {
	if len(effects) == 0 {
		return effect.None
	}

	out := effect.Effect{MultMultiplier: 1.0}
	for _, e := range effects {
		out.Chips += e.Chips
		out.Mult += e.Mult
		out.Money += e.Money
		// Multiplier maps the absent 0.0 to 1.0.
		out.MultMultiplier *= e.Multiplier()
		out.Retrigger += e.Retrigger
		mergeExtras(&out, e, sumInt)
	}
	return out
}

func reduceMax(effects []effect.Effect) effect.Effect {
	return reduceFieldwise(effects, larger[int], larger[float64], larger[uint])
}

func reduceMin(effects []effect.Effect) effect.Effect {
	return reduceFieldwise(effects, smaller[int], smaller[float64], smaller[uint])
}

func reduceFieldwise(
	effects []effect.Effect,
	pickInt func(int, int) int,
	pickFloat func(float64, float64) float64,
	pickUint func(uint, uint) uint,
) effect.Effect {
	if len(effects) == 0 {
		return effect.None
	}

	out := effects[0]
	out.MultMultiplier = out.Multiplier()
	out.DestroyOthers = append([]string(nil), out.DestroyOthers...)
	out.TransformCards = append(out.TransformCards[:0:0], out.TransformCards...)

	for _, e := range effects[1:] {
		out.Chips = pickInt(out.Chips, e.Chips)
		out.Mult = pickInt(out.Mult, e.Mult)
		out.Money = pickInt(out.Money, e.Money)
		out.MultMultiplier = pickFloat(out.MultMultiplier, e.Multiplier())
		out.Retrigger = pickUint(out.Retrigger, e.Retrigger)
		mergeExtras(&out, e, pickInt)
	}
	return out
}

func reduceFirst(effects []effect.Effect) effect.Effect {
	if len(effects) == 0 {
		return effect.None
	}
	return effects[0]
}

func reduceLast(effects []effect.Effect) effect.Effect {
	if len(effects) == 0 {
		return effect.None
	}
	return effects[len(effects)-1]
}

func sumInt(a, b int) int { return a + b }

func larger[T cmp.Ordered](a, b T) T  { return max(a, b) }
func smaller[T cmp.Ordered](a, b T) T { return min(a, b) }

// mergeExtras combines the non-scoring fields: modifiers through pick, flags
// ORed, lists appended, the last non-empty message kept.
func mergeExtras(out *effect.Effect, e effect.Effect, pick func(int, int) int) {
	out.HandSizeMod = pick(out.HandSizeMod, e.HandSizeMod)
	out.DiscardMod = pick(out.DiscardMod, e.DiscardMod)
	out.SellValueIncrease = pick(out.SellValueIncrease, e.SellValueIncrease)
	out.DestroySelf = out.DestroySelf || e.DestroySelf
	out.DestroyOthers = append(out.DestroyOthers, e.DestroyOthers...)
	out.TransformCards = append(out.TransformCards, e.TransformCards...)
	if e.Message != "" {
		out.Message = e.Message
	}
}
