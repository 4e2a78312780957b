package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/balatrogo/internal/joker"
)

// Passive is the combined passive adjustment of the owned jokers.
type Passive struct {
	ChipMult  float64
	ScoreMult float64
	HandSize  int
	Discards  int
}

// PassiveModifiers folds the Modifiers capability of every joker:
// multipliers multiply, hand size and discard adjustments add.
func (p *Processor) PassiveModifiers(jokers []joker.Joker) Passive {
	out := Passive{ChipMult: 1.0, ScoreMult: 1.0}
	for _, j := range jokers {
		if j == nil || !p.classifier.Classify(j).Caps.Has(joker.CapModifiers) {
			continue
		}
		m, ok := j.(joker.Modifiers)
		if !ok {
			continue
		}
		out.ChipMult *= m.ChipMult()
		out.ScoreMult *= m.ScoreMult()
		out.HandSize += m.HandSizeModifier()
		out.Discards += m.DiscardModifier()
	}
	return out
}

// eachLifecycle calls fn for every joker implementing Lifecycle.
func (p *Processor) eachLifecycle(jokers []joker.Joker, fn func(joker.Lifecycle)) {
	for _, j := range jokers {
		if j == nil || !p.classifier.Classify(j).Caps.Has(joker.CapLifecycle) {
			continue
		}
		if l, ok := j.(joker.Lifecycle); ok {
			fn(l)
		}
	}
}

// StartRound fires RoundStarted on every joker.
func (p *Processor) StartRound(jokers []joker.Joker, ctx *joker.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	p.eachLifecycle(jokers, func(l joker.Lifecycle) {
		l.RoundStarted(ctx)
	})
	return ctx.States.Err()
}

// EndRound fires RoundEnded on every joker, then evaluates the round-end
// trigger, which also delivers the round-end event.
func (p *Processor) EndRound(jokers []joker.Joker, ctx *joker.Context) (Result, error) {
	if err := checkContext(ctx); err != nil {
		return Result{}, err
	}
	p.eachLifecycle(jokers, func(l joker.Lifecycle) {
		l.RoundEnded(ctx)
	})
	return p.Evaluate(jokers, ctx, RoundEnd())
}

// EndAnte delivers the ante-end event.
func (p *Processor) EndAnte(jokers []joker.Joker, ctx *joker.Context) error {
	return p.Dispatch(jokers, ctx, joker.On(joker.EventAnteEnd))
}

// Acquire adds j to the collection: j is told it was purchased, the others
// learn about their new peer, and the purchase event is delivered.
func (p *Processor) Acquire(jokers []joker.Joker, ctx *joker.Context, j joker.Joker) ([]joker.Joker, error) {
	if err := checkContext(ctx); err != nil {
		return jokers, err
	}
	if j == nil {
		return jokers, errors.New("engine: acquiring a nil joker")
	}

	p.eachLifecycle([]joker.Joker{j}, func(l joker.Lifecycle) {
		l.Purchased(ctx)
	})
	p.eachLifecycle(jokers, func(l joker.Lifecycle) {
		l.PeerAdded(ctx, j.ID())
	})

	owned := append(slices.Clip(jokers), j)
	if err := p.Dispatch(owned, ctx, joker.On(joker.EventJokerPurchased)); err != nil {
		return owned, err
	}
	return owned, nil
}

// Sell removes the joker at index i, firing Sold and PeerRemoved, then
// delivers the sold event to the remaining jokers.
func (p *Processor) Sell(jokers []joker.Joker, ctx *joker.Context, i int) ([]joker.Joker, error) {
	owned, err := p.remove(jokers, ctx, i, joker.Lifecycle.Sold)
	if err != nil {
		return jokers, err
	}
	if err := p.Dispatch(owned, ctx, joker.On(joker.EventJokerSold)); err != nil {
		return owned, err
	}
	return owned, nil
}

// Destroy removes the joker at index i, firing Destroyed and PeerRemoved.
func (p *Processor) Destroy(jokers []joker.Joker, ctx *joker.Context, i int) ([]joker.Joker, error) {
	owned, err := p.remove(jokers, ctx, i, joker.Lifecycle.Destroyed)
	if err != nil {
		return jokers, err
	}
	return owned, ctx.States.Err()
}

func (p *Processor) remove(
	jokers []joker.Joker,
	ctx *joker.Context,
	i int,
	hook func(joker.Lifecycle, *joker.Context),
) ([]joker.Joker, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(jokers) {
		return nil, fmt.Errorf("joker index %d out of range [0, %d)", i, len(jokers))
	}

	gone := jokers[i]
	p.eachLifecycle([]joker.Joker{gone}, func(l joker.Lifecycle) {
		hook(l, ctx)
	})

	owned := slices.Delete(slices.Clone(jokers), i, i+1)
	p.eachLifecycle(owned, func(l joker.Lifecycle) {
		l.PeerRemoved(ctx, gone.ID())
	})
	return owned, nil
}
