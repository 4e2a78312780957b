package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
	"github.com/udisondev/balatrogo/internal/state"
)

// storeBacked implements joker.Stateful over the entry keyed by the joker ID.
type storeBacked struct{ id joker.ID }

func (storeBacked) HasState() bool { return true }

func (s storeBacked) SerializeState(store *state.Store) (json.RawMessage, error) {
	st, _, err := store.Lookup(s.id.StateKey())
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding state of %s: %w", s.id, err)
	}
	return raw, nil
}

func (s storeBacked) DeserializeState(store *state.Store, raw json.RawMessage) error {
	var st state.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("decoding state of %s: %w", s.id, err)
	}
	return store.UpdateState(s.id.StateKey(), func(cur *state.State) {
		*cur = st
	})
}

func (s storeBacked) ResetState(store *state.Store) error {
	return store.Reset(s.id.StateKey())
}

// iceCreamHands is how many hands Ice Cream lasts.
const iceCreamHands = 20

// iceCream gives +5 chips per hand it has left and melts after the last one.
type iceCream struct {
	joker.Base
	joker.NopLifecycle
	storeBacked
}

func (j iceCream) Purchased(ctx *joker.Context) {
	if err := ctx.States.SetTriggers(j.ID().StateKey(), iceCreamHands); err != nil {
		slog.Error("seeding ice cream", "error", err)
	}
}

func (j iceCream) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	left, ok, err := ctx.States.ConsumeTrigger(j.ID().StateKey())
	if err != nil {
		slog.Error("ice cream state unavailable", "error", err)
		return effect.None
	}
	if !ok {
		return effect.None
	}

	e := effect.Chips(5 * (left + 1))
	if left == 0 {
		e.DestroySelf = true
		e.Message = "Melted!"
	}
	return e
}

const loyaltyEvery = 6

// loyaltyCard gives X4 Mult every sixth hand, counting hands in custom data.
type loyaltyCard struct {
	joker.Base
	joker.NopLifecycle
	storeBacked
}

const loyaltyHandsKey = "hands"

func (j loyaltyCard) OnEvent(ctx *joker.Context, ev joker.Event) error {
	if ev.Kind != joker.EventHandPlayed {
		return nil
	}
	key := j.ID().StateKey()
	n, _, err := state.GetCustom[int](ctx.States, key, loyaltyHandsKey)
	if err != nil {
		return err
	}
	return ctx.States.SetCustom(key, loyaltyHandsKey, n+1)
}

func (j loyaltyCard) OnHandPlayed(ctx *joker.Context, _ *card.Hand) effect.Effect {
	n, _, err := state.GetCustom[int](ctx.States, j.ID().StateKey(), loyaltyHandsKey)
	if err != nil {
		slog.Error("loyalty card state unavailable", "error", err)
		return effect.None
	}
	if n == 0 || n%loyaltyEvery != 0 {
		return effect.None
	}
	return effect.XMult(4)
}

func init() {
	Register("ice_cream", func() joker.Joker {
		return iceCream{
			Base: joker.NewBase("ice_cream", "Ice Cream",
				"+100 Chips, -5 Chips for every hand played", joker.Common, 5),
			storeBacked: storeBacked{id: "ice_cream"},
		}
	})
	Register("loyalty_card", func() joker.Joker {
		return loyaltyCard{
			Base: joker.NewBase("loyalty_card", "Loyalty Card",
				"X4 Mult every 6 hands played", joker.Uncommon, 5),
			storeBacked: storeBacked{id: "loyalty_card"},
		}
	})

	joker.RegisterLegacyProfile("ice_cream", joker.LegacyProfile{Stateful: true})
	joker.RegisterLegacyProfile("loyalty_card", joker.LegacyProfile{Stateful: true})
}
