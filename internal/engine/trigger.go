package engine

import (
	"fmt"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
)

// TriggerKind names the unified callback a trigger invokes.
type TriggerKind uint8

const (
	TriggerHandPlayed TriggerKind = iota + 1
	TriggerCardScored
	TriggerBlindStart
	TriggerShopOpen
	TriggerDiscard
	TriggerRoundEnd
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerHandPlayed:
		return "hand_played"
	case TriggerCardScored:
		return "card_scored"
	case TriggerBlindStart:
		return "blind_start"
	case TriggerShopOpen:
		return "shop_open"
	case TriggerDiscard:
		return "discard"
	case TriggerRoundEnd:
		return "round_end"
	default:
		return fmt.Sprintf("trigger(%d)", uint8(k))
	}
}

// Trigger is one evaluation request. Hand is set for TriggerHandPlayed and
// TriggerCardScored, Card for TriggerCardScored, Cards for TriggerDiscard.
type Trigger struct {
	Kind  TriggerKind
	Hand  *card.Hand
	Card  card.Card
	Cards []card.Card
}

// HandPlayed returns the trigger for playing hand.
func HandPlayed(hand *card.Hand) Trigger {
	return Trigger{Kind: TriggerHandPlayed, Hand: hand}
}

// CardScored returns the trigger for scoring c. hand may be nil.
func CardScored(hand *card.Hand, c card.Card) Trigger {
	return Trigger{Kind: TriggerCardScored, Hand: hand, Card: c}
}

// BlindStart, ShopOpen and RoundEnd carry no payload.
func BlindStart() Trigger { return Trigger{Kind: TriggerBlindStart} }
func ShopOpen() Trigger   { return Trigger{Kind: TriggerShopOpen} }
func RoundEnd() Trigger   { return Trigger{Kind: TriggerRoundEnd} }

// Discard returns the trigger for discarding cards.
func Discard(cards []card.Card) Trigger {
	return Trigger{Kind: TriggerDiscard, Cards: cards}
}

// events returns the scaling events implied by the trigger, delivered to
// listeners before callbacks run.
func (t Trigger) events() []joker.Event {
	switch t.Kind {
	case TriggerHandPlayed:
		if t.Hand == nil {
			return nil
		}
		return []joker.Event{joker.HandPlayed(t.Hand.Rank)}
	case TriggerDiscard:
		evs := make([]joker.Event, len(t.Cards))
		for i := range evs {
			evs[i] = joker.On(joker.EventCardDiscarded)
		}
		return evs
	case TriggerShopOpen:
		return []joker.Event{joker.On(joker.EventShopEntered)}
	case TriggerRoundEnd:
		return []joker.Event{joker.On(joker.EventRoundEnd)}
	default:
		return nil
	}
}

// scoring reports whether Gameplay jokers take this trigger through Process.
func (t Trigger) scoring() bool {
	return t.Kind == TriggerHandPlayed || t.Kind == TriggerCardScored
}

// invoke calls the unified callback for the trigger.
func (t Trigger) invoke(j joker.Joker, ctx *joker.Context) effect.Effect {
	switch t.Kind {
	case TriggerHandPlayed:
		return j.OnHandPlayed(ctx, t.Hand)
	case TriggerCardScored:
		return j.OnCardScored(ctx, t.Card)
	case TriggerBlindStart:
		return j.OnBlindStart(ctx)
	case TriggerShopOpen:
		return j.OnShopOpen(ctx)
	case TriggerDiscard:
		return j.OnDiscard(ctx, t.Cards)
	case TriggerRoundEnd:
		return j.OnRoundEnd(ctx)
	default:
		return effect.None
	}
}
