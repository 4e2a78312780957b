package joker

import (
	"fmt"
	"strings"

	"github.com/udisondev/balatrogo/internal/card"
)

// EventKind labels a game event.
type EventKind uint8

const (
	EventHandPlayed EventKind = iota + 1
	EventCardDiscarded
	EventMoneyGained
	EventBlindCompleted
	EventShopReroll
	EventJokerSold
	EventCardDestroyed
	EventConsumableUsed
	EventRoundEnd
	EventAnteEnd
	EventMoneySpent
	EventShopEntered
	EventJokerPurchased
)

var eventKindNames = map[EventKind]string{
	EventHandPlayed:     "hand_played",
	EventCardDiscarded:  "card_discarded",
	EventMoneyGained:    "money_gained",
	EventBlindCompleted: "blind_completed",
	EventShopReroll:     "shop_reroll",
	EventJokerSold:      "joker_sold",
	EventCardDestroyed:  "card_destroyed",
	EventConsumableUsed: "consumable_used",
	EventRoundEnd:       "round_end",
	EventAnteEnd:        "ante_end",
	EventMoneySpent:     "money_spent",
	EventShopEntered:    "shop_entered",
	EventJokerPurchased: "joker_purchased",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event is a game event. Rank is only meaningful for EventHandPlayed.
type Event struct {
	Kind EventKind
	Rank card.HandRank
}

// HandPlayed returns the event for a played hand of the given rank.
func HandPlayed(rank card.HandRank) Event {
	return Event{Kind: EventHandPlayed, Rank: rank}
}

// On returns a rank-less event of the given kind.
func On(kind EventKind) Event {
	return Event{Kind: kind}
}

func (e Event) String() string {
	if e.Kind == EventHandPlayed {
		return e.Rank.String() + " played"
	}
	return strings.ReplaceAll(e.Kind.String(), "_", " ")
}

// Condition selects events by kind and, for hands, by rank.
type Condition struct {
	Kind EventKind
	Rank card.HandRank
}

// Matches reports whether ev satisfies the condition.
func (c Condition) Matches(ev Event) bool {
	if c.Kind != ev.Kind {
		return false
	}
	if c.Kind == EventHandPlayed {
		return c.Rank == ev.Rank
	}
	return true
}

func (c Condition) String() string {
	return Event(c).String()
}

var triggerKinds = map[EventKind]bool{
	EventHandPlayed:     true,
	EventCardDiscarded:  true,
	EventMoneyGained:    true,
	EventBlindCompleted: true,
	EventShopReroll:     true,
	EventJokerSold:      true,
	EventCardDestroyed:  true,
	EventConsumableUsed: true,
}

var resetKinds = map[EventKind]bool{
	EventHandPlayed:     true,
	EventRoundEnd:       true,
	EventAnteEnd:        true,
	EventMoneySpent:     true,
	EventShopEntered:    true,
	EventJokerPurchased: true,
}

var handRanksByName = map[string]card.HandRank{
	"high_card":       card.HighCard,
	"pair":            card.OnePair,
	"two_pair":        card.TwoPair,
	"three_of_a_kind": card.ThreeOfAKind,
	"straight":        card.Straight,
	"flush":           card.Flush,
	"full_house":      card.FullHouse,
	"four_of_a_kind":  card.FourOfAKind,
	"straight_flush":  card.StraightFlush,
	"royal_flush":     card.RoyalFlush,
	"five_of_a_kind":  card.FiveOfAKind,
	"flush_house":     card.FlushHouse,
	"flush_five":      card.FlushFive,
}

// ParseCondition parses "card_discarded" or "hand_played:two_pair".
func ParseCondition(s string) (Condition, error) {
	name, rank, hasRank := strings.Cut(strings.TrimSpace(s), ":")

	var kind EventKind
	for k, n := range eventKindNames {
		if n == name {
			kind = k
			break
		}
	}
	if kind == 0 {
		return Condition{}, fmt.Errorf("unknown event %q", name)
	}

	if kind != EventHandPlayed {
		if hasRank {
			return Condition{}, fmt.Errorf("event %q takes no hand rank", name)
		}
		return Condition{Kind: kind}, nil
	}

	if !hasRank {
		return Condition{}, fmt.Errorf("event %q requires a hand rank", name)
	}
	r, ok := handRanksByName[rank]
	if !ok {
		return Condition{}, fmt.Errorf("unknown hand rank %q", rank)
	}
	return Condition{Kind: kind, Rank: r}, nil
}
