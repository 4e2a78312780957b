package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/state"
)

// Fixtures holds hands shared by tests.
var Fixtures = struct {
	PairOfKings *card.Hand
	TwoPair     *card.Hand
}{
	PairOfKings: card.NewHand(card.OnePair,
		card.New(card.King, card.Spade), card.New(card.King, card.Heart)),
	TwoPair: card.NewHand(card.TwoPair,
		card.New(card.Five, card.Club), card.New(card.Five, card.Diamond),
		card.New(card.Nine, card.Heart), card.New(card.Nine, card.Spade)),
}

// Snapshot builds a snapshot of n entries mixing every State field.
func Snapshot(n int) state.Snapshot {
	snap := make(state.Snapshot, n)
	for i := range n {
		st := state.State{AccumulatedValue: float64(i)}
		switch i % 3 {
		case 1:
			left := i
			st.TriggersRemaining = &left
		case 2:
			st.Custom = map[string]json.RawMessage{"hands": json.RawMessage(fmt.Sprint(i))}
		}
		snap[state.Key(fmt.Sprintf("joker_%03d", i))] = st
	}
	return snap
}
