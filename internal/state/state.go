package state

import (
	"encoding/json"
	"maps"
)

// Key addresses one modifier's state. Keys are catalog identifiers, so two
// owned copies of the same joker share one entry unless the joker derives a
// per-instance key itself.
type Key string

// State is the mutable record kept for one modifier.
type State struct {
	AccumulatedValue  float64                    `json:"accumulated_value"`
	TriggersRemaining *int                       `json:"triggers_remaining"`
	Custom            map[string]json.RawMessage `json:"custom"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{AccumulatedValue: s.AccumulatedValue}
	if s.TriggersRemaining != nil {
		n := *s.TriggersRemaining
		out.TriggersRemaining = &n
	}
	if s.Custom != nil {
		out.Custom = make(map[string]json.RawMessage, len(s.Custom))
		for k, v := range s.Custom {
			out.Custom[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Equal reports whether two states hold the same data.
func (s State) Equal(o State) bool {
	if s.AccumulatedValue != o.AccumulatedValue {
		return false
	}
	if (s.TriggersRemaining == nil) != (o.TriggersRemaining == nil) {
		return false
	}
	if s.TriggersRemaining != nil && *s.TriggersRemaining != *o.TriggersRemaining {
		return false
	}
	return maps.EqualFunc(s.Custom, o.Custom, func(a, b json.RawMessage) bool {
		return string(a) == string(b)
	})
}

// Snapshot is the persisted layout: catalog identifier → state.
type Snapshot map[Key]State

// MarshalJSON keeps nil Custom maps as {} so snapshots round-trip through
// storage backends that reject JSON null in object columns.
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	p := plain(s)
	if p.Custom == nil {
		p.Custom = map[string]json.RawMessage{}
	}
	return json.Marshal(p)
}
