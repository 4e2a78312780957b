// Package catalog holds the factories for every joker the simulator can
// instantiate, keyed by catalog ID.
package catalog

import (
	"fmt"
	"slices"

	"github.com/udisondev/balatrogo/internal/joker"
)

// Factory creates one owned copy of a joker.
type Factory func() joker.Joker

// registry maps joker ID → factory.
// Populated by init() functions in the individual joker files.
var registry = map[joker.ID]Factory{}

// Register registers a joker factory by ID.
// Called from init(); registering an ID twice panics.
func Register(id joker.ID, f Factory) {
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("catalog: joker %q registered twice", id))
	}
	registry[id] = f
}

// Create instantiates the joker registered under id.
func Create(id joker.ID) (joker.Joker, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown joker: %s", id)
	}
	return f(), nil
}

// CreateAll instantiates jokers in the given order.
func CreateAll(ids ...joker.ID) ([]joker.Joker, error) {
	jokers := make([]joker.Joker, 0, len(ids))
	for _, id := range ids {
		j, err := Create(id)
		if err != nil {
			return nil, err
		}
		jokers = append(jokers, j)
	}
	return jokers, nil
}

// IDs returns every registered ID in sorted order.
func IDs() []joker.ID {
	ids := make([]joker.ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
