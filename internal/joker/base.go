package joker

import (
	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
)

// Base carries the identity of a joker and neutral callbacks.
// Concrete jokers embed it and override the callbacks they react to.
type Base struct {
	id          ID
	name        string
	description string
	rarity      Rarity
	cost        int
	unique      bool
}

// NewBase creates the identity part of a joker.
func NewBase(id ID, name, description string, rarity Rarity, cost int) Base {
	return Base{
		id:          id,
		name:        name,
		description: description,
		rarity:      rarity,
		cost:        cost,
	}
}

// AsUnique marks the joker as allowed only once in a collection.
func (b Base) AsUnique() Base {
	b.unique = true
	return b
}

func (b Base) ID() ID              { return b.id }
func (b Base) Name() string        { return b.name }
func (b Base) Description() string { return b.description }
func (b Base) Rarity() Rarity      { return b.rarity }
func (b Base) Cost() int           { return b.cost }
func (b Base) Unique() bool        { return b.unique }

func (Base) OnHandPlayed(*Context, *card.Hand) effect.Effect  { return effect.None }
func (Base) OnCardScored(*Context, card.Card) effect.Effect   { return effect.None }
func (Base) OnBlindStart(*Context) effect.Effect              { return effect.None }
func (Base) OnShopOpen(*Context) effect.Effect                { return effect.None }
func (Base) OnDiscard(*Context, []card.Card) effect.Effect    { return effect.None }
func (Base) OnRoundEnd(*Context) effect.Effect                { return effect.None }
