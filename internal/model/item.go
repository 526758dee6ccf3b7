package model

import "gopkg.in/guregu/null.v3"

// Item is a stored item row. Values are read-only snapshots; writes go
// through ItemInput.
type Item struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
	IsOffer null.Bool `json:"is_offer"`
}

// ItemInput holds the mutable fields of an item for insert and update.
// An invalid IsOffer is stored as NULL, not false.
type ItemInput struct {
	Name    string
	Price   float64
	IsOffer null.Bool
}

// NewItemInput returns an input with name and price set and no offer flag.
func NewItemInput(name string, price float64) *ItemInput {
	return &ItemInput{Name: name, Price: price}
}

// WithOffer sets the offer flag.
func (in *ItemInput) WithOffer(offer bool) *ItemInput {
	in.IsOffer = null.BoolFrom(offer)
	return in
}

// Apply returns a copy of item with the input's fields written over it.
func (in ItemInput) Apply(item Item) Item {
	item.Name = in.Name
	item.Price = in.Price
	item.IsOffer = in.IsOffer
	return item
}
