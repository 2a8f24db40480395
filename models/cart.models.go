package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents one line in the cart
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart represents the shopping cart. UserID is optional: without an owner
// the store holds a single cart shared by every client, and all cart
// operations target the first cart found.
type Cart struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Items  []CartItem          `bson:"items" json:"items"`
}

// PopulatedItem is a cart line with its product reference resolved into the
// full product record.
type PopulatedItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// PopulatedCart is the cart as served by the view endpoint. Items whose
// product no longer exists are dropped during population and never appear
// here.
type PopulatedCart struct {
	ID     primitive.ObjectID  `json:"id,omitempty"`
	UserID *primitive.ObjectID `json:"user,omitempty"`
	Items  []PopulatedItem     `json:"items"`
}

// TotalPrice sums quantity times unit price over all items.
func (c PopulatedCart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Product.Price
	}
	return total
}
