package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one line of an order, with the product details captured at
// purchase time.
type OrderItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID      primitive.ObjectID `bson:"product" json:"product"`
	ProductName    string             `bson:"productName" json:"productName"`
	ProductImage   string             `bson:"productImage" json:"productImage"`
	ProductPrice   float64            `bson:"productPrice" json:"productPrice"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	SelectedSize   string             `bson:"selectedSize,omitempty" json:"selectedSize,omitempty"`
	SelectedColour string             `bson:"selectedColour,omitempty" json:"selectedColour,omitempty"`
}
