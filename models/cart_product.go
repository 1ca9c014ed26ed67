package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartProduct is an item sitting in a user's cart, referenced from
// User.Cart. Deleting a user removes these documents.
type CartProduct struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID         primitive.ObjectID `bson:"product" json:"product"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	SelectedSize      string             `bson:"selectedSize,omitempty" json:"selectedSize,omitempty"`
	SelectedColour    string             `bson:"selectedColour,omitempty" json:"selectedColour,omitempty"`
	ProductName       string             `bson:"productName" json:"productName"`
	ProductImage      string             `bson:"productImage" json:"productImage"`
	ProductPrice      float64            `bson:"productPrice" json:"productPrice"`
	ReservationExpiry time.Time          `bson:"reservationExpiry,omitempty" json:"reservationExpiry,omitempty"`
	Reserved          bool               `bson:"reserved" json:"reserved"`
}
