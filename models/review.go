package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a product review left by a user.
type Review struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	UserName string             `bson:"userName" json:"userName"`
	Rating   float64            `bson:"rating" json:"rating"`
	Comment  string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
}
