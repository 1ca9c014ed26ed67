package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Admin deletion only flips MarkedForDeletion; the
// nightly sweep removes the document once no products reference it.
type Category struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Colour            string             `bson:"colour" json:"colour"`
	Image             string             `bson:"image" json:"image"`
	MarkedForDeletion bool               `bson:"markedForDeletion" json:"markedForDeletion"`
}

const DefaultCategoryColour = "#000000"
