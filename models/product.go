package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Rating and NumberOfReviews are derived from the
// referenced reviews and recomputed whenever a review is attached.
type Product struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string               `bson:"name" json:"name"`
	Description       string               `bson:"description" json:"description"`
	Price             float64              `bson:"price" json:"price"`
	Rating            float64              `bson:"rating" json:"rating"`
	Colours           []string             `bson:"colours,omitempty" json:"colours,omitempty"`
	Image             string               `bson:"image" json:"image"`
	Images            []string             `bson:"images,omitempty" json:"images,omitempty"`
	Reviews           []primitive.ObjectID `bson:"reviews,omitempty" json:"reviews,omitempty"`
	NumberOfReviews   int                  `bson:"numberOfReviews" json:"numberOfReviews"`
	Sizes             []string             `bson:"sizes,omitempty" json:"sizes,omitempty"`
	CategoryID        primitive.ObjectID   `bson:"category" json:"category"`
	GenderAgeCategory string               `bson:"genderAgeCategory" json:"genderAgeCategory"` // men, women, unisex, kids
	CountInStock      int                  `bson:"countInStock" json:"countInStock"`
	DateAdded         time.Time            `bson:"dateAdded" json:"dateAdded"`
}
