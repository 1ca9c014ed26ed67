package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is the persisted access/refresh pair for one user. At most one live
// document exists per user (login upserts). A TTL index on CreatedAt expires
// the pair 60 days after creation.
type Token struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	AccessToken  string             `bson:"accessToken,omitempty" json:"accessToken,omitempty"`
	RefreshToken string             `bson:"refreshToken" json:"refreshToken"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
