package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zohaib089/shooper-be/models"
)

// TokenRepository persists access/refresh pairs, one live pair per user.
type TokenRepository interface {
	// Upsert replaces the user's token pair, creating it on first login.
	Upsert(ctx context.Context, userID primitive.ObjectID, accessToken, refreshToken string) error
	// FindByAccessToken looks up the pair holding the given access token;
	// only records that still carry a refresh token qualify.
	FindByAccessToken(ctx context.Context, accessToken string) (*models.Token, error)
	// UpdateAccessToken overwrites the stored access token after a refresh.
	// The filter is the record id alone: concurrent refreshes race and the
	// last write wins, which matches the store's documented semantics.
	UpdateAccessToken(ctx context.Context, id primitive.ObjectID, accessToken string) error
	DeleteByAccessToken(ctx context.Context, accessToken string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

type tokenRepo struct {
	col *mongo.Collection
}

// NewTokenRepository returns a TokenRepository backed by the "tokens" collection.
func NewTokenRepository(db *mongo.Database) TokenRepository {
	return &tokenRepo{col: db.Collection("tokens")}
}

func (r *tokenRepo) Upsert(ctx context.Context, userID primitive.ObjectID, accessToken, refreshToken string) error {
	update := bson.M{
		"$set": bson.M{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"userId": userID}, update, opts)
	return translate(err)
}

func (r *tokenRepo) FindByAccessToken(ctx context.Context, accessToken string) (*models.Token, error) {
	filter := bson.M{
		"accessToken":  accessToken,
		"refreshToken": bson.M{"$exists": true},
	}
	var token models.Token
	if err := r.col.FindOne(ctx, filter).Decode(&token); err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (r *tokenRepo) UpdateAccessToken(ctx context.Context, id primitive.ObjectID, accessToken string) error {
	update := bson.M{"$set": bson.M{"accessToken": accessToken}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tokenRepo) DeleteByAccessToken(ctx context.Context, accessToken string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"accessToken": accessToken})
	return translate(err)
}

func (r *tokenRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"userId": userID})
	return translate(err)
}
