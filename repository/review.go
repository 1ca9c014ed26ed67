package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zohaib089/shooper-be/models"
)

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Review, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
}

type reviewRepo struct {
	col *mongo.Collection
}

// NewReviewRepository returns a ReviewRepository backed by the "reviews"
// collection.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepo{col: db.Collection("reviews")}
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.Date.IsZero() {
		review.Date = time.Now()
	}
	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return translate(err)
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *reviewRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Review, error) {
	if len(ids) == 0 {
		return []models.Review{}, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return translate(err)
}
