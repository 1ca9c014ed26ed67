package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartProductRepository persists cart items referenced from user documents.
type CartProductRepository interface {
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
}

type cartProductRepo struct {
	col *mongo.Collection
}

// NewCartProductRepository returns a CartProductRepository backed by the
// "cartproducts" collection.
func NewCartProductRepository(db *mongo.Database) CartProductRepository {
	return &cartProductRepo{col: db.Collection("cartproducts")}
}

func (r *cartProductRepo) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return translate(err)
}
