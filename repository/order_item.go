package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderItemRepository persists order line items.
type OrderItemRepository interface {
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
}

type orderItemRepo struct {
	col *mongo.Collection
}

// NewOrderItemRepository returns an OrderItemRepository backed by the
// "orderitems" collection.
func NewOrderItemRepository(db *mongo.Database) OrderItemRepository {
	return &orderItemRepo{col: db.Collection("orderitems")}
}

func (r *orderItemRepo) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return translate(err)
}
