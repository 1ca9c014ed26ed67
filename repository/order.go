package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zohaib089/shooper-be/models"
)

// OrderRepository persists orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// List returns all orders newest first, with status history omitted.
	List(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, history []models.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type orderRepo struct {
	col *mongo.Collection
}

// NewOrderRepository returns an OrderRepository backed by the "orders"
// collection.
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepo{col: db.Collection("orders")}
}

func (r *orderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().
		SetProjection(bson.M{"statusHistory": 0}).
		SetSort(bson.D{{Key: "dateOrdered", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *orderRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, history []models.OrderStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "statusHistory": history}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	return translate(err)
}
