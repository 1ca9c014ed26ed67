package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zohaib089/shooper-be/models"
)

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name, colour, image string) (*models.Category, error)
	MarkForDeletion(ctx context.Context, id primitive.ObjectID) error
	ListMarkedForDeletion(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type categoryRepo struct {
	col *mongo.Collection
}

// NewCategoryRepository returns a CategoryRepository backed by the
// "categories" collection.
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepo{col: db.Collection("categories")}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	if category.Colour == "" {
		category.Colour = models.DefaultCategoryColour
	}
	res, err := r.col.InsertOne(ctx, category)
	if err != nil {
		return translate(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, id primitive.ObjectID, name, colour, image string) (*models.Category, error) {
	set := bson.M{"name": name, "colour": colour}
	if image != "" {
		set["image"] = image
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category models.Category
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&category)
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepo) MarkForDeletion(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"markedForDeletion": true}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepo) ListMarkedForDeletion(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.col.Find(ctx, bson.M{"markedForDeletion": true})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}
