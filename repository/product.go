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

// PageSize is the fixed page length for product listings.
const PageSize = 10

// ProductQuery narrows a product listing. Zero values mean "no filter".
type ProductQuery struct {
	Page              int
	Category          *primitive.ObjectID
	AddedSince        *time.Time // new-arrivals cutoff
	MinRating         float64    // popular threshold, exclusive
	Search            string     // text-index search term
	GenderAgeCategory string
	// Omit lists bson field names excluded from the result documents.
	Omit []string
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, q ProductQuery) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	CountInCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update *models.Product) (*models.Product, error)
	// AttachReview pushes a review reference and stores the recomputed
	// rating and review count in the same update.
	AttachReview(ctx context.Context, id, reviewID primitive.ObjectID, rating float64, numberOfReviews int) error
	// PullImages removes the given URLs from the gallery and returns the
	// updated product.
	PullImages(ctx context.Context, id primitive.ObjectID, urls []string) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productRepo struct {
	col *mongo.Collection
}

// NewProductRepository returns a ProductRepository backed by the "products"
// collection.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepo{col: db.Collection("products")}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}
	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return translate(err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	filter := bson.M{}
	if q.Category != nil {
		filter["category"] = *q.Category
	}
	if q.AddedSince != nil {
		filter["dateAdded"] = bson.M{"$gte": *q.AddedSince}
	}
	if q.MinRating > 0 {
		filter["rating"] = bson.M{"$gt": q.MinRating}
	}
	if q.GenderAgeCategory != "" {
		filter["genderAgeCategory"] = q.GenderAgeCategory
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search, "$caseSensitive": false}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSkip(int64(PageSize * (page - 1))).
		SetLimit(PageSize)
	if len(q.Omit) > 0 {
		projection := bson.M{}
		for _, field := range q.Omit {
			projection[field] = 0
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *productRepo) CountInCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"category": categoryID})
}

func (r *productRepo) Update(ctx context.Context, id primitive.ObjectID, update *models.Product) (*models.Product, error) {
	update.ID = primitive.NilObjectID // omitempty keeps _id out of the $set
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) AttachReview(ctx context.Context, id, reviewID primitive.ObjectID, rating float64, numberOfReviews int) error {
	update := bson.M{
		"$push": bson.M{"reviews": reviewID},
		"$set":  bson.M{"rating": rating, "numberOfReviews": numberOfReviews},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) PullImages(ctx context.Context, id primitive.ObjectID, urls []string) (*models.Product, error) {
	update := bson.M{"$pull": bson.M{"images": bson.M{"$in": urls}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
