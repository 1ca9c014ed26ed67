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

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, phone string) (*models.User, error)
	SetResetOTP(ctx context.Context, id primitive.ObjectID, otp int, expires time.Time) error
	ConfirmResetOTP(ctx context.Context, id primitive.ObjectID) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	ClearCart(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepo struct {
	col *mongo.Collection
}

// NewUserRepository returns a UserRepository backed by the "users" collection.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return translate(err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// List returns the public directory projection: name, email and admin flag.
func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "isAdmin": 1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *userRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, phone string) (*models.User, error) {
	update := bson.M{"$set": bson.M{"name": name, "email": email, "phone": phone}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) SetResetOTP(ctx context.Context, id primitive.ObjectID, otp int, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"resetPasswordOtp":        otp,
		"resetPasswordOtpExpires": expires,
	}}
	return r.updateOne(ctx, id, update)
}

// ConfirmResetOTP replaces the stored OTP with the confirmed sentinel and
// drops the expiry, authorizing exactly one password reset.
func (r *userRepo) ConfirmResetOTP(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set":   bson.M{"resetPasswordOtp": models.OTPConfirmedSentinel},
		"$unset": bson.M{"resetPasswordOtpExpires": ""},
	}
	return r.updateOne(ctx, id, update)
}

func (r *userRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{
		"$set":   bson.M{"passwordHash": passwordHash},
		"$unset": bson.M{"resetPasswordOtp": "", "resetPasswordOtpExpires": ""},
	}
	return r.updateOne(ctx, id, update)
}

func (r *userRepo) ClearCart(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"cart": []primitive.ObjectID{}}}
	return r.updateOne(ctx, id, update)
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
