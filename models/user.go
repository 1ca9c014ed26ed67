package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is a denormalized product snapshot on the user document.
type WishlistItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName  string             `bson:"productName" json:"productName"`
	ProductPrice float64            `bson:"productPrice" json:"productPrice"`
	ProductImage string             `bson:"productImage" json:"productImage"`
}

// User represents a registered account. PasswordHash and the OTP fields are
// never serialized to clients.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash,omitempty" json:"-"`
	IsAdmin      bool                 `bson:"isAdmin" json:"isAdmin"`
	Role         string               `bson:"role" json:"role"` // "user" or "admin"
	Phone        string               `bson:"phone" json:"phone"`
	Street       string               `bson:"street,omitempty" json:"street,omitempty"`
	Apartment    string               `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City         string               `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode   string               `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country      string               `bson:"country,omitempty" json:"country,omitempty"`
	Cart         []primitive.ObjectID `bson:"cart,omitempty" json:"cart,omitempty"`
	Wishlist     []WishlistItem       `bson:"wishlist,omitempty" json:"wishlist,omitempty"`

	// OTP state for the password-reset flow. ResetPasswordOTP holds the
	// confirmed sentinel (1) between OTP verification and the actual reset.
	ResetPasswordOTP        *int       `bson:"resetPasswordOtp,omitempty" json:"-"`
	ResetPasswordOTPExpires *time.Time `bson:"resetPasswordOtpExpires,omitempty" json:"-"`
}

// OTPConfirmedSentinel marks an OTP as verified and consumed; password reset
// is only permitted while this value is stored.
const OTPConfirmedSentinel = 1
