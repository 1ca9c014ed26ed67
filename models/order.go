package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
	StatusOnHold         OrderStatus = "on-hold"
	StatusExpired        OrderStatus = "expired"
	StatusFailed         OrderStatus = "failed"
	StatusPartialRefund  OrderStatus = "partial-refund"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending: {}, StatusProcessing: {}, StatusShipped: {},
	StatusOutForDelivery: {}, StatusDelivered: {}, StatusCancelled: {},
	StatusRefunded: {}, StatusOnHold: {}, StatusExpired: {},
	StatusFailed: {}, StatusPartialRefund: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Order is a placed order. StatusHistory records each prior status once, in
// the order it was left.
type Order struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	OrderItems      []primitive.ObjectID `bson:"orderItems" json:"orderItems"`
	ShippingAddress string               `bson:"shippingAddress" json:"shippingAddress"`
	City            string               `bson:"city" json:"city"`
	PostalCode      string               `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country         string               `bson:"country" json:"country"`
	Phone           string               `bson:"phone" json:"phone"`
	PaymentID       string               `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status          OrderStatus          `bson:"status" json:"status"`
	StatusHistory   []OrderStatus        `bson:"statusHistory" json:"statusHistory,omitempty"`
	TotalPrice      float64              `bson:"totalPrice,omitempty" json:"totalPrice,omitempty"`
	UserID          primitive.ObjectID   `bson:"user,omitempty" json:"user,omitempty"`
	DateOrdered     time.Time            `bson:"dateOrdered" json:"dateOrdered"`
}
