package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order payment statuses used by the analytics pipelines.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// OrderItem is one line of an order. Type and Category are denormalized by
// name at checkout time so analytics survive taxonomy renames.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Type     string             `json:"type" bson:"type"`
	Category string             `json:"category" bson:"category"`
	Price    float64            `json:"price" bson:"price"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// Order is a historical customer order, read-only from this back office.
type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderItems    []OrderItem        `json:"orderItems" bson:"orderItems"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// Cart is a customer cart line; its presence blocks product deletion.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
