package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment tracks one attempt to settle an order. PaymentDetails is a free-form
// map used to stash provider identifiers (PayPal order/capture ids, KHQR MD5).
type Payment struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID        primitive.ObjectID  `bson:"order_id" json:"orderId"`
	UserID         *primitive.ObjectID `bson:"user_id" json:"userId"`
	Amount         float64             `bson:"amount" json:"amount"`
	Currency       string              `bson:"currency" json:"currency"`
	PaymentMethod  string              `bson:"payment_method" json:"paymentMethod"`
	Status         string              `bson:"status" json:"status"`
	TransactionID  string              `bson:"transaction_id" json:"transactionId"`
	PaymentDetails bson.M              `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}
