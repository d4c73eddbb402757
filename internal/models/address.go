package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address types.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
	AddressBoth     = "both"
)

// Address is a saved shipping/billing address. Each document belongs to
// exactly one user; at most one address per user carries is_default.
type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	AddressType string             `bson:"address_type" json:"addressType"`
	Label       string             `bson:"label,omitempty" json:"label,omitempty"`
	FirstName   string             `bson:"first_name" json:"firstName"`
	LastName    string             `bson:"last_name" json:"lastName"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Line1       string             `bson:"address_line1" json:"addressLine1"`
	Line2       string             `bson:"address_line2,omitempty" json:"addressLine2,omitempty"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	Country     string             `bson:"country" json:"country"`
	PostalCode  string             `bson:"postal_code" json:"postalCode"`
	Phone       string             `bson:"phone" json:"phone"`
	IsDefault   bool               `bson:"is_default" json:"isDefault"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
