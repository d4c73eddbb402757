package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Slug         string              `bson:"slug" json:"slug"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64             `bson:"price" json:"price"`
	ComparePrice *float64            `bson:"compare_price,omitempty" json:"comparePrice,omitempty"`
	SKU          string              `bson:"sku,omitempty" json:"sku,omitempty"`
	Quantity     int                 `bson:"quantity" json:"quantity"`
	IsAvailable  bool                `bson:"is_available" json:"isAvailable"`
	CategoryID   *primitive.ObjectID `bson:"category_id" json:"categoryId"`
	Tags         []string            `bson:"tags" json:"tags"`
	Images       []string            `bson:"images" json:"images"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}
