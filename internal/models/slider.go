package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SliderActive   = "active"
	SliderInactive = "inactive"
)

// Slider is a homepage banner. Order is kept a dense 1..N sequence by the
// store's ordering maintainer.
type Slider struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Subtitle    string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
