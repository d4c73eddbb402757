package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	FirstName   string             `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName    string             `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	IsStaff     bool               `bson:"is_staff" json:"isStaff"`
	IsSuperuser bool               `bson:"is_superuser" json:"isSuperuser"`
	DateJoined  time.Time          `bson:"date_joined" json:"dateJoined"`
	LastLogin   *time.Time         `bson:"last_login" json:"lastLogin"`
}
