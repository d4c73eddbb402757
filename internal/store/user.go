package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

// ErrDuplicateUser is returned when the email or username is already taken.
var ErrDuplicateUser = fmt.Errorf("email or username already registered")

type UserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (s *Store) CreateUser(ctx context.Context, input UserInput) (models.User, error) {
	verr := &ValidationError{}
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" {
		verr.add("username", "is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		verr.add("email", "must be a valid email address")
	}
	if len(input.Password) < 8 {
		verr.add("password", "must be at least 8 characters")
	}
	if err := verr.orNil(); err != nil {
		return models.User{}, err
	}

	count, err := s.users().CountDocuments(ctx, bson.M{
		"$or": []bson.M{{"email": email}, {"username": username}},
	})
	if err != nil {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return models.User{}, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		Email:      email,
		Password:   string(hash),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Phone:      strings.TrimSpace(input.Phone),
		IsActive:   true,
		DateJoined: time.Now().UTC(),
	}

	if _, err := s.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Str("email", email).Msg("user registered")
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.M{"username": strings.TrimSpace(username)})
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return models.User{}, ErrInvalidID
	}
	return s.findUser(ctx, bson.M{"_id": objID})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// VerifyPassword checks the candidate against the stored bcrypt hash.
func VerifyPassword(user models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.users().UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
