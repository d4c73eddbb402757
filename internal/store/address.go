package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type AddressInput struct {
	AddressType string `json:"address_type"`
	Label       string `json:"label"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Line1       string `json:"address_line1"`
	Line2       string `json:"address_line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
	IsDefault   bool   `json:"is_default"`
}

type AddressUpdate struct {
	AddressType *string `json:"address_type"`
	Label       *string `json:"label"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Company     *string `json:"company"`
	Line1       *string `json:"address_line1"`
	Line2       *string `json:"address_line2"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	PostalCode  *string `json:"postal_code"`
	Phone       *string `json:"phone"`
	IsDefault   *bool   `json:"is_default"`
	IsActive    *bool   `json:"is_active"`
}

var addressTypes = map[string]bool{
	models.AddressShipping: true,
	models.AddressBilling:  true,
	models.AddressBoth:     true,
}

// ListAddresses returns the user's saved addresses, default first, newest
// next. Every query is scoped by user_id; one user can never see another's
// addresses.
func (s *Store) ListAddresses(ctx context.Context, userID primitive.ObjectID) ([]AddressRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := s.addresses().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	var docs []models.Address
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}

	records := make([]AddressRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatAddress(doc))
	}
	return records, nil
}

func (s *Store) GetAddress(ctx context.Context, userID primitive.ObjectID, id string) (AddressRecord, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return AddressRecord{}, ErrInvalidID
	}

	var doc models.Address
	err = s.addresses().FindOne(ctx, bson.M{"_id": objID, "user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return AddressRecord{}, ErrNotFound
	}
	if err != nil {
		return AddressRecord{}, fmt.Errorf("get address: %w", err)
	}
	return formatAddress(doc), nil
}

func (s *Store) CreateAddress(ctx context.Context, userID primitive.ObjectID, input AddressInput) (AddressRecord, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(input.FirstName) == "" {
		verr.add("first_name", "is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		verr.add("last_name", "is required")
	}
	if strings.TrimSpace(input.Line1) == "" {
		verr.add("address_line1", "is required")
	}
	if strings.TrimSpace(input.City) == "" {
		verr.add("city", "is required")
	}
	if strings.TrimSpace(input.Country) == "" {
		verr.add("country", "is required")
	}
	addressType := strings.TrimSpace(input.AddressType)
	if addressType == "" {
		addressType = models.AddressShipping
	}
	if !addressTypes[addressType] {
		verr.add("address_type", "unknown address type")
	}
	if err := verr.orNil(); err != nil {
		return AddressRecord{}, err
	}

	now := time.Now().UTC()
	doc := models.Address{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		AddressType: addressType,
		Label:       strings.TrimSpace(input.Label),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Company:     strings.TrimSpace(input.Company),
		Line1:       strings.TrimSpace(input.Line1),
		Line2:       strings.TrimSpace(input.Line2),
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		Country:     strings.TrimSpace(input.Country),
		PostalCode:  strings.TrimSpace(input.PostalCode),
		Phone:       strings.TrimSpace(input.Phone),
		IsDefault:   input.IsDefault,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if doc.IsDefault {
		if err := s.clearDefaultAddress(ctx, userID); err != nil {
			return AddressRecord{}, err
		}
	}
	if _, err := s.addresses().InsertOne(ctx, doc); err != nil {
		return AddressRecord{}, fmt.Errorf("create address: %w", err)
	}
	return formatAddress(doc), nil
}

func (s *Store) UpdateAddress(ctx context.Context, userID primitive.ObjectID, id string, update AddressUpdate) (AddressRecord, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return AddressRecord{}, ErrInvalidID
	}

	set := bson.M{}
	verr := &ValidationError{}
	setText := func(field string, value *string, required bool) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if required && trimmed == "" {
			verr.add(field, "is required")
			return
		}
		set[field] = trimmed
	}
	if update.AddressType != nil {
		if !addressTypes[strings.TrimSpace(*update.AddressType)] {
			verr.add("address_type", "unknown address type")
		} else {
			set["address_type"] = strings.TrimSpace(*update.AddressType)
		}
	}
	setText("label", update.Label, false)
	setText("first_name", update.FirstName, true)
	setText("last_name", update.LastName, true)
	setText("company", update.Company, false)
	setText("address_line1", update.Line1, true)
	setText("address_line2", update.Line2, false)
	setText("city", update.City, true)
	setText("state", update.State, false)
	setText("country", update.Country, true)
	setText("postal_code", update.PostalCode, false)
	setText("phone", update.Phone, false)
	if update.IsDefault != nil {
		set["is_default"] = *update.IsDefault
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if err := verr.orNil(); err != nil {
		return AddressRecord{}, err
	}
	if len(set) == 0 {
		return AddressRecord{}, &ValidationError{Fields: []FieldError{{Field: "update", Message: "no fields to update"}}}
	}
	set["updated_at"] = time.Now().UTC()

	if update.IsDefault != nil && *update.IsDefault {
		if err := s.clearDefaultAddress(ctx, userID); err != nil {
			return AddressRecord{}, err
		}
	}

	var doc models.Address
	err = s.addresses().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID, "user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return AddressRecord{}, ErrNotFound
	}
	if err != nil {
		return AddressRecord{}, fmt.Errorf("update address: %w", err)
	}
	return formatAddress(doc), nil
}

func (s *Store) DeleteAddress(ctx context.Context, userID primitive.ObjectID, id string) error {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.addresses().DeleteOne(ctx, bson.M{"_id": objID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// clearDefaultAddress unsets is_default on all of the user's addresses so a
// newly promoted default is the only one.
func (s *Store) clearDefaultAddress(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.addresses().UpdateMany(ctx,
		bson.M{"user_id": userID, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}})
	if err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}
