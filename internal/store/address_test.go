package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func TestCreateAddressValidation(t *testing.T) {
	// Validation rejects before any collection access; a nil database would
	// panic otherwise.
	s := New(nil, zerolog.Nop())
	userID := primitive.NewObjectID()

	_, err := s.CreateAddress(context.Background(), userID, AddressInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"first_name", "last_name", "address_line1", "city", "country"} {
		if !fields[want] {
			t.Fatalf("missing field %q in %v", want, verr.Fields)
		}
	}
}

func TestCreateAddressRejectsUnknownType(t *testing.T) {
	s := New(nil, zerolog.Nop())

	_, err := s.CreateAddress(context.Background(), primitive.NewObjectID(), AddressInput{
		AddressType: "warehouse",
		FirstName:   "Sok",
		LastName:    "Dara",
		Line1:       "12 Street 240",
		City:        "Phnom Penh",
		Country:     "Cambodia",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "address_type" {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}
}

func TestUpdateAddressValidation(t *testing.T) {
	s := New(nil, zerolog.Nop())
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID().Hex()

	if _, err := s.UpdateAddress(context.Background(), userID, "nope", AddressUpdate{}); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	// Blanking a required field is rejected.
	_, err := s.UpdateAddress(context.Background(), userID, id, AddressUpdate{City: strPtr("  ")})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields[0].Field != "city" {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}

	// An empty update has nothing to write.
	_, err = s.UpdateAddress(context.Background(), userID, id, AddressUpdate{})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteAddressRejectsBadID(t *testing.T) {
	s := New(nil, zerolog.Nop())

	if err := s.DeleteAddress(context.Background(), primitive.NewObjectID(), "nope"); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
