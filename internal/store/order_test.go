package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 4, 5, 0, time.UTC)
	number := newOrderNumber(now)

	pattern := regexp.MustCompile(`^ORD-20250602150405-[0-9A-F]{4}$`)
	if !pattern.MatchString(number) {
		t.Fatalf("order number %q does not match expected format", number)
	}
}

func TestNewOrderNumberVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 16; i++ {
		n := newOrderNumber(now)
		seen[n] = true
	}
	// Random suffixes should produce more than one value at the same instant.
	if len(seen) < 2 {
		t.Fatalf("expected varying suffixes, got %v", seen)
	}
}

func TestOrderStatusSets(t *testing.T) {
	for _, status := range []string{"pending", "processing", "shipped", "delivered", "cancelled", "refunded"} {
		if !orderStatuses[status] {
			t.Fatalf("status %q should be valid", status)
		}
	}
	if orderStatuses["shipped_back"] {
		t.Fatal("unknown status accepted")
	}
	for _, status := range []string{"pending", "completed", "failed", "refunded", "cancelled"} {
		if !paymentStatuses[status] {
			t.Fatalf("payment status %q should be valid", status)
		}
	}
}

// A nil database panics on any collection access, so these inputs must be
// rejected before the store opens a session or touches Mongo. A rejected
// checkout leaves no stray stock decrements behind.
func TestCreateOrderValidatesBeforeAnyWrite(t *testing.T) {
	s := New(nil, zerolog.Nop())

	_, err := s.CreateOrder(context.Background(), OrderInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"items", "payment_method", "shipping_address.address"} {
		if !fields[want] {
			t.Fatalf("missing field %q in %v", want, verr.Fields)
		}
	}
}

func TestCreateOrderRejectsMalformedItems(t *testing.T) {
	s := New(nil, zerolog.Nop())

	_, err := s.CreateOrder(context.Background(), OrderInput{
		PaymentMethod:   "paypal",
		ShippingAddress: models.ShippingAddress{Address: "12 High St"},
		Items: []OrderItemInput{
			{ProductID: "not-a-hex-id", Quantity: 1},
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 0},
		},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	if !fields["items[0].product_id"] || !fields["items[1].quantity"] {
		t.Fatalf("unexpected fields: %v", verr.Fields)
	}
}
