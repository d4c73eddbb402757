package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type PaymentInput struct {
	OrderID       string
	UserID        *primitive.ObjectID
	Amount        float64
	Currency      string
	PaymentMethod string
	Details       map[string]interface{}
}

type PaymentFilter struct {
	OrderID  string
	UserID   string
	Status   string
	DateFrom string
	DateTo   string
	Page     int64
	PageSize int64
}

// CreatePayment records a pending payment attempt for an order. The
// transaction id is generated locally; provider identifiers land in
// payment_details as the flow progresses.
func (s *Store) CreatePayment(ctx context.Context, input PaymentInput) (PaymentRecord, error) {
	verr := &ValidationError{}

	orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(input.OrderID))
	if err != nil {
		verr.add("order_id", "invalid id")
	}
	if input.Amount <= 0 {
		verr.add("amount", "must be greater than zero")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		verr.add("payment_method", "required")
	}
	if err := verr.orNil(); err != nil {
		return PaymentRecord{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	doc := models.Payment{
		OrderID:        orderID,
		UserID:         input.UserID,
		Amount:         input.Amount,
		Currency:       currency,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		Status:         models.PaymentPending,
		TransactionID:  uuid.NewString(),
		PaymentDetails: bson.M(input.Details),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := s.payments().InsertOne(ctx, doc)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("insert payment: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return formatPayment(doc), nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (PaymentRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return PaymentRecord{}, ErrInvalidID
	}
	return s.findPayment(ctx, bson.M{"_id": objectID})
}

// GetPaymentByOrder returns the latest payment attempt for an order.
func (s *Store) GetPaymentByOrder(ctx context.Context, orderID string) (PaymentRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(orderID))
	if err != nil {
		return PaymentRecord{}, ErrInvalidID
	}

	var doc models.Payment
	err = s.payments().FindOne(ctx,
		bson.M{"order_id": objectID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return PaymentRecord{}, ErrNotFound
	}
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("get payment: %w", err)
	}
	return formatPayment(doc), nil
}

// GetPaymentByDetail looks a payment up by a provider identifier stashed in
// payment_details (e.g. the KHQR MD5 or a PayPal order id).
func (s *Store) GetPaymentByDetail(ctx context.Context, key, value string) (PaymentRecord, error) {
	return s.findPayment(ctx, bson.M{"payment_details." + key: value})
}

func (s *Store) findPayment(ctx context.Context, query bson.M) (PaymentRecord, error) {
	var doc models.Payment
	err := s.payments().FindOne(ctx, query).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return PaymentRecord{}, ErrNotFound
	}
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("get payment: %w", err)
	}
	return formatPayment(doc), nil
}

func (s *Store) ListPayments(ctx context.Context, filter PaymentFilter) (Page[PaymentRecord], error) {
	query := bson.M{}

	if order := strings.TrimSpace(filter.OrderID); order != "" {
		orderID, err := primitive.ObjectIDFromHex(order)
		if err != nil {
			return Page[PaymentRecord]{}, ErrInvalidID
		}
		query["order_id"] = orderID
	}
	if user := strings.TrimSpace(filter.UserID); user != "" {
		userID, err := primitive.ObjectIDFromHex(user)
		if err != nil {
			return Page[PaymentRecord]{}, ErrInvalidID
		}
		query["user_id"] = userID
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query["status"] = status
	}
	if created := createdRange(filter.DateFrom, filter.DateTo); len(created) > 0 {
		query["created_at"] = created
	}

	total, err := s.payments().CountDocuments(ctx, query)
	if err != nil {
		return Page[PaymentRecord]{}, fmt.Errorf("count payments: %w", err)
	}

	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	skip, limit := skipLimit(filter.Page, filter.PageSize)

	cursor, err := s.payments().Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return Page[PaymentRecord]{}, fmt.Errorf("find payments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Payment
	if err := cursor.All(ctx, &docs); err != nil {
		return Page[PaymentRecord]{}, fmt.Errorf("decode payments: %w", err)
	}

	records := make([]PaymentRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatPayment(doc))
	}
	return NewPage(records, total, filter.Page, filter.PageSize), nil
}

// UpdatePaymentStatus moves the payment to a new status and merges any
// provider details into payment_details without dropping earlier keys.
func (s *Store) UpdatePaymentStatus(ctx context.Context, id, status string, details map[string]interface{}) (PaymentRecord, error) {
	if !paymentStatuses[status] {
		verr := &ValidationError{}
		verr.add("status", "unknown status")
		return PaymentRecord{}, verr
	}

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return PaymentRecord{}, ErrInvalidID
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	for key, value := range details {
		set["payment_details."+key] = value
	}

	var updated models.Payment
	err = s.payments().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return PaymentRecord{}, ErrNotFound
	}
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("update payment: %w", err)
	}
	return formatPayment(updated), nil
}
