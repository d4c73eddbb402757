package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type OrderInput struct {
	UserID          *primitive.ObjectID
	Items           []OrderItemInput
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Notes           string
	ShippingCost    float64
	TaxAmount       float64
}

type OrderFilter struct {
	UserID   string
	Status   string
	DateFrom string
	DateTo   string
	Page     int64
	PageSize int64
}

var orderStatuses = map[string]bool{
	models.OrderPending:    true,
	models.OrderProcessing: true,
	models.OrderShipped:    true,
	models.OrderDelivered:  true,
	models.OrderCancelled:  true,
	models.OrderRefunded:   true,
}

var paymentStatuses = map[string]bool{
	models.PaymentPending:   true,
	models.PaymentCompleted: true,
	models.PaymentFailed:    true,
	models.PaymentRefunded:  true,
	models.PaymentCancelled: true,
}

// newOrderNumber derives a time-based order number with a short random
// suffix. Uniqueness is backed by the order_number index.
func newOrderNumber(now time.Time) string {
	suffix := make([]byte, 2)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102150405"), strings.ToUpper(hex.EncodeToString(suffix)))
}

// CreateOrder snapshots the requested products into line items, decrements
// stock and inserts the order as pending, all inside one transaction so a
// failure mid-way leaves no stray decrements behind.
func (s *Store) CreateOrder(ctx context.Context, input OrderInput) (OrderRecord, error) {
	verr := &ValidationError{}
	if len(input.Items) == 0 {
		verr.add("items", "at least one item is required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		verr.add("payment_method", "required")
	}
	if strings.TrimSpace(input.ShippingAddress.Address) == "" {
		verr.add("shipping_address.address", "required")
	}

	type pickedItem struct {
		id       primitive.ObjectID
		quantity int
	}
	picked := make([]pickedItem, 0, len(input.Items))
	for i, item := range input.Items {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
		if err != nil {
			verr.add(fmt.Sprintf("items[%d].product_id", i), "invalid id")
			continue
		}
		if item.Quantity <= 0 {
			verr.add(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
			continue
		}
		picked = append(picked, pickedItem{id: id, quantity: item.Quantity})
	}
	if err := verr.orNil(); err != nil {
		return OrderRecord{}, err
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return OrderRecord{}, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	var order models.Order
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		items := make([]models.OrderItem, 0, len(picked))
		subtotal := 0.0
		for _, pick := range picked {
			var product models.Product
			err := s.products().FindOne(sessCtx, bson.M{"_id": pick.id}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				verr.add("items", fmt.Sprintf("product not found: %s", pick.id.Hex()))
				return nil, verr
			}
			if err != nil {
				return nil, fmt.Errorf("load product: %w", err)
			}
			if !product.IsAvailable || product.Quantity < pick.quantity {
				verr.add("items", fmt.Sprintf("insufficient stock for %s", product.Name))
				return nil, verr
			}

			// Guarded decrement: the quantity filter re-checks stock so a
			// concurrent checkout between the read and the write aborts here.
			res, err := s.products().UpdateOne(sessCtx,
				bson.M{"_id": pick.id, "quantity": bson.M{"$gte": pick.quantity}},
				bson.M{
					"$inc": bson.M{"quantity": -pick.quantity},
					"$set": bson.M{"updated_at": time.Now().UTC()},
				})
			if err != nil {
				return nil, fmt.Errorf("adjust quantity: %w", err)
			}
			if res.MatchedCount == 0 {
				verr.add("items", fmt.Sprintf("insufficient stock for %s", product.Name))
				return nil, verr
			}

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  pick.quantity,
				Image:     mainImage(cleanImages(product.Images)),
			})
			subtotal += product.Price * float64(pick.quantity)
		}

		now := time.Now().UTC()
		order = models.Order{
			UserID:          input.UserID,
			OrderNumber:     newOrderNumber(now),
			Items:           items,
			Subtotal:        subtotal,
			ShippingCost:    input.ShippingCost,
			TaxAmount:       input.TaxAmount,
			TotalAmount:     subtotal + input.ShippingCost + input.TaxAmount,
			Status:          models.OrderPending,
			PaymentStatus:   models.PaymentPending,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
			Notes:           strings.TrimSpace(input.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		res, err := s.orders().InsertOne(sessCtx, order)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		order.ID = res.InsertedID.(primitive.ObjectID)
		return nil, nil
	})
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return OrderRecord{}, vErr
		}
		return OrderRecord{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Float64("total", order.TotalAmount).
		Msg("order created")

	return formatOrder(order), nil
}

func (s *Store) ListOrders(ctx context.Context, filter OrderFilter) (Page[OrderRecord], error) {
	query := bson.M{}

	if user := strings.TrimSpace(filter.UserID); user != "" {
		userID, err := primitive.ObjectIDFromHex(user)
		if err != nil {
			return Page[OrderRecord]{}, ErrInvalidID
		}
		query["user_id"] = userID
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query["status"] = status
	}
	if created := createdRange(filter.DateFrom, filter.DateTo); len(created) > 0 {
		query["created_at"] = created
	}

	total, err := s.orders().CountDocuments(ctx, query)
	if err != nil {
		return Page[OrderRecord]{}, fmt.Errorf("count orders: %w", err)
	}

	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	skip, limit := skipLimit(filter.Page, filter.PageSize)

	cursor, err := s.orders().Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit))
	if err != nil {
		return Page[OrderRecord]{}, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Order
	if err := cursor.All(ctx, &docs); err != nil {
		return Page[OrderRecord]{}, fmt.Errorf("decode orders: %w", err)
	}

	records := make([]OrderRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatOrder(doc))
	}
	return NewPage(records, total, filter.Page, filter.PageSize), nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (OrderRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return OrderRecord{}, ErrInvalidID
	}

	var doc models.Order
	err = s.orders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return OrderRecord{}, ErrNotFound
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("get order: %w", err)
	}
	return formatOrder(doc), nil
}

// GetOrderRaw returns the order document itself, for callers that need the
// model rather than the transport record (notifications).
func (s *Store) GetOrderRaw(ctx context.Context, id string) (models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return models.Order{}, ErrInvalidID
	}

	var doc models.Order
	err = s.orders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order: %w", err)
	}
	return doc, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) (OrderRecord, error) {
	if !orderStatuses[status] {
		verr := &ValidationError{}
		verr.add("status", "unknown status")
		return OrderRecord{}, verr
	}
	return s.setOrderFields(ctx, id, bson.M{"status": status})
}

func (s *Store) UpdateOrderPaymentStatus(ctx context.Context, id, status string) (OrderRecord, error) {
	if !paymentStatuses[status] {
		verr := &ValidationError{}
		verr.add("payment_status", "unknown status")
		return OrderRecord{}, verr
	}
	return s.setOrderFields(ctx, id, bson.M{"payment_status": status})
}

func (s *Store) setOrderFields(ctx context.Context, id string, set bson.M) (OrderRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return OrderRecord{}, ErrInvalidID
	}
	set["updated_at"] = time.Now().UTC()

	var updated models.Order
	err = s.orders().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return OrderRecord{}, ErrNotFound
	}
	if err != nil {
		return OrderRecord{}, fmt.Errorf("update order: %w", err)
	}
	return formatOrder(updated), nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.orders().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
