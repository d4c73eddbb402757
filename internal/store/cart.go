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

// Carts are one-per-user and created lazily: reading a missing cart yields
// an empty one, the first write upserts the document.

func (s *Store) GetCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := s.carts().FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// AddToCart merges the product into the user's cart, bumping quantity when a
// line for it already exists. The price and name are snapshotted from the
// current product document.
func (s *Store) AddToCart(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (models.Cart, error) {
	verr := &ValidationError{}
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		verr.add("product_id", "invalid id")
	}
	if quantity <= 0 {
		verr.add("quantity", "must be greater than zero")
	}
	if err := verr.orNil(); err != nil {
		return models.Cart{}, err
	}

	var product models.Product
	err = s.products().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Cart{}, ErrNotFound
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("load product: %w", err)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == id {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			LineID:    uuid.NewString(),
			ProductID: id,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Image:     mainImage(cleanImages(product.Images)),
		})
	}

	return s.saveCart(ctx, userID, cart.Items)
}

func (s *Store) UpdateCartItem(ctx context.Context, userID primitive.ObjectID, lineID string, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveCartItem(ctx, userID, lineID)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].LineID == lineID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return models.Cart{}, ErrNotFound
	}

	return s.saveCart(ctx, userID, cart.Items)
}

func (s *Store) RemoveCartItem(ctx context.Context, userID primitive.ObjectID, lineID string) (models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	found := false
	for _, item := range cart.Items {
		if item.LineID == lineID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return models.Cart{}, ErrNotFound
	}

	return s.saveCart(ctx, userID, items)
}

func (s *Store) ClearCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	return s.saveCart(ctx, userID, []models.CartItem{})
}

func (s *Store) saveCart(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) (models.Cart, error) {
	now := time.Now().UTC()

	var saved models.Cart
	err := s.carts().FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"items": items, "updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return models.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	if saved.Items == nil {
		saved.Items = []models.CartItem{}
	}
	return saved, nil
}
