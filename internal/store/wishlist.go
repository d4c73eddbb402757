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

// Wishlists follow the same lazy-document pattern as carts but hold a set of
// product ids rather than priced lines.

func (s *Store) GetWishlist(ctx context.Context, userID primitive.ObjectID) (models.Wishlist, error) {
	var list models.Wishlist
	err := s.wishlists().FindOne(ctx, bson.M{"user_id": userID}).Decode(&list)
	if err == mongo.ErrNoDocuments {
		return models.Wishlist{UserID: userID, ProductIDs: []primitive.ObjectID{}}, nil
	}
	if err != nil {
		return models.Wishlist{}, fmt.Errorf("get wishlist: %w", err)
	}
	if list.ProductIDs == nil {
		list.ProductIDs = []primitive.ObjectID{}
	}
	return list, nil
}

// WishlistProducts resolves the stored ids to product records. Products that
// have since been deleted are silently skipped.
func (s *Store) WishlistProducts(ctx context.Context, userID primitive.ObjectID) ([]ProductRecord, error) {
	list, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list.ProductIDs) == 0 {
		return []ProductRecord{}, nil
	}

	cursor, err := s.products().Find(ctx, bson.M{"_id": bson.M{"$in": list.ProductIDs}})
	if err != nil {
		return nil, fmt.Errorf("load wishlist products: %w", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode wishlist products: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Preserve the order products were wished in.
	records := make([]ProductRecord, 0, len(list.ProductIDs))
	for _, id := range list.ProductIDs {
		if p, ok := byID[id]; ok {
			records = append(records, formatProduct(p))
		}
	}
	return records, nil
}

func (s *Store) AddToWishlist(ctx context.Context, userID primitive.ObjectID, productID string) (models.Wishlist, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		return models.Wishlist{}, ErrInvalidID
	}

	count, err := s.products().CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return models.Wishlist{}, fmt.Errorf("check product: %w", err)
	}
	if count == 0 {
		return models.Wishlist{}, ErrNotFound
	}

	now := time.Now().UTC()
	var saved models.Wishlist
	err = s.wishlists().FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet":    bson.M{"product_ids": id},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return models.Wishlist{}, fmt.Errorf("add to wishlist: %w", err)
	}
	return saved, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, userID primitive.ObjectID, productID string) (models.Wishlist, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		return models.Wishlist{}, ErrInvalidID
	}

	var saved models.Wishlist
	err = s.wishlists().FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"product_ids": id},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&saved)
	if err == mongo.ErrNoDocuments {
		return models.Wishlist{UserID: userID, ProductIDs: []primitive.ObjectID{}}, nil
	}
	if err != nil {
		return models.Wishlist{}, fmt.Errorf("remove from wishlist: %w", err)
	}
	if saved.ProductIDs == nil {
		saved.ProductIDs = []primitive.ObjectID{}
	}
	return saved, nil
}
