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

type ProductInput struct {
	Name         string
	Slug         string
	Description  string
	Price        float64
	ComparePrice *float64
	SKU          string
	Quantity     int
	IsAvailable  *bool
	CategoryID   string
	Tags         []string
	Images       []string
}

type ProductUpdate struct {
	Name         *string
	Slug         *string
	Description  *string
	Price        *float64
	ComparePrice *float64
	SKU          *string
	Quantity     *int
	IsAvailable  *bool
	CategoryID   *string // empty string clears the reference
	Tags         *[]string
	Images       *[]string
}

// ListProducts runs the filtered, paginated catalog read: category descendant
// expansion, free-text search, price ceiling and date range ANDed together,
// then a count plus one page of formatted records.
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) (Page[ProductRecord], error) {
	var categoryIDs []primitive.ObjectID
	if category := strings.TrimSpace(filter.Category); category != "" {
		filter.Category = category
		if rootID, err := primitive.ObjectIDFromHex(category); err == nil {
			categoryIDs, err = s.descendantIDs(ctx, rootID)
			if err != nil {
				return Page[ProductRecord]{}, err
			}
		} else {
			// Permissive filtering: a malformed category id drops the
			// clause instead of failing the request.
			s.logger.Debug().Str("category", category).Msg("ignoring malformed category filter")
		}
	}

	query := buildProductQuery(filter, categoryIDs)

	total, err := s.products().CountDocuments(ctx, query)
	if err != nil {
		return Page[ProductRecord]{}, fmt.Errorf("count products: %w", err)
	}

	if filter.PageSize < 1 {
		filter.PageSize = 12
	}
	skip, limit := skipLimit(filter.Page, filter.PageSize)

	opts := options.Find().
		SetSort(productSort(filter.Sort)).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.products().Find(ctx, query, opts)
	if err != nil {
		return Page[ProductRecord]{}, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Product
	if err := cursor.All(ctx, &docs); err != nil {
		return Page[ProductRecord]{}, fmt.Errorf("decode products: %w", err)
	}

	records := make([]ProductRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatProduct(doc))
	}
	return NewPage(records, total, filter.Page, filter.PageSize), nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (ProductRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ProductRecord{}, ErrInvalidID
	}
	return s.findProduct(ctx, bson.M{"_id": objectID})
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (ProductRecord, error) {
	return s.findProduct(ctx, bson.M{"slug": strings.TrimSpace(slug)})
}

func (s *Store) findProduct(ctx context.Context, query bson.M) (ProductRecord, error) {
	var doc models.Product
	err := s.products().FindOne(ctx, query).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return ProductRecord{}, ErrNotFound
	}
	if err != nil {
		return ProductRecord{}, fmt.Errorf("get product: %w", err)
	}
	return formatProduct(doc), nil
}

func (s *Store) CreateProduct(ctx context.Context, input ProductInput) (ProductRecord, error) {
	verr := &ValidationError{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		verr.add("name", "required")
	}
	if input.Price < 0 {
		verr.add("price", "must be zero or greater")
	}
	if input.Quantity < 0 {
		verr.add("quantity", "must be zero or greater")
	}
	if input.ComparePrice != nil && *input.ComparePrice < 0 {
		verr.add("compare_price", "must be zero or greater")
	}

	var categoryID *primitive.ObjectID
	if category := strings.TrimSpace(input.CategoryID); category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			verr.add("category_id", "invalid id")
		} else {
			categoryID = &id
		}
	}
	if err := verr.orNil(); err != nil {
		return ProductRecord{}, err
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify(name)
	}

	now := time.Now().UTC()
	doc := models.Product{
		Name:         name,
		Slug:         slug,
		Description:  strings.TrimSpace(input.Description),
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		SKU:          strings.TrimSpace(input.SKU),
		Quantity:     input.Quantity,
		IsAvailable:  isAvailable,
		CategoryID:   categoryID,
		Tags:         normalizeTags(input.Tags),
		Images:       cleanImages(input.Images),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := s.products().InsertOne(ctx, doc)
	if err != nil {
		return ProductRecord{}, fmt.Errorf("insert product: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return formatProduct(doc), nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (ProductRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ProductRecord{}, ErrInvalidID
	}

	set := bson.M{}
	verr := &ValidationError{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			verr.add("name", "cannot be empty")
		} else {
			set["name"] = name
		}
	}
	if update.Slug != nil {
		set["slug"] = strings.TrimSpace(*update.Slug)
	}
	if update.Description != nil {
		set["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Price != nil {
		if *update.Price < 0 {
			verr.add("price", "must be zero or greater")
		} else {
			set["price"] = *update.Price
		}
	}
	if update.ComparePrice != nil {
		if *update.ComparePrice < 0 {
			verr.add("compare_price", "must be zero or greater")
		} else {
			set["compare_price"] = *update.ComparePrice
		}
	}
	if update.SKU != nil {
		set["sku"] = strings.TrimSpace(*update.SKU)
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			verr.add("quantity", "must be zero or greater")
		} else {
			set["quantity"] = *update.Quantity
		}
	}
	if update.IsAvailable != nil {
		set["is_available"] = *update.IsAvailable
	}
	if update.CategoryID != nil {
		category := strings.TrimSpace(*update.CategoryID)
		if category == "" {
			set["category_id"] = nil
		} else if categoryID, err := primitive.ObjectIDFromHex(category); err != nil {
			verr.add("category_id", "invalid id")
		} else {
			set["category_id"] = categoryID
		}
	}
	if update.Tags != nil {
		set["tags"] = normalizeTags(*update.Tags)
	}
	if update.Images != nil {
		set["images"] = cleanImages(*update.Images)
	}

	if err := verr.orNil(); err != nil {
		return ProductRecord{}, err
	}
	if len(set) == 0 {
		verr.add("body", "no fields to update")
		return ProductRecord{}, verr
	}
	set["updated_at"] = time.Now().UTC()

	var updated models.Product
	err = s.products().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return ProductRecord{}, ErrNotFound
	}
	if err != nil {
		return ProductRecord{}, fmt.Errorf("update product: %w", err)
	}
	return formatProduct(updated), nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.products().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NewArrivals is the newest-first slice used by the storefront home page.
func (s *Store) NewArrivals(ctx context.Context, limit int64) ([]ProductRecord, error) {
	page, err := s.ListProducts(ctx, ProductFilter{Sort: "newest", Page: 1, PageSize: limit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// RelatedProducts returns up to limit products sharing the given product's
// category, excluding the product itself. No category means no relations.
func (s *Store) RelatedProducts(ctx context.Context, id string, limit int64) ([]ProductRecord, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.CategoryID == nil {
		return []ProductRecord{}, nil
	}

	page, err := s.ListProducts(ctx, ProductFilter{
		Category: *product.CategoryID,
		Page:     1,
		PageSize: limit + 1,
	})
	if err != nil {
		return nil, err
	}

	related := make([]ProductRecord, 0, limit)
	for _, rec := range page.Items {
		if rec.ID == product.ID {
			continue
		}
		related = append(related, rec)
		if int64(len(related)) == limit {
			break
		}
	}
	return related, nil
}

// normalizeTags trims, drops empties and de-duplicates while keeping the
// caller's ordering.
func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
