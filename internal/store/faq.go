package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type FAQFilter struct {
	Category   string
	ActiveOnly bool
}

type FAQInput struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Order    int      `json:"order"`
	IsActive *bool    `json:"is_active"`
}

type FAQUpdate struct {
	Question *string   `json:"question"`
	Answer   *string   `json:"answer"`
	Category *string   `json:"category"`
	Keywords *[]string `json:"keywords"`
	Order    *int      `json:"order"`
	IsActive *bool     `json:"is_active"`
}

func (s *Store) ListFAQs(ctx context.Context, f FAQFilter) ([]FAQRecord, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := s.faqs().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	var faqs []models.FAQ
	if err := cursor.All(ctx, &faqs); err != nil {
		return nil, fmt.Errorf("decode faqs: %w", err)
	}

	records := make([]FAQRecord, 0, len(faqs))
	for _, faq := range faqs {
		records = append(records, formatFAQ(faq))
	}
	return records, nil
}

// SearchFAQs matches the query case-insensitively against question, answer
// and keywords of active entries.
func (s *Store) SearchFAQs(ctx context.Context, query string) ([]FAQRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListFAQs(ctx, FAQFilter{ActiveOnly: true})
	}

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{
		"is_active": true,
		"$or": []bson.M{
			{"question": bson.M{"$regex": pattern, "$options": "i"}},
			{"answer": bson.M{"$regex": pattern, "$options": "i"}},
			{"keywords": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := s.faqs().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search faqs: %w", err)
	}
	var faqs []models.FAQ
	if err := cursor.All(ctx, &faqs); err != nil {
		return nil, fmt.Errorf("decode faqs: %w", err)
	}

	records := make([]FAQRecord, 0, len(faqs))
	for _, faq := range faqs {
		records = append(records, formatFAQ(faq))
	}
	return records, nil
}

// FAQCategories returns the distinct categories of active entries, sorted.
func (s *Store) FAQCategories(ctx context.Context) ([]string, error) {
	values, err := s.faqs().Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("faq categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			categories = append(categories, name)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) GetFAQ(ctx context.Context, id string) (FAQRecord, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return FAQRecord{}, ErrInvalidID
	}

	var faq models.FAQ
	err = s.faqs().FindOne(ctx, bson.M{"_id": objID}).Decode(&faq)
	if err == mongo.ErrNoDocuments {
		return FAQRecord{}, ErrNotFound
	}
	if err != nil {
		return FAQRecord{}, fmt.Errorf("get faq: %w", err)
	}
	return formatFAQ(faq), nil
}

func (s *Store) CreateFAQ(ctx context.Context, input FAQInput) (FAQRecord, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Question) == "" {
		verr.add("question", "is required")
	}
	if strings.TrimSpace(input.Answer) == "" {
		verr.add("answer", "is required")
	}
	if err := verr.orNil(); err != nil {
		return FAQRecord{}, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	faq := models.FAQ{
		ID:        primitive.NewObjectID(),
		Question:  strings.TrimSpace(input.Question),
		Answer:    strings.TrimSpace(input.Answer),
		Category:  strings.TrimSpace(input.Category),
		Keywords:  normalizeTags(input.Keywords),
		Order:     input.Order,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.faqs().InsertOne(ctx, faq); err != nil {
		return FAQRecord{}, fmt.Errorf("create faq: %w", err)
	}
	return formatFAQ(faq), nil
}

func (s *Store) UpdateFAQ(ctx context.Context, id string, update FAQUpdate) (FAQRecord, error) {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return FAQRecord{}, ErrInvalidID
	}

	set := bson.M{}
	if update.Question != nil {
		if strings.TrimSpace(*update.Question) == "" {
			return FAQRecord{}, &ValidationError{Fields: []FieldError{{Field: "question", Message: "is required"}}}
		}
		set["question"] = strings.TrimSpace(*update.Question)
	}
	if update.Answer != nil {
		if strings.TrimSpace(*update.Answer) == "" {
			return FAQRecord{}, &ValidationError{Fields: []FieldError{{Field: "answer", Message: "is required"}}}
		}
		set["answer"] = strings.TrimSpace(*update.Answer)
	}
	if update.Category != nil {
		set["category"] = strings.TrimSpace(*update.Category)
	}
	if update.Keywords != nil {
		set["keywords"] = normalizeTags(*update.Keywords)
	}
	if update.Order != nil {
		set["order"] = *update.Order
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if len(set) == 0 {
		return FAQRecord{}, &ValidationError{Fields: []FieldError{{Field: "update", Message: "no fields to update"}}}
	}
	set["updated_at"] = time.Now().UTC()

	var faq models.FAQ
	err = s.faqs().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&faq)
	if err == mongo.ErrNoDocuments {
		return FAQRecord{}, ErrNotFound
	}
	if err != nil {
		return FAQRecord{}, fmt.Errorf("update faq: %w", err)
	}
	return formatFAQ(faq), nil
}

func (s *Store) DeleteFAQ(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	result, err := s.faqs().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
