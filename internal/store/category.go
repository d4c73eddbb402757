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

type CategoryFilter struct {
	ParentID     string
	IsActive     *bool
	TopLevelOnly bool
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Image       string
	ParentID    string
	IsActive    *bool
	SortOrder   int
}

type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	Image       *string
	ParentID    *string // empty string clears the parent
	IsActive    *bool
	SortOrder   *int
}

func (s *Store) ListCategories(ctx context.Context, filter CategoryFilter) ([]CategoryRecord, error) {
	query := bson.M{}

	if filter.TopLevelOnly {
		query["parent_id"] = nil
	} else if parent := strings.TrimSpace(filter.ParentID); parent != "" {
		parentID, err := primitive.ObjectIDFromHex(parent)
		if err == nil {
			query["parent_id"] = bson.M{"$in": bson.A{parentID, parentID.Hex()}}
		}
		// malformed parent ids drop the clause, same as product filtering
	}

	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cursor, err := s.categories().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Category
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	records := make([]CategoryRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatCategory(doc))
	}
	return records, nil
}

// CategoryTree nests the active categories under their parents. Orphans whose
// parent is missing or inactive surface as roots rather than disappearing.
func (s *Store) CategoryTree(ctx context.Context) ([]*CategoryNode, error) {
	active := true
	flat, err := s.ListCategories(ctx, CategoryFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*CategoryNode, len(flat))
	for _, rec := range flat {
		byID[rec.ID] = &CategoryNode{CategoryRecord: rec, Children: make([]*CategoryNode, 0)}
	}

	roots := make([]*CategoryNode, 0)
	for _, rec := range flat {
		node := byID[rec.ID]
		if rec.ParentID != nil {
			if parent, ok := byID[*rec.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (CategoryRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return CategoryRecord{}, ErrInvalidID
	}

	var doc models.Category
	err = s.categories().FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return CategoryRecord{}, ErrNotFound
	}
	if err != nil {
		return CategoryRecord{}, fmt.Errorf("get category: %w", err)
	}
	return formatCategory(doc), nil
}

func (s *Store) CreateCategory(ctx context.Context, input CategoryInput) (CategoryRecord, error) {
	verr := &ValidationError{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		verr.add("name", "required")
	}

	var parentID *primitive.ObjectID
	if parent := strings.TrimSpace(input.ParentID); parent != "" {
		id, err := primitive.ObjectIDFromHex(parent)
		if err != nil {
			verr.add("parent_id", "invalid id")
		} else {
			parentID = &id
		}
	}
	if err := verr.orNil(); err != nil {
		return CategoryRecord{}, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = slugify(name)
	}

	now := time.Now().UTC()
	doc := models.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		ParentID:    parentID,
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.categories().InsertOne(ctx, doc)
	if err != nil {
		return CategoryRecord{}, fmt.Errorf("insert category: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return formatCategory(doc), nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) (CategoryRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return CategoryRecord{}, ErrInvalidID
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
	if update.Image != nil {
		set["image"] = strings.TrimSpace(*update.Image)
	}
	if update.ParentID != nil {
		parent := strings.TrimSpace(*update.ParentID)
		if parent == "" {
			set["parent_id"] = nil
		} else if parentID, err := primitive.ObjectIDFromHex(parent); err != nil {
			verr.add("parent_id", "invalid id")
		} else if parentID == objectID {
			verr.add("parent_id", "category cannot be its own parent")
		} else {
			set["parent_id"] = parentID
		}
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if update.SortOrder != nil {
		set["sort_order"] = *update.SortOrder
	}

	if err := verr.orNil(); err != nil {
		return CategoryRecord{}, err
	}
	if len(set) == 0 {
		verr.add("body", "no fields to update")
		return CategoryRecord{}, verr
	}
	set["updated_at"] = time.Now().UTC()

	var updated models.Category
	err = s.categories().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return CategoryRecord{}, ErrNotFound
	}
	if err != nil {
		return CategoryRecord{}, fmt.Errorf("update category: %w", err)
	}
	return formatCategory(updated), nil
}

// DeleteCategory removes the node only. Products keep their dangling
// category reference and children keep their parent pointer; neither cascade
// nor blocking was wanted here.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.categories().DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// descendantIDs returns the closed set of a category and every category below
// it, walking the parent references breadth-first. The seen set guards
// against accidental cycles in the stored tree.
func (s *Store) descendantIDs(ctx context.Context, root primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]struct{}{root: {}}
	result := []primitive.ObjectID{root}
	frontier := []primitive.ObjectID{root}

	for len(frontier) > 0 {
		parents := make(bson.A, 0, 2*len(frontier))
		for _, id := range frontier {
			parents = append(parents, id, id.Hex())
		}

		cursor, err := s.categories().Find(ctx,
			bson.M{"parent_id": bson.M{"$in": parents}},
			options.Find().SetProjection(bson.M{"_id": 1}),
		)
		if err != nil {
			return nil, fmt.Errorf("expand category tree: %w", err)
		}

		var children []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &children); err != nil {
			return nil, fmt.Errorf("decode category tree: %w", err)
		}

		frontier = frontier[:0]
		for _, child := range children {
			if _, ok := seen[child.ID]; ok {
				continue
			}
			seen[child.ID] = struct{}{}
			result = append(result, child.ID)
			frontier = append(frontier, child.ID)
		}
	}

	return result, nil
}
