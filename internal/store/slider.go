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

// The slider `order` field is a dense 1..N sequence maintained procedurally:
// create shifts the tail up, delete closes the gap, a single move shifts the
// window in between, and a bulk reorder rewrites positions outright. The
// store serializes all of it behind sliderMu because the writes are not
// transactional.

type SliderInput struct {
	Title       string
	Subtitle    string
	Description string
	Img         string
	Link        string
	Status      string
	Order       *int
}

type SliderUpdate struct {
	Title       *string
	Subtitle    *string
	Description *string
	Img         *string
	Link        *string
	Status      *string
	Order       *int
}

// moveWindow is the block of other records displaced by moving one slider
// from oldOrder to newOrder: [low, high] shifts by delta.
type moveWindow struct {
	low   int
	high  int
	delta int
}

// planMove computes the displacement for a single-record move. ok is false
// when nothing needs to shift.
func planMove(oldOrder, newOrder int) (moveWindow, bool) {
	switch {
	case newOrder > oldOrder:
		return moveWindow{low: oldOrder + 1, high: newOrder, delta: -1}, true
	case newOrder < oldOrder:
		return moveWindow{low: newOrder, high: oldOrder - 1, delta: +1}, true
	default:
		return moveWindow{}, false
	}
}

// clampOrder bounds a requested order to the valid dense range.
func clampOrder(order, count int) int {
	if order < 1 {
		return 1
	}
	if order > count {
		return count
	}
	return order
}

func (s *Store) ListSliders(ctx context.Context, activeOnly bool) ([]SliderRecord, error) {
	query := bson.M{}
	if activeOnly {
		query["status"] = models.SliderActive
	}

	cursor, err := s.sliders().Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Slider
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sliders: %w", err)
	}

	records := make([]SliderRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, formatSlider(doc))
	}
	return records, nil
}

func (s *Store) GetSlider(ctx context.Context, id string) (SliderRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return SliderRecord{}, ErrInvalidID
	}

	var doc models.Slider
	err = s.sliders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return SliderRecord{}, ErrNotFound
	}
	if err != nil {
		return SliderRecord{}, fmt.Errorf("get slider: %w", err)
	}
	return formatSlider(doc), nil
}

// CreateSlider appends at max+1 unless an explicit order is requested, in
// which case everything at or above the requested slot shifts up one (insert
// semantics).
func (s *Store) CreateSlider(ctx context.Context, input SliderInput) (SliderRecord, error) {
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.SliderActive
	}
	if status != models.SliderActive && status != models.SliderInactive {
		verr := &ValidationError{}
		verr.add("status", "must be active or inactive")
		return SliderRecord{}, verr
	}

	s.sliderMu.Lock()
	defer s.sliderMu.Unlock()

	count, err := s.sliders().CountDocuments(ctx, bson.M{})
	if err != nil {
		return SliderRecord{}, fmt.Errorf("count sliders: %w", err)
	}

	order := int(count) + 1
	if input.Order != nil && *input.Order > 0 {
		order = clampOrder(*input.Order, int(count)+1)
		if _, err := s.sliders().UpdateMany(ctx,
			bson.M{"order": bson.M{"$gte": order}},
			bson.M{"$inc": bson.M{"order": 1}},
		); err != nil {
			return SliderRecord{}, fmt.Errorf("shift sliders: %w", err)
		}
	}

	now := time.Now().UTC()
	doc := models.Slider{
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Description: strings.TrimSpace(input.Description),
		Img:         strings.TrimSpace(input.Img),
		Link:        strings.TrimSpace(input.Link),
		Status:      status,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.sliders().InsertOne(ctx, doc)
	if err != nil {
		return SliderRecord{}, fmt.Errorf("insert slider: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return formatSlider(doc), nil
}

func (s *Store) UpdateSlider(ctx context.Context, id string, update SliderUpdate) (SliderRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return SliderRecord{}, ErrInvalidID
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Subtitle != nil {
		set["subtitle"] = strings.TrimSpace(*update.Subtitle)
	}
	if update.Description != nil {
		set["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Img != nil {
		set["img"] = strings.TrimSpace(*update.Img)
	}
	if update.Link != nil {
		set["link"] = strings.TrimSpace(*update.Link)
	}
	if update.Status != nil {
		status := strings.TrimSpace(*update.Status)
		if status != models.SliderActive && status != models.SliderInactive {
			verr := &ValidationError{}
			verr.add("status", "must be active or inactive")
			return SliderRecord{}, verr
		}
		set["status"] = status
	}

	s.sliderMu.Lock()
	defer s.sliderMu.Unlock()

	var existing models.Slider
	err = s.sliders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return SliderRecord{}, ErrNotFound
	}
	if err != nil {
		return SliderRecord{}, fmt.Errorf("get slider: %w", err)
	}

	if update.Order != nil {
		count, err := s.sliders().CountDocuments(ctx, bson.M{})
		if err != nil {
			return SliderRecord{}, fmt.Errorf("count sliders: %w", err)
		}
		newOrder := clampOrder(*update.Order, int(count))
		if window, ok := planMove(existing.Order, newOrder); ok {
			if _, err := s.sliders().UpdateMany(ctx,
				bson.M{
					"_id":   bson.M{"$ne": objectID},
					"order": bson.M{"$gte": window.low, "$lte": window.high},
				},
				bson.M{"$inc": bson.M{"order": window.delta}},
			); err != nil {
				return SliderRecord{}, fmt.Errorf("shift sliders: %w", err)
			}
			set["order"] = newOrder
		}
	}

	if len(set) == 0 {
		verr := &ValidationError{}
		verr.add("body", "no fields to update")
		return SliderRecord{}, verr
	}
	set["updated_at"] = time.Now().UTC()

	var updated models.Slider
	err = s.sliders().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return SliderRecord{}, ErrNotFound
	}
	if err != nil {
		return SliderRecord{}, fmt.Errorf("update slider: %w", err)
	}
	return formatSlider(updated), nil
}

// DeleteSlider removes the record and closes the gap it leaves.
func (s *Store) DeleteSlider(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return ErrInvalidID
	}

	s.sliderMu.Lock()
	defer s.sliderMu.Unlock()

	var existing models.Slider
	err = s.sliders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get slider: %w", err)
	}

	if _, err := s.sliders().DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("delete slider: %w", err)
	}

	if _, err := s.sliders().UpdateMany(ctx,
		bson.M{"order": bson.M{"$gt": existing.Order}},
		bson.M{"$inc": bson.M{"order": -1}},
	); err != nil {
		return fmt.Errorf("close order gap: %w", err)
	}
	return nil
}

// parseReorderIDs validates a posted id list: hex-parseable, duplicate-free.
func parseReorderIDs(ids []string) ([]primitive.ObjectID, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, raw := range ids {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return nil, ErrInvalidID
		}
		if seen[id] {
			verr := &ValidationError{}
			verr.add("items", "duplicate id "+id.Hex())
			return nil, verr
		}
		seen[id] = true
		objectIDs = append(objectIDs, id)
	}
	return objectIDs, nil
}

// ReorderSliders rewrites the whole sequence from a drag-and-drop result:
// position in ids becomes the new order, 1-based. The posted list must name
// every slider exactly once; a partial or duplicated list would leave the
// untouched documents holding colliding orders, so it is rejected before any
// write. The mutex keeps two admins from interleaving.
func (s *Store) ReorderSliders(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		verr := &ValidationError{}
		verr.add("items", "required")
		return verr
	}

	objectIDs, err := parseReorderIDs(ids)
	if err != nil {
		return err
	}

	s.sliderMu.Lock()
	defer s.sliderMu.Unlock()

	total, err := s.sliders().CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count sliders: %w", err)
	}
	if int64(len(objectIDs)) != total {
		verr := &ValidationError{}
		verr.add("items", fmt.Sprintf("expected %d ids, got %d", total, len(objectIDs)))
		return verr
	}

	now := time.Now().UTC()
	for position, id := range objectIDs {
		res, err := s.sliders().UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"order": position + 1, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("reorder slider %s: %w", id.Hex(), err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// ToggleSliderStatus flips active/inactive without touching the ordering.
func (s *Store) ToggleSliderStatus(ctx context.Context, id string) (SliderRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return SliderRecord{}, ErrInvalidID
	}

	var existing models.Slider
	err = s.sliders().FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return SliderRecord{}, ErrNotFound
	}
	if err != nil {
		return SliderRecord{}, fmt.Errorf("get slider: %w", err)
	}

	status := models.SliderActive
	if existing.Status == models.SliderActive {
		status = models.SliderInactive
	}

	var updated models.Slider
	err = s.sliders().FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return SliderRecord{}, fmt.Errorf("toggle slider: %w", err)
	}
	return formatSlider(updated), nil
}
