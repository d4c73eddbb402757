package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductQueryEmpty(t *testing.T) {
	query := buildProductQuery(ProductFilter{}, nil)
	if len(query) != 0 {
		t.Fatalf("empty filter should build an empty query, got %v", query)
	}
}

func TestBuildProductQueryCategoryExpansion(t *testing.T) {
	parent := primitive.NewObjectID()
	child := primitive.NewObjectID()

	query := buildProductQuery(ProductFilter{Category: parent.Hex()}, []primitive.ObjectID{parent, child})

	or, ok := query["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or clause, got %v", query)
	}
	// Two clauses per id (ObjectID + hex) plus the legacy free-text match.
	if len(or) != 5 {
		t.Fatalf("expected 5 alternatives, got %d: %v", len(or), or)
	}
	if or[0]["category_id"] != parent {
		t.Fatalf("first alternative should match the raw ObjectID, got %v", or[0])
	}
	if or[1]["category_id"] != parent.Hex() {
		t.Fatalf("second alternative should match the hex form, got %v", or[1])
	}
	if or[4]["category"] != parent.Hex() {
		t.Fatalf("last alternative should match the legacy field, got %v", or[4])
	}
}

func TestBuildProductQueryMalformedPriceDropped(t *testing.T) {
	query := buildProductQuery(ProductFilter{MaxPrice: "cheap"}, nil)
	if _, ok := query["price"]; ok {
		t.Fatal("malformed max_price should be dropped, not error")
	}
}

func TestBuildProductQueryCombined(t *testing.T) {
	query := buildProductQuery(ProductFilter{
		Search:   "shoe",
		MaxPrice: "99.5",
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
	}, nil)

	name, ok := query["name"].(bson.M)
	if !ok || name["$regex"] != "shoe" || name["$options"] != "i" {
		t.Fatalf("search clause wrong: %v", query["name"])
	}

	price, ok := query["price"].(bson.M)
	if !ok || price["$lte"] != 99.5 {
		t.Fatalf("price clause wrong: %v", query["price"])
	}

	created, ok := query["created_at"].(bson.M)
	if !ok {
		t.Fatalf("created_at clause missing: %v", query)
	}
	gte := created["$gte"].(time.Time)
	lte := created["$lte"].(time.Time)
	if gte != time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("from bound = %v", gte)
	}
	if lte != time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC) {
		t.Fatalf("to bound = %v", lte)
	}
}

func TestCreatedRangeMalformedDates(t *testing.T) {
	if bounds := createdRange("not-a-date", "2025/01/31"); len(bounds) != 0 {
		t.Fatalf("malformed dates should yield no bounds, got %v", bounds)
	}
}

func TestProductSort(t *testing.T) {
	if got := productSort("price_low"); got[0].Key != "price" || got[0].Value != 1 {
		t.Fatalf("price_low sort = %v", got)
	}
	if got := productSort("price_high"); got[0].Key != "price" || got[0].Value != -1 {
		t.Fatalf("price_high sort = %v", got)
	}
	if got := productSort(""); got[0].Key != "created_at" || got[0].Value != -1 {
		t.Fatalf("default sort = %v", got)
	}
	if got := productSort("bogus"); got[0].Key != "created_at" {
		t.Fatalf("unknown sort should fall back to newest, got %v", got)
	}
}
