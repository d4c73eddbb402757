package store

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFilter is the flat set of optional list filters, raw as supplied by
// the caller. Unparsable values are dropped rather than rejected (permissive
// filtering): a bad category id or price simply widens the result set.
type ProductFilter struct {
	Category string
	Search   string
	MaxPrice string
	Sort     string // price_low, price_high, newest (default newest)
	DateFrom string // 2006-01-02, inclusive from 00:00:00
	DateTo   string // 2006-01-02, inclusive until 23:59:59
	Page     int64
	PageSize int64
}

const dateLayout = "2006-01-02"

// buildProductQuery combines the supplied filters into one AND expression.
// categoryIDs is the already expanded closed set (the category itself plus
// all descendants); it is empty when the category input was missing or
// malformed, in which case the category clause is omitted entirely.
func buildProductQuery(f ProductFilter, categoryIDs []primitive.ObjectID) bson.M {
	query := bson.M{}

	if len(categoryIDs) > 0 {
		// Tolerate the reference being stored as an ObjectID or its hex
		// form, and keep matching the legacy free-text category field.
		or := make([]bson.M, 0, 2*len(categoryIDs)+1)
		for _, id := range categoryIDs {
			or = append(or,
				bson.M{"category_id": id},
				bson.M{"category_id": id.Hex()},
			)
		}
		or = append(or, bson.M{"category": f.Category})
		query["$or"] = or
	}

	if f.Search != "" {
		query["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	if f.MaxPrice != "" {
		if ceiling, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
			query["price"] = bson.M{"$lte": ceiling}
		}
	}

	if created := createdRange(f.DateFrom, f.DateTo); len(created) > 0 {
		query["created_at"] = created
	}

	return query
}

func createdRange(from, to string) bson.M {
	bounds := bson.M{}
	if from != "" {
		if t, err := time.Parse(dateLayout, from); err == nil {
			bounds["$gte"] = t
		}
	}
	if to != "" {
		if t, err := time.Parse(dateLayout, to); err == nil {
			bounds["$lte"] = t.Add(24*time.Hour - time.Second)
		}
	}
	return bounds
}

func productSort(sort string) bson.D {
	switch sort {
	case "price_low":
		return bson.D{{Key: "price", Value: 1}}
	case "price_high":
		return bson.D{{Key: "price", Value: -1}}
	default: // newest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
