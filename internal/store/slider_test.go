package store

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanMoveDown(t *testing.T) {
	// Moving 2 -> 5 pulls 3..5 up by one.
	window, ok := planMove(2, 5)
	if !ok {
		t.Fatal("expected a shift")
	}
	if window.low != 3 || window.high != 5 || window.delta != -1 {
		t.Fatalf("window = %+v", window)
	}
}

func TestPlanMoveUp(t *testing.T) {
	// Moving 5 -> 2 pushes 2..4 down by one.
	window, ok := planMove(5, 2)
	if !ok {
		t.Fatal("expected a shift")
	}
	if window.low != 2 || window.high != 4 || window.delta != +1 {
		t.Fatalf("window = %+v", window)
	}
}

func TestPlanMoveNoop(t *testing.T) {
	if _, ok := planMove(3, 3); ok {
		t.Fatal("same position should not shift anything")
	}
}

// Simulates the order columns after a move to check the dense 1..N invariant
// survives planMove.
func TestPlanMoveKeepsDenseSequence(t *testing.T) {
	apply := func(orders map[string]int, moved string, newOrder int) {
		window, ok := planMove(orders[moved], newOrder)
		if ok {
			for id, o := range orders {
				if id != moved && o >= window.low && o <= window.high {
					orders[id] = o + window.delta
				}
			}
		}
		orders[moved] = newOrder
	}

	orders := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	apply(orders, "a", 3)

	want := map[string]int{"a": 3, "b": 1, "c": 2, "d": 4}
	for id, o := range want {
		if orders[id] != o {
			t.Fatalf("after move: %v, want %v", orders, want)
		}
	}

	// Orders must still be a permutation of 1..N.
	seen := map[int]bool{}
	for _, o := range orders {
		if o < 1 || o > len(orders) || seen[o] {
			t.Fatalf("sequence not dense: %v", orders)
		}
		seen[o] = true
	}
}

func TestClampOrder(t *testing.T) {
	tests := []struct {
		order, count, want int
	}{
		{0, 5, 1},
		{-3, 5, 1},
		{3, 5, 3},
		{9, 5, 5},
		{1, 1, 1},
	}
	for _, tt := range tests {
		if got := clampOrder(tt.order, tt.count); got != tt.want {
			t.Fatalf("clampOrder(%d, %d) = %d, want %d", tt.order, tt.count, got, tt.want)
		}
	}
}

// A reorder list naming a slider twice would write two colliding positions,
// so duplicates have to be rejected before any write. The count check in
// ReorderSliders covers the subset case the same way.
func TestParseReorderIDsRejectsDuplicates(t *testing.T) {
	a := primitive.NewObjectID().Hex()
	b := primitive.NewObjectID().Hex()

	if _, err := parseReorderIDs([]string{a, b, a}); err == nil {
		t.Fatal("expected duplicate list to be rejected")
	} else {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestParseReorderIDsRejectsBadHex(t *testing.T) {
	if _, err := parseReorderIDs([]string{"zzz"}); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestParseReorderIDsKeepsOrder(t *testing.T) {
	raw := []string{
		primitive.NewObjectID().Hex(),
		primitive.NewObjectID().Hex(),
		primitive.NewObjectID().Hex(),
	}

	ids, err := parseReorderIDs(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != len(raw) {
		t.Fatalf("got %d ids, want %d", len(ids), len(raw))
	}
	for i, id := range ids {
		if id.Hex() != raw[i] {
			t.Fatalf("position %d: got %s, want %s", i, id.Hex(), raw[i])
		}
	}
}
