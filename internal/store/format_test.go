package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestMainImage(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{"empty", nil, ""},
		{"single local", []string{"/media/shoe.jpg"}, "/media/shoe.jpg"},
		{"first local wins over url", []string{"https://cdn.example.com/a.jpg", "/media/b.jpg"}, "/media/b.jpg"},
		{"local with spaces skipped", []string{"/media/red shoe.jpg", "/media/blue.jpg"}, "/media/blue.jpg"},
		{"only spaced local gets encoded", []string{"/media/red shoe.jpg"}, "/media/red%20shoe.jpg"},
		{"only urls falls back to first", []string{"https://cdn.example.com/a b.jpg", "https://cdn.example.com/c.jpg"}, "https://cdn.example.com/a%20b.jpg"},
		{"url untouched when no spaces", []string{"https://cdn.example.com/a.jpg"}, "https://cdn.example.com/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mainImage(tt.images); got != tt.want {
				t.Fatalf("mainImage(%v) = %q, want %q", tt.images, got, tt.want)
			}
		})
	}
}

func TestCleanImages(t *testing.T) {
	got := cleanImages([]string{"  /a.jpg ", "", "   ", "/b.jpg"})
	if len(got) != 2 || got[0] != "/a.jpg" || got[1] != "/b.jpg" {
		t.Fatalf("cleanImages = %v", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Time{}); got != "" {
		t.Fatalf("zero time formatted as %q, want empty", got)
	}

	stamp := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := formatTime(stamp); got != "2025-03-14T09:26:53Z" {
		t.Fatalf("formatTime = %q", got)
	}
}

func TestHexOrNil(t *testing.T) {
	if hexOrNil(nil) != nil {
		t.Fatal("expected nil for nil id")
	}

	id := primitive.NewObjectID()
	got := hexOrNil(&id)
	if got == nil || *got != id.Hex() {
		t.Fatalf("hexOrNil = %v, want %s", got, id.Hex())
	}
}

func TestFormatProductDefaults(t *testing.T) {
	p := models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Sneaker",
		Price: 49.9,
	}

	record := formatProduct(p)
	if record.Tags == nil {
		t.Fatal("tags should be an empty slice, not nil")
	}
	if record.Images == nil {
		t.Fatal("images should be an empty slice, not nil")
	}
	if record.MainImage != "" {
		t.Fatalf("main image = %q, want empty", record.MainImage)
	}
	if record.CategoryID != nil {
		t.Fatal("category id should be nil")
	}
}
