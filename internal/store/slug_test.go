package store

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Running Shoes", "running-shoes"},
		{"  Trimmed  ", "trimmed"},
		{"Multi   Space", "multi-space"},
		{"Ümlauts & Symbols!", "mlauts-symbols"},
		{"already-slugged", "already-slugged"},
		{"123 Numbers", "123-numbers"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Fatalf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
