package store

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" shoes ", "sale", "shoes", "", "  ", "new"})
	want := []string{"shoes", "sale", "new"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeTags = %v, want %v", got, want)
	}
}

func TestNormalizeTagsNil(t *testing.T) {
	if got := normalizeTags(nil); len(got) != 0 {
		t.Fatalf("nil input should yield empty slice, got %v", got)
	}
}
