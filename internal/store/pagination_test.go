package store

import "testing"

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 25, 2, 10)
	if page.Total != 25 || page.Page != 2 || page.PageSize != 10 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", page.TotalPages)
	}
	if !page.HasPrev || page.HasNext != true {
		t.Fatalf("nav flags wrong: %+v", page)
	}
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage([]string{}, 0, 1, 10)
	if page.TotalPages != 1 {
		t.Fatalf("empty result should report one page, got %d", page.TotalPages)
	}
	if page.HasPrev || page.HasNext {
		t.Fatalf("empty result should have no nav: %+v", page)
	}
	if page.Items == nil {
		t.Fatal("items should not be nil")
	}
}

func TestNewPageLastPage(t *testing.T) {
	page := NewPage([]int{1}, 21, 3, 10)
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", page.TotalPages)
	}
	if !page.HasPrev {
		t.Fatal("expected has_prev on last page")
	}
	if page.HasNext {
		t.Fatal("did not expect has_next on last page")
	}
}

func TestSkipLimit(t *testing.T) {
	skip, limit := skipLimit(3, 12)
	if skip != 24 || limit != 12 {
		t.Fatalf("skipLimit(3, 12) = (%d, %d)", skip, limit)
	}

	// Pages below 1 clamp to the first page.
	skip, _ = skipLimit(0, 12)
	if skip != 0 {
		t.Fatalf("page 0 should clamp to skip 0, got %d", skip)
	}
}
