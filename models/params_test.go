package models

import (
	"net/http/httptest"
	"testing"
)

func TestParseListParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/workorders?page=3&limit=50&status=completed&search=brake&sort_by=code&sort_dir=asc", nil)
	p := ParseListParams(r)

	if p.Page != 3 || p.Limit != 50 {
		t.Errorf("pagination = page %d limit %d", p.Page, p.Limit)
	}
	if p.Status != "completed" || p.Search != "brake" {
		t.Errorf("filters = status %q search %q", p.Status, p.Search)
	}
	if p.SortBy != "code" || p.SortDesc {
		t.Errorf("sort = %q desc=%v", p.SortBy, p.SortDesc)
	}
	if p.Offset() != 100 {
		t.Errorf("Offset() = %d, expected 100", p.Offset())
	}
}

func TestParseListParamsDefaultsAndClamp(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/workorders?page=0&limit=5000", nil)
	p := ParseListParams(r)

	if p.Page != 1 {
		t.Errorf("non-positive page should default to 1, got %d", p.Page)
	}
	if p.Limit != maxPageSize {
		t.Errorf("limit should clamp to %d, got %d", maxPageSize, p.Limit)
	}
	if p.SortBy != "created_at" || !p.SortDesc {
		t.Errorf("default sort = %q desc=%v", p.SortBy, p.SortDesc)
	}
}

func TestOrderRejectsUnknownColumn(t *testing.T) {
	p := ListParams{SortBy: "id; DROP TABLE work_orders", SortDesc: false}
	got := p.Order(map[string]bool{"created_at": true, "code": true})
	if got != "created_at ASC" {
		t.Errorf("Order() = %q, unknown columns must fall back to created_at", got)
	}
}
