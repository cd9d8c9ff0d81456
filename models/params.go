package models

import (
	"fmt"
	"net/http"
	"strconv"
)

// ListParams carries pagination, sorting, and the filters common to
// the list endpoints. Parsed straight from the query string.
type ListParams struct {
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
	Status   string
	Priority string
	Search   string
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParseListParams reads pagination and filter query parameters,
// clamping page size to maxPageSize.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()
	p := ListParams{
		Page:     1,
		Limit:    defaultPageSize,
		SortBy:   "created_at",
		SortDesc: true,
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxPageSize {
			p.Limit = maxPageSize
		}
	}
	if v := q.Get("sort_by"); v != "" {
		p.SortBy = v
	}
	if v := q.Get("sort_dir"); v == "asc" {
		p.SortDesc = false
	}
	return p
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Order returns the ORDER BY clause. SortBy is validated against the
// allowed column list before being interpolated.
func (p ListParams) Order(allowed map[string]bool) string {
	col := p.SortBy
	if !allowed[col] {
		col = "created_at"
	}
	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// ListResponse is the envelope every paginated endpoint returns.
type ListResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}
