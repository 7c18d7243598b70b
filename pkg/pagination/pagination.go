package pagination

import (
	"net/url"
	"strconv"

	"github.com/slatehq/slate/pkg/query"
)

// PageRequest represents a client request for a slice of data with optional
// search and sorting. Skip is the number of records to pass over; Limit is
// the maximum number of records to return.
type PageRequest struct {
	Skip   int               `json:"skip"`
	Limit  int               `json:"limit"`
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps the request to valid values based on the config:
// negative skip becomes 0, non-positive limit becomes the default, and
// limit is capped at the configured maximum.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Skip < 0 {
		r.Skip = 0
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: skip, limit, search.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	skip, _ := strconv.Atoi(values.Get("skip"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Skip:   skip,
		Limit:  limit,
		Search: search,
	}

	req.Normalize(cfg)
	return req
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	Total    int  `json:"total"`
	Skip     int  `json:"skip"`
	Limit    int  `json:"limit"`
	Returned int  `json:"returned"`
	HasMore  bool `json:"has_more"`
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewPageResult creates a PageResult with calculated metadata. A nil data
// slice is normalized to an empty slice so it serializes as [].
func NewPageResult[T any](data []T, total, skip, limit int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data: data,
		Pagination: Meta{
			Total:    total,
			Skip:     skip,
			Limit:    limit,
			Returned: len(data),
			HasMore:  skip+len(data) < total,
		},
	}
}
