package pagination

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/elib/pkg/query"
)

// ErrInvalidQuery reports a page or page_size query value that is not an integer.
var ErrInvalidQuery = errors.New("invalid pagination query")

// SortFields decodes either a sort expression ("Title,-CreatedAt") or an
// array of SortField objects.
type SortFields []query.SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var expr string
	if err := json.Unmarshal(data, &expr); err == nil {
		*s = query.ParseSortFields(expr)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest asks for one page of a result set, optionally narrowed by a
// free-text search and ordered by sort fields.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize clamps the request into the bounds cfg allows. Pages start at 1;
// a missing page size takes the default and an oversized one is capped.
// Blank search text is dropped.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)

	if r.Search != nil {
		if s := strings.TrimSpace(*r.Search); s != "" {
			r.Search = &s
		} else {
			r.Search = nil
		}
	}
}

// PageRequestFromQuery reads page, page_size, search, and sort from query
// values and normalizes the result. Absent values take defaults; values that
// are present but not integers are rejected with ErrInvalidQuery.
func PageRequestFromQuery(values url.Values, cfg Config) (PageRequest, error) {
	page, err := intParam(values, "page")
	if err != nil {
		return PageRequest{}, err
	}
	pageSize, err := intParam(values, "page_size")
	if err != nil {
		return PageRequest{}, err
	}

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     query.ParseSortFields(values.Get("sort")),
	}
	if s := values.Get("search"); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req, nil
}

func intParam(values url.Values, key string) (int, error) {
	v := values.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidQuery, key, v)
	}
	return n, nil
}

// PageResult is one page of T with the metadata a client needs to page further.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult wraps data with paging metadata. TotalPages is never less
// than 1 and Data is never nil.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	pages := 1
	if pageSize > 0 && total > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
