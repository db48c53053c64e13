package api

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 12

	// DefaultOrdering is what the server applies when no ordering is sent
	// (newest first), so sending it would be redundant.
	DefaultOrdering = "-created_at"
)

// ListQuery is the logical state of a list view: free-text search, exact
// filters (brand, condition, seller__username, ...), ordering, and the page
// window.
//
// ListQuery is a value type; the With helpers return modified copies and
// reset Page to 1 whenever anything other than the page changes, so a filter
// change can never leave the view stranded on a page that no longer exists.
type ListQuery struct {
	Search   string
	Filters  map[string]string
	Ordering string
	Page     int
	PageSize int
}

func NewListQuery() ListQuery {
	return ListQuery{Page: 1, PageSize: DefaultPageSize}
}

func (q ListQuery) clone() ListQuery {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		out.Filters[k] = v
	}
	return out
}

func (q ListQuery) WithSearch(search string) ListQuery {
	out := q.clone()
	out.Search = strings.TrimSpace(search)
	out.Page = 1
	return out
}

// WithFilter sets one exact-match filter. An empty value removes the filter.
func (q ListQuery) WithFilter(key, value string) ListQuery {
	out := q.clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(out.Filters, key)
	} else {
		out.Filters[key] = value
	}
	out.Page = 1
	return out
}

func (q ListQuery) WithOrdering(ordering string) ListQuery {
	out := q.clone()
	out.Ordering = strings.TrimSpace(ordering)
	out.Page = 1
	return out
}

func (q ListQuery) WithPage(page int) ListQuery {
	out := q.clone()
	if page < 1 {
		page = 1
	}
	out.Page = page
	return out
}

func (q ListQuery) WithPageSize(size int) ListQuery {
	out := q.clone()
	if size < 1 {
		size = DefaultPageSize
	}
	out.PageSize = size
	out.Page = 1
	return out
}

// Values maps the query onto request parameters. Empty fields are omitted,
// the default ordering is omitted, page and page_size are always present.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if strings.TrimSpace(val) == "" {
			continue
		}
		v.Set(k, val)
	}
	if q.Ordering != "" && q.Ordering != DefaultOrdering {
		v.Set("ordering", q.Ordering)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(size))
	return v
}

// Signature is the canonical request string for this query. url.Values
// encodes keys in sorted order, so two logically identical queries always
// produce the same signature regardless of how their filter maps were built.
func (q ListQuery) Signature() string {
	return q.Values().Encode()
}
