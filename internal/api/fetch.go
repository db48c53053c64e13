package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
)

// ErrStaleResponse marks a fetch whose response arrived after a later fetch
// for the same list view had already completed. The caller must drop it.
var ErrStaleResponse = errors.New("stale list response")

// ListPage is one page of listings plus the server's total count.
type ListPage struct {
	Items      []model.Listing `json:"items"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// TotalPages is never below 1: an empty result still renders as one page.
func (p ListPage) TotalPages() int {
	size := p.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	n := (p.TotalCount + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// ListFetcher issues paged listing requests for one list view and rejects
// out-of-order responses: each Fetch gets an increasing sequence number, and
// a response whose sequence is below the highest successfully completed one
// is discarded instead of overwriting newer results.
//
// One fetcher serves one logical view (the storefront grid, the wishlist,
// "my listings"); separate views get separate fetchers.
type ListFetcher struct {
	client *Client
	path   string

	mu      sync.Mutex
	nextSeq uint64
	applied uint64
}

func NewListFetcher(client *Client, path string) *ListFetcher {
	return &ListFetcher{client: client, path: path}
}

func (f *ListFetcher) Fetch(ctx context.Context, q ListQuery) (ListPage, error) {
	f.mu.Lock()
	f.nextSeq++
	seq := f.nextSeq
	f.mu.Unlock()

	var raw json.RawMessage
	err := f.client.get(ctx, f.path, q.Values(), &raw)
	if err != nil {
		// Errors never advance the applied sequence: the view keeps
		// whatever it was already showing.
		return ListPage{}, err
	}

	items, count, err := decodeListBody(raw)
	if err != nil {
		return ListPage{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq < f.applied {
		return ListPage{}, ErrStaleResponse
	}
	f.applied = seq

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	return ListPage{Items: items, TotalCount: count, Page: page, PageSize: size}, nil
}

// decodeListBody accepts both response shapes the server is known to
// produce: the paginated envelope {"results": [...], "count": n} and a bare
// array (unpaginated endpoints like favorites).
func decodeListBody(raw json.RawMessage) ([]model.Listing, int, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []model.Listing
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, fmt.Errorf("decode listing array: %w", err)
		}
		return items, len(items), nil
	}
	var env struct {
		Results []model.Listing `json:"results"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, 0, fmt.Errorf("decode listing page: %w", err)
	}
	return env.Results, env.Count, nil
}
