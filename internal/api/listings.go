package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
)

// ListingsPath is the collection endpoint; the package-level fetchers for
// the storefront views are all built on it.
const ListingsPath = "/api/shoes/"

// Listing fetches one listing by id, including the gallery and the liked
// flag for the current session.
func (c *Client) Listing(ctx context.Context, id int64) (model.Listing, error) {
	var l model.Listing
	err := c.get(ctx, fmt.Sprintf("/api/shoes/%d/", id), nil, &l)
	return l, err
}

// Favorites returns the listings the current account has liked. The
// endpoint is unpaginated for small collections, paginated past that, so
// both body shapes are accepted.
func (c *Client) Favorites(ctx context.Context) ([]model.Listing, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/shoes/favorites/", nil, &raw); err != nil {
		return nil, err
	}
	items, _, err := decodeListBody(raw)
	return items, err
}

// ToggleLike flips the liked flag server-side. No request or response body;
// the server toggles based on the credential.
func (c *Client) ToggleLike(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/api/shoes/%d/like/", id), nil, nil)
}

// PublishListing creates a listing owned by the current account.
func (c *Client) PublishListing(ctx context.Context, nl model.NewListing) (model.Listing, error) {
	var l model.Listing
	err := c.post(ctx, "/api/shoes/", nl, &l)
	return l, err
}

func (c *Client) DeleteListing(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/shoes/%d/", id))
}
