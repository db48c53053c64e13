package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
)

// Profile fetches a seller page by username.
func (c *Client) Profile(ctx context.Context, username string) (model.Profile, error) {
	var p model.Profile
	err := c.get(ctx, "/api/profiles/"+url.PathEscape(username)+"/", nil, &p)
	return p, err
}

// UpdateProfile patches the current account's profile. The server rejects
// edits to anyone else's profile with an AuthError.
func (c *Client) UpdateProfile(ctx context.Context, username string, patch model.ProfilePatch) (model.Profile, error) {
	var p model.Profile
	err := c.patch(ctx, "/api/profiles/"+url.PathEscape(username)+"/", patch, &p)
	return p, err
}

// SubmitReview leaves a rating for a seller. Reviewing the same seller
// twice yields a ConflictError; reviewing yourself a ValidationError. Both
// are enforced server-side and surfaced verbatim.
func (c *Client) SubmitReview(ctx context.Context, sellerID int64, rating int, comment string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	body := struct {
		Seller  int64  `json:"seller"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}{Seller: sellerID, Rating: rating, Comment: comment}

	var r model.Review
	err := c.post(ctx, "/api/reviews/", body, &r)
	return r, err
}
