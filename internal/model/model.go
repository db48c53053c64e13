package model

import "time"

type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Identity is the account behind the current credential, as returned by the
// "who am I" endpoint.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Listing is a single shoe offered on the marketplace.
type Listing struct {
	ID             int64     `json:"id"`
	SellerID       int64     `json:"seller"`
	SellerUsername string    `json:"seller_username,omitempty"`
	SellerRating   float64   `json:"seller_rating,omitempty"`
	Title          string    `json:"title"`
	Brand          string    `json:"brand"`
	Price          string    `json:"price"`
	Currency       string    `json:"currency,omitempty"`
	Size           string    `json:"size"`
	Condition      Condition `json:"condition"`
	Description    string    `json:"description,omitempty"`

	// Image is the cover photo; Gallery holds the remaining shots in
	// seller-chosen order.
	Image   string         `json:"image,omitempty"`
	Gallery []GalleryImage `json:"gallery,omitempty"`

	Sold      bool `json:"is_sold"`
	Liked     bool `json:"liked"`
	ViewCount int  `json:"view_count,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type GalleryImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Profile is the public seller page: account basics plus aggregated review
// data computed server-side.
type Profile struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Location    string   `json:"location,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Verified    bool     `json:"is_verified"`
	Rating      float64  `json:"seller_rating"`
	ReviewCount int      `json:"review_count"`
	Reviews     []Review `json:"reviews_list,omitempty"`
}

type Review struct {
	ID               int64     `json:"id,omitempty"`
	SellerID         int64     `json:"seller,omitempty"`
	ReviewerUsername string    `json:"reviewer_username,omitempty"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// NewListing is the payload for publishing a listing. The seller is set
// server-side from the credential.
type NewListing struct {
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency,omitempty"`
	Size        string    `json:"size"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// ProfilePatch carries only the fields a profile update may change; nil
// pointers are omitted from the request body.
type ProfilePatch struct {
	Avatar      *string `json:"avatar,omitempty"`
	Location    *string `json:"location,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}
