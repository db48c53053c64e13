package tui

import (
	"strings"
	"sync"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

// likeBoard is the TUI's local view of the liked flag, overlaying whatever
// the last fetch returned. The optimistic toggler flips it from command
// goroutines, Update reads it on render, so it carries its own lock.
type likeBoard struct {
	mu    sync.Mutex
	likes map[int64]bool
}

func newLikeBoard() *likeBoard {
	return &likeBoard{likes: map[int64]bool{}}
}

func (b *likeBoard) SetLiked(id int64, liked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.likes[id] = liked
}

// Liked returns the overlay value when one exists, else the fallback from
// the fetched listing.
func (b *likeBoard) Liked(id int64, fallback bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.likes[id]; ok {
		return v
	}
	return fallback
}

type listingItem struct {
	listing model.Listing
	likes   *likeBoard
}

func (i listingItem) liked() bool {
	return i.likes.Liked(i.listing.ID, i.listing.Liked)
}

func (i listingItem) FilterValue() string {
	return i.listing.Title + " " + i.listing.Brand
}

func currencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "GBP":
		return "£"
	default:
		return "€"
	}
}

func priceLabel(l model.Listing) string {
	return currencySymbol(l.Currency) + l.Price
}

func sellerLabel(l model.Listing) string {
	if strings.TrimSpace(l.SellerUsername) == "" {
		return "unknown seller"
	}
	return l.SellerUsername
}

func newList(items []list.Item, delegate list.ItemDelegate) list.Model {
	l := list.New(items, delegate, 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Remote search replaces local filtering; '/' is bound to the search input.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("listing", "listings")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	return l
}
