package tui

import (
	"testing"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestLikeBoardOverlaysFetchedValue(t *testing.T) {
	b := newLikeBoard()

	// No overlay yet: the fetched value wins.
	if !b.Liked(7, true) {
		t.Fatal("expected fallback true before any toggle")
	}
	if b.Liked(7, false) {
		t.Fatal("expected fallback false before any toggle")
	}

	// After a toggle the overlay wins, whatever the fetch said.
	b.SetLiked(7, true)
	if !b.Liked(7, false) {
		t.Fatal("expected overlay true to shadow fallback false")
	}
	b.SetLiked(7, false)
	if b.Liked(7, true) {
		t.Fatal("expected overlay false to shadow fallback true")
	}

	// Other entities are untouched.
	if !b.Liked(8, true) {
		t.Fatal("expected untouched entity to keep its fallback")
	}
}

func TestPriceLabel(t *testing.T) {
	cases := []struct {
		currency string
		price    string
		want     string
	}{
		{"EUR", "120.00", "€120.00"},
		{"USD", "99.50", "$99.50"},
		{"GBP", "80.00", "£80.00"},
		{"", "15.00", "€15.00"},
	}
	for _, c := range cases {
		got := priceLabel(model.Listing{Currency: c.currency, Price: c.price})
		if got != c.want {
			t.Errorf("priceLabel(%q, %q) = %q, want %q", c.currency, c.price, got, c.want)
		}
	}
}

func TestSellerLabelBlankFallback(t *testing.T) {
	if got := sellerLabel(model.Listing{SellerUsername: "alice"}); got != "alice" {
		t.Fatalf("sellerLabel = %q, want alice", got)
	}
	if got := sellerLabel(model.Listing{SellerUsername: "  "}); got != "unknown seller" {
		t.Fatalf("sellerLabel = %q, want unknown seller", got)
	}
}

func TestFitLinePadsAndTruncates(t *testing.T) {
	if got := fitLine("ab", 5); got != "ab   " {
		t.Fatalf("pad: got %q", got)
	}
	if got := fitLine("abcdef", 4); got != "abcd" {
		t.Fatalf("truncate: got %q", got)
	}
	if got := fitLine("abcd", 4); got != "abcd" {
		t.Fatalf("exact: got %q", got)
	}

	// Width is measured, not counted: styled text must still fit.
	styled := likedStyle.Render("♥") + " wide"
	fitted := fitLine(styled, 3)
	if w := xansi.StringWidth(fitted); w != 3 {
		t.Fatalf("styled truncate width = %d, want 3", w)
	}
}

func TestNewListChrome(t *testing.T) {
	l := newList(nil, newListingDelegate())

	if l.FilteringEnabled() {
		t.Fatal("expected local filtering off; search is remote")
	}
	if keys := l.KeyMap.Quit.Keys(); len(keys) != 1 || keys[0] != "q" {
		t.Fatalf("expected quit bound to q only; got %v", keys)
	}
}
