package api

import (
	"testing"
)

func TestListQueryFilterChangeResetsPage(t *testing.T) {
	q := NewListQuery().WithPage(3)
	if q.Page != 3 {
		t.Fatalf("expected page 3, got %d", q.Page)
	}

	q2 := q.WithFilter("brand", "Nike")
	if q2.Page != 1 {
		t.Fatalf("changing a filter must reset page to 1, got %d", q2.Page)
	}
	// Original is unchanged (value semantics).
	if q.Page != 3 {
		t.Fatalf("source query mutated: page %d", q.Page)
	}

	if q3 := q2.WithSearch("jordan"); q3.Page != 1 {
		t.Fatalf("changing search must reset page, got %d", q3.Page)
	}
	if q3 := q2.WithOrdering("price"); q3.Page != 1 {
		t.Fatalf("changing ordering must reset page, got %d", q3.Page)
	}
	if q3 := q2.WithPageSize(24); q3.Page != 1 {
		t.Fatalf("changing page size must reset page, got %d", q3.Page)
	}
}

func TestListQueryValues(t *testing.T) {
	q := NewListQuery().
		WithSearch("air max").
		WithFilter("brand", "Nike").
		WithFilter("condition", "").
		WithPage(2)

	v := q.Values()
	if got := v.Get("search"); got != "air max" {
		t.Fatalf("search: got %q", got)
	}
	if got := v.Get("brand"); got != "Nike" {
		t.Fatalf("brand: got %q", got)
	}
	if _, ok := v["condition"]; ok {
		t.Fatalf("empty filter must be omitted")
	}
	if _, ok := v["ordering"]; ok {
		t.Fatalf("unset ordering must be omitted")
	}
	if got := v.Get("page"); got != "2" {
		t.Fatalf("page: got %q", got)
	}
	if got := v.Get("page_size"); got != "12" {
		t.Fatalf("page_size: got %q", got)
	}
}

func TestListQueryDefaultOrderingOmitted(t *testing.T) {
	q := NewListQuery().WithOrdering(DefaultOrdering)
	if _, ok := q.Values()["ordering"]; ok {
		t.Fatalf("default ordering must be omitted")
	}
	q = q.WithOrdering("price")
	if got := q.Values().Get("ordering"); got != "price" {
		t.Fatalf("non-default ordering must be sent, got %q", got)
	}
}

func TestListQuerySignatureStable(t *testing.T) {
	a := NewListQuery().WithFilter("brand", "Nike").WithFilter("condition", "Used").WithSearch("dunk")
	b := NewListQuery().WithSearch("dunk").WithFilter("condition", "Used").WithFilter("brand", "Nike")

	if a.Signature() != b.Signature() {
		t.Fatalf("logically identical queries must share a signature:\n a: %s\n b: %s", a.Signature(), b.Signature())
	}
	if a.Signature() == a.WithPage(2).Signature() {
		t.Fatalf("page change must change the signature")
	}
}

func TestListQueryPageClamp(t *testing.T) {
	q := NewListQuery().WithPage(0)
	if q.Page != 1 {
		t.Fatalf("page below 1 clamps to 1, got %d", q.Page)
	}
	q = NewListQuery().WithPageSize(-3)
	if q.PageSize != DefaultPageSize {
		t.Fatalf("invalid page size falls back to default, got %d", q.PageSize)
	}
}
