package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
)

// memLikes is a LikeState over a plain map for tests.
type memLikes struct {
	mu    sync.Mutex
	likes map[int64]bool
}

func newMemLikes() *memLikes { return &memLikes{likes: map[int64]bool{}} }

func (m *memLikes) SetLiked(id int64, liked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likes[id] = liked
}

func (m *memLikes) get(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[id]
}

func authed() bool    { return true }
func anonymous() bool { return false }

func TestToggleCommitsOnSuccess(t *testing.T) {
	var path string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), staticCreds("tok"))

	state := newMemLikes()
	tg := NewLikeToggler(c, state, authed)

	if err := tg.Toggle(context.Background(), 42, false); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !state.get(42) {
		t.Fatalf("expected liked=true after successful toggle")
	}
	if path != "/api/shoes/42/like/" {
		t.Fatalf("path: %q", path)
	}
	if tg.InFlight(42) {
		t.Fatalf("intent must be cleared after settling")
	}
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), staticCreds("tok"))

	state := newMemLikes()
	tg := NewLikeToggler(c, state, authed)

	err := tg.Toggle(context.Background(), 42, false)
	if err == nil {
		t.Fatalf("expected error")
	}
	if state.get(42) {
		t.Fatalf("failed toggle must restore the previous value")
	}
	if tg.InFlight(42) {
		t.Fatalf("intent must be cleared after rollback")
	}
}

func TestToggleRejectsAnonymous(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), staticCreds(""))

	state := newMemLikes()
	tg := NewLikeToggler(c, state, anonymous)

	if err := tg.Toggle(context.Background(), 42, false); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if called {
		t.Fatalf("anonymous toggle must never reach the network")
	}
	if state.get(42) {
		t.Fatalf("anonymous toggle must not change state")
	}
}

func TestToggleRejectsSecondInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusNoContent)
	}), staticCreds("tok"))

	state := newMemLikes()
	tg := NewLikeToggler(c, state, authed)

	firstDone := make(chan error, 1)
	go func() { firstDone <- tg.Toggle(context.Background(), 42, false) }()
	<-entered

	// Second toggle while the first is unsettled: rejected, no extra flip.
	if err := tg.Toggle(context.Background(), 42, true); !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("expected ErrToggleInFlight, got %v", err)
	}
	if !state.get(42) {
		t.Fatalf("rejected toggle must not undo the optimistic value")
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !state.get(42) {
		t.Fatalf("expected committed liked=true")
	}
}

func TestToggleIndependentEntities(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/shoes/1/like/" {
			close(entered)
			<-release
		}
		w.WriteHeader(http.StatusNoContent)
	}), staticCreds("tok"))

	state := newMemLikes()
	tg := NewLikeToggler(c, state, authed)

	firstDone := make(chan error, 1)
	go func() { firstDone <- tg.Toggle(context.Background(), 1, false) }()
	<-entered

	// Entity 1 in flight must not block entity 2.
	if err := tg.Toggle(context.Background(), 2, false); err != nil {
		t.Fatalf("independent entity toggle: %v", err)
	}
	if !state.get(2) {
		t.Fatalf("entity 2 not committed")
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
}
