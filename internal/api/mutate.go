package api

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrToggleInFlight rejects a second toggle for an entity whose first
	// toggle has not settled yet. No queuing: rapid double-invocation must
	// not stack mutations.
	ErrToggleInFlight = errors.New("toggle already in flight for this listing")

	// ErrAuthRequired is returned before any local state changes when the
	// session is anonymous; the caller redirects to login.
	ErrAuthRequired = errors.New("authentication required")
)

// LikeState is the caller's local view of the liked flag, flipped
// optimistically and restored on failure.
type LikeState interface {
	SetLiked(id int64, liked bool)
}

// likeIntent is one in-flight toggle; it exists from the optimistic flip
// until the server settles it.
type likeIntent struct {
	id   int64
	prev bool
	next bool
	seq  uint64
}

// LikeToggler applies the optimistic toggle protocol to the liked flag:
// flip locally, confirm remotely, roll back on failure. At most one toggle
// per listing may be in flight; different listings toggle independently.
type LikeToggler struct {
	client *Client
	state  LikeState

	// authed reports whether the current session is authenticated; the
	// toggler never issues a call for an anonymous session.
	authed func() bool

	mu       sync.Mutex
	seq      uint64
	inflight map[int64]likeIntent
}

func NewLikeToggler(client *Client, state LikeState, authed func() bool) *LikeToggler {
	return &LikeToggler{
		client:   client,
		state:    state,
		authed:   authed,
		inflight: map[int64]likeIntent{},
	}
}

// Toggle flips the liked flag for one listing. The local flip happens before
// the network call; on failure the previous value is restored before the
// error is returned, so the caller's state is always consistent with the
// outcome.
func (t *LikeToggler) Toggle(ctx context.Context, id int64, current bool) error {
	if t.authed != nil && !t.authed() {
		return ErrAuthRequired
	}

	t.mu.Lock()
	if _, busy := t.inflight[id]; busy {
		t.mu.Unlock()
		return ErrToggleInFlight
	}
	t.seq++
	intent := likeIntent{id: id, prev: current, next: !current, seq: t.seq}
	t.inflight[id] = intent
	t.mu.Unlock()

	t.state.SetLiked(id, intent.next)

	err := t.client.ToggleLike(ctx, id)

	t.mu.Lock()
	delete(t.inflight, id)
	t.mu.Unlock()

	if err != nil {
		t.state.SetLiked(id, intent.prev)
		return err
	}
	return nil
}

// InFlight reports whether a toggle for the listing is still unsettled.
func (t *LikeToggler) InFlight(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.inflight[id]
	return busy
}
