package tui

import (
	"context"
	"errors"
	"time"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type sessionRestoredMsg struct{}

type logoutDoneMsg struct{}

type pageLoadedMsg struct {
	page  api.ListPage
	query api.ListQuery
}

type pageErrMsg struct{ err error }

// staleDropMsg marks a fetch whose response lost the race; Update ignores it.
type staleDropMsg struct{}

type detailLoadedMsg struct{ listing model.Listing }

type detailErrMsg struct{ err error }

type likeSettledMsg struct {
	id  int64
	err error
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func (m *appModel) restoreCmd() tea.Cmd {
	svc := m.deps.Service
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		svc.Restore(ctx)
		return sessionRestoredMsg{}
	}
}

func (m *appModel) logoutCmd() tea.Cmd {
	svc := m.deps.Service
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		svc.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m *appModel) fetchCmd(q api.ListQuery) tea.Cmd {
	fetcher := m.fetcher
	cache := m.deps.Cache
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		page, err := fetcher.Fetch(ctx, q)
		if errors.Is(err, api.ErrStaleResponse) {
			return staleDropMsg{}
		}
		if err != nil {
			return pageErrMsg{err: err}
		}
		_ = cache.Remember(ctx, page.Items...)
		return pageLoadedMsg{page: page, query: q}
	}
}

func (m *appModel) detailCmd(id int64) tea.Cmd {
	client := m.deps.Client
	cache := m.deps.Cache
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		l, err := client.Listing(ctx, id)
		if err != nil {
			return detailErrMsg{err: err}
		}
		_ = cache.Remember(ctx, l)
		_ = cache.MarkViewed(ctx, l.ID)
		return detailLoadedMsg{listing: l}
	}
}

// likeCmd settles one optimistic toggle. The optimistic flip itself happens
// inside Toggle (against the like board) before the network call; this
// command only reports the outcome so Update can surface rollbacks.
func (m *appModel) likeCmd(id int64, current bool) tea.Cmd {
	toggler := m.toggler
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		err := toggler.Toggle(ctx, id, current)
		return likeSettledMsg{id: id, err: err}
	}
}
