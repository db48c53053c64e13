package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
	"github.com/GabrijelGordic/ShoeSteraj/internal/session"
	"github.com/GabrijelGordic/ShoeSteraj/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps is everything the storefront needs, constructed by the CLI and
// passed in explicitly.
type Deps struct {
	Client  *api.Client
	Session *session.Store
	Service *session.Service
	Cache   store.Cache
}

type view int

const (
	viewBrowse view = iota
	viewDetail
)

// Brand shortcuts offered by the storefront filter; mirrors the designers
// the marketplace curates.
var brandCycle = []string{"", "Nike", "Adidas", "Jordan", "Yeezy", "New Balance"}

var orderingCycle = []string{"", "price", "-price", "title"}

type appModel struct {
	deps Deps

	width  int
	height int

	view view

	query   api.ListQuery
	fetcher *api.ListFetcher
	toggler *api.LikeToggler
	likes   *likeBoard

	listings list.Model
	search   textinput.Model
	spin     spinner.Model

	searching bool
	loading   bool

	page   api.ListPage
	detail *model.Listing

	brandIdx int
	orderIdx int

	statusLine string
	statusErr  bool
}

func newAppModel(deps Deps) *appModel {
	likes := newLikeBoard()

	m := &appModel{
		deps:    deps,
		query:   api.NewListQuery(),
		fetcher: api.NewListFetcher(deps.Client, api.ListingsPath),
		likes:   likes,
	}
	m.toggler = api.NewLikeToggler(deps.Client, likes, deps.Session.Authenticated)

	m.listings = newList(nil, newListingDelegate())

	m.search = textinput.New()
	m.search.Placeholder = "Search the collection..."
	m.search.CharLimit = 80

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return m
}

// Run starts the interactive storefront and blocks until the user quits.
func Run(deps Deps) error {
	m := newAppModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *appModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.restoreCmd(), m.fetchCmd(m.query), m.spin.Tick)
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		// Liked flags depend on the credential, so the first restore
		// refreshes the page for the now-known identity.
		m.loading = true
		return m, tea.Batch(m.fetchCmd(m.query), m.spin.Tick)

	case logoutDoneMsg:
		m.setStatus("logged out", false)
		m.loading = true
		return m, tea.Batch(m.fetchCmd(m.query), m.spin.Tick)

	case pageLoadedMsg:
		m.loading = false
		m.page = msg.page
		m.query = msg.query
		m.refreshListings()
		return m, nil

	case staleDropMsg:
		// A newer fetch already completed; nothing to do.
		return m, nil

	case pageErrMsg:
		// Keep whatever the view was already showing.
		m.loading = false
		m.setStatus(msg.err.Error(), true)
		return m, nil

	case detailLoadedMsg:
		l := msg.listing
		m.detail = &l
		m.view = viewDetail
		return m, nil

	case detailErrMsg:
		m.setStatus(msg.err.Error(), true)
		return m, nil

	case likeSettledMsg:
		return m.settleLike(msg), nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.listings, cmd = m.listings.Update(msg)
	return m, cmd
}

func (m *appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, m.applyQuery(m.query.WithSearch(m.search.Value()))
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace":
		if m.view == viewDetail {
			m.view = viewBrowse
			m.detail = nil
			return m, nil
		}

	case "/":
		if m.view == viewBrowse {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}

	case "enter":
		if m.view == viewBrowse {
			if it, ok := m.listings.SelectedItem().(listingItem); ok {
				return m, m.detailCmd(it.listing.ID)
			}
		}

	case "r":
		return m, m.applyQuery(m.query)

	case "b":
		if m.view == viewBrowse {
			m.brandIdx = (m.brandIdx + 1) % len(brandCycle)
			return m, m.applyQuery(m.query.WithFilter("brand", brandCycle[m.brandIdx]))
		}

	case "o":
		if m.view == viewBrowse {
			m.orderIdx = (m.orderIdx + 1) % len(orderingCycle)
			return m, m.applyQuery(m.query.WithOrdering(orderingCycle[m.orderIdx]))
		}

	case "n", "right":
		if m.view == viewBrowse && m.query.Page < m.page.TotalPages() {
			return m, m.applyQuery(m.query.WithPage(m.query.Page + 1))
		}

	case "p", "left":
		if m.view == viewBrowse && m.query.Page > 1 {
			return m, m.applyQuery(m.query.WithPage(m.query.Page - 1))
		}

	case "l":
		return m, m.toggleSelectedLike()

	case "x":
		if m.deps.Session.Authenticated() {
			return m, m.logoutCmd()
		}
	}

	var cmd tea.Cmd
	m.listings, cmd = m.listings.Update(msg)
	return m, cmd
}

// applyQuery kicks off a fetch for q. The fetcher's sequence numbering makes
// rapid re-queries safe: whichever response belongs to the newest fetch
// wins, stale ones are dropped.
func (m *appModel) applyQuery(q api.ListQuery) tea.Cmd {
	m.loading = true
	m.clearStatus()
	return tea.Batch(m.fetchCmd(q), m.spin.Tick)
}

// toggleSelectedLike runs the optimistic toggle for the focused listing.
// The gate order matters: while the session is still restoring nothing is
// known about identity, so the key is inert; anonymous users are pointed at
// login before any state moves.
func (m *appModel) toggleSelectedLike() tea.Cmd {
	target, ok := m.likeTarget()
	if !ok {
		return nil
	}
	switch m.deps.Session.Status() {
	case session.StatusRestoring:
		return nil
	case session.StatusAnonymous:
		m.setStatus("log in to save listings: shoesteraj login <username>", true)
		return nil
	}
	id := target.ID
	current := m.likes.Liked(id, target.Liked)
	if m.toggler.InFlight(id) {
		return nil
	}
	m.clearStatus()
	// Flip the board now so this frame already shows the optimistic value;
	// Toggle re-applies the same absolute value before the network call and
	// rolls it back on failure.
	m.likes.SetLiked(id, !current)
	cmd := m.likeCmd(id, current)
	m.refreshListings()
	return cmd
}

func (m *appModel) likeTarget() (model.Listing, bool) {
	if m.view == viewDetail && m.detail != nil {
		return *m.detail, true
	}
	if it, ok := m.listings.SelectedItem().(listingItem); ok {
		return it.listing, true
	}
	return model.Listing{}, false
}

func (m *appModel) settleLike(msg likeSettledMsg) tea.Model {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, api.ErrToggleInFlight):
			// Rejected duplicate; the first toggle is still settling.
		case errors.Is(msg.err, api.ErrAuthRequired):
			m.setStatus("log in to save listings: shoesteraj login <username>", true)
		default:
			// The toggler already rolled the flag back.
			m.setStatus("could not update wishlist: "+msg.err.Error(), true)
		}
	}
	m.refreshListings()
	return m
}

func (m *appModel) refreshListings() {
	curID := int64(0)
	if it, ok := m.listings.SelectedItem().(listingItem); ok {
		curID = it.listing.ID
	}
	items := make([]list.Item, 0, len(m.page.Items))
	for _, l := range m.page.Items {
		items = append(items, listingItem{listing: l, likes: m.likes})
	}
	m.listings.SetItems(items)
	if curID != 0 {
		for i, it := range items {
			if it.(listingItem).listing.ID == curID {
				m.listings.Select(i)
				break
			}
		}
	}
}

func (m *appModel) setStatus(line string, isErr bool) {
	m.statusLine = line
	m.statusErr = isErr
}

func (m *appModel) clearStatus() {
	m.statusLine = ""
	m.statusErr = false
}

func (m *appModel) resize() {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.listings.SetSize(w, h)
	m.search.Width = w - 10
}

func (m *appModel) View() string {
	var who string
	switch m.deps.Session.Status() {
	case session.StatusRestoring:
		who = "restoring session..."
	case session.StatusAuthenticated:
		if id := m.deps.Session.Identity(); id != nil {
			who = "@" + id.Username
		}
	default:
		who = "anonymous"
	}
	header := headerStyle.Render("ShoeSteraj") + "  " + statusStyle.Render(who)

	var body string
	switch m.view {
	case viewDetail:
		body = m.viewDetail()
	default:
		body = m.viewBrowse()
	}

	status := ""
	if m.statusLine != "" {
		if m.statusErr {
			status = errorStyle.Render(m.statusLine)
		} else {
			status = statusStyle.Render(m.statusLine)
		}
	}

	footer := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).
		Render(m.footerHelp())

	return strings.Join([]string{header, body, status, footer}, "\n")
}

func (m *appModel) viewBrowse() string {
	var top string
	switch {
	case m.searching:
		top = m.search.View()
	case m.loading:
		top = m.spin.View() + " loading collection..."
	default:
		top = statusStyle.Render(m.browseCrumb())
	}
	return top + "\n" + m.listings.View()
}

func (m *appModel) browseCrumb() string {
	parts := []string{fmt.Sprintf("page %d/%d", m.page.Page, m.page.TotalPages())}
	if m.query.Search != "" {
		parts = append(parts, "search: "+m.query.Search)
	}
	if b := m.query.Filters["brand"]; b != "" {
		parts = append(parts, "brand: "+b)
	}
	if m.query.Ordering != "" {
		parts = append(parts, "order: "+m.query.Ordering)
	}
	parts = append(parts, fmtInt(m.page.TotalCount)+" listings")
	return strings.Join(parts, "  ·  ")
}

func (m *appModel) viewDetail() string {
	l := m.detail
	if l == nil {
		return ""
	}
	w := m.width - 4
	if w < 40 {
		w = 40
	}

	liked := ""
	if m.likes.Liked(l.ID, l.Liked) {
		liked = "  " + likedStyle.Render("♥ on your wishlist")
	}
	sold := ""
	if l.Sold {
		sold = "  " + soldStyle.Render("SOLD")
	}

	lines := []string{
		brandStyle.Render(strings.ToUpper(l.Brand)),
		headerStyle.Render(l.Title) + sold + liked,
		priceStyle.Render(priceLabel(*l)),
		"",
		fmt.Sprintf("size EU %s  ·  %s  ·  sold by %s", l.Size, l.Condition, sellerLabel(*l)),
	}
	if l.SellerRating > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("seller rating ★ %.1f", l.SellerRating)))
	}
	if n := len(l.Gallery); n > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("%d photos in gallery", n+1)))
	}
	if desc := renderMarkdown(l.Description, w); desc != "" {
		lines = append(lines, "", desc)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m *appModel) footerHelp() string {
	if m.view == viewDetail {
		return "l: wishlist  esc: back  q: quit"
	}
	return "/: search  b: brand  o: order  n/p: page  enter: open  l: wishlist  r: reload  x: logout  q: quit"
}
