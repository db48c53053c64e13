package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width. Creating a renderer with WithAutoStyle
	// can trigger terminal capability/background queries that may block on
	// some terminals, so we pick the style once and cache per width.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders a listing description for the detail view. On any
// renderer trouble the raw markdown is returned; a description is never
// worth failing the page over.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	r := mdRenderers[width]
	mdRendererMu.Unlock()

	if r == nil {
		style := "light"
		if termenv.HasDarkBackground() {
			style = "dark"
		}
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[width]; existing != nil {
			r = existing
		} else {
			mdRenderers[width] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func fmtInt(n int) string { return strconv.Itoa(n) }
