package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// listingDelegate renders one storefront row: title and price on the first
// line, brand / seller / flags on the second.
type listingDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newListingDelegate() listingDelegate {
	return listingDelegate{
		normal:   lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Foreground(colorSelected).Bold(true),
		meta:     faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
	}
}

func (d listingDelegate) Height() int  { return 2 }
func (d listingDelegate) Spacing() int { return 1 }
func (d listingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d listingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listingItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 8 {
		return
	}

	l := it.listing

	cursor := "  "
	title := d.normal
	if index == m.Index() {
		cursor = "> "
		title = d.selected
	}

	flags := ""
	if it.liked() {
		flags += " " + likedStyle.Render("♥")
	}
	if l.Sold {
		flags += " " + soldStyle.Render("SOLD")
	}

	top := cursor + title.Render(l.Title) + "  " + priceStyle.Render(priceLabel(l)) + flags
	bottom := "  " + brandStyle.Render(l.Brand) + d.meta.Render("  ·  "+sellerLabel(l)+"  ·  "+string(l.Condition)+"  ·  EU "+l.Size)

	fmt.Fprint(w, fitLine(top, contentW)+"\n"+fitLine(bottom, contentW))
}

func fitLine(line string, width int) string {
	w := xansi.StringWidth(line)
	if w < width {
		return line + strings.Repeat(" ", width-w)
	}
	if w > width {
		return xansi.Cut(line, 0, width)
	}
	return line
}
