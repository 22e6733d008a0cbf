package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	browserpkg "github.com/kk-code-lab/vdir/internal/browser"
	fsutil "github.com/kk-code-lab/vdir/internal/fs"
	textutil "github.com/kk-code-lab/vdir/internal/textutil"
)

const sizeColumnWidth = 9

// Renderer paints a browser's visible set into a tcell screen: header with
// the location string, one row per entry indented by depth, and a status
// line carrying the search indicator.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	offset int // first visible row, kept so the cursor stays on screen
}

// NewRenderer creates a new renderer.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI.
func (r *Renderer) Render(b *browserpkg.Browser, status string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h < 3 {
		r.screen.Show()
		return
	}

	r.drawHeader(b, w)
	r.drawListing(b, w, h)
	r.drawStatusLine(b, status, w, h)

	r.screen.Show()
}

func (r *Renderer) drawHeader(b *browserpkg.Browser, w int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	location := textutil.SanitizeTerminalText(b.Location())
	r.drawTextLine(0, 0, w, location, style)
}

func (r *Renderer) drawListing(b *browserpkg.Browser, w, h int) {
	rows := b.Visible()
	cursor := b.Cursor()
	visibleLines := h - 2

	r.offset = adjustOffset(r.offset, cursor, len(rows), visibleLines)

	matched := make(map[int]bool, len(b.SearchMatches()))
	for _, idx := range b.SearchMatches() {
		matched[idx] = true
	}

	for line := 0; line < visibleLines; line++ {
		idx := r.offset + line
		if idx >= len(rows) {
			break
		}
		r.drawRow(b, rows[idx], idx == cursor, matched[idx], line+1, w)
	}
}

func (r *Renderer) drawRow(b *browserpkg.Browser, e fsutil.Entry, selected, matched bool, y, w int) {
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	switch {
	case selected:
		style = style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	case matched:
		style = style.Background(r.theme.MatchBg).Foreground(r.theme.MatchFg)
	case e.IsDir:
		style = style.Foreground(r.theme.DirectoryFg)
	case e.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case e.IsHidden():
		style = style.Foreground(r.theme.HiddenFg)
	}

	marker := "  "
	if e.IsDir && !e.IsParent() {
		if b.IsExpanded(e.Location) {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	indent := strings.Repeat("  ", e.Depth)
	name := textutil.SanitizeTerminalText(e.Name)
	label := indent + marker + name

	nameWidth := w - sizeColumnWidth - 1
	if nameWidth < 1 {
		nameWidth = w
	}

	endX := r.drawTextLine(0, y, nameWidth, label, style)
	for x := endX; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	if !e.IsDir && w > sizeColumnWidth {
		size := formatSize(e.Size)
		r.drawTextLine(w-runewidth.StringWidth(size), y, sizeColumnWidth, size, style)
	}
}

func (r *Renderer) drawStatusLine(b *browserpkg.Browser, status string, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	left := status
	if left == "" {
		if s := b.SearchStatus(); s != "" {
			left = "/" + s
		} else if p := b.FilterPattern(); p != "" {
			left = "filter: " + p
		}
	}

	right := fmt.Sprintf("%d/%d  %s", displayCursor(b), len(b.Visible()), sortLabel(b))

	r.drawTextLine(0, h-1, w, textutil.SanitizeTerminalText(left), style)
	rx := w - runewidth.StringWidth(right)
	if rx > runewidth.StringWidth(left)+1 {
		r.drawTextLine(rx, h-1, w-rx, right, style)
	}
}

func displayCursor(b *browserpkg.Browser) int {
	if len(b.Visible()) == 0 {
		return 0
	}
	return b.Cursor() + 1
}

func sortLabel(b *browserpkg.Browser) string {
	label := b.SortMode().String()
	if b.SortReverse() {
		label += "↓"
	}
	return label
}

// drawTextLine writes text at (x, y) clipped to maxWidth cells, returning
// the x position after the last cell written.
func (r *Renderer) drawTextLine(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	limit := x + maxWidth
	for _, ch := range text {
		chWidth := runewidth.RuneWidth(ch)
		if chWidth == 0 {
			chWidth = 1
		}
		if x+chWidth > limit {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += chWidth
	}
	return x
}

// adjustOffset scrolls just enough to keep the cursor visible.
func adjustOffset(offset, cursor, count, visibleLines int) int {
	if visibleLines <= 0 || count == 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	} else if cursor >= offset+visibleLines {
		offset = cursor - visibleLines + 1
	}
	maxOffset := count - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(size)/float64(div), "KMGTPE"[exp])
}
