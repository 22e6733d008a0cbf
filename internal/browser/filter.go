package browser

import (
	"strings"

	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// SetFilter installs a case-insensitive substring filter and re-derives
// the visible set. The base set is never mutated; clearing the filter
// restores visible to the base sequence itself. A cursor left out of range
// by the change resets to 0.
func (b *Browser) SetFilter(pattern string) {
	b.filterPattern = strings.ToLower(pattern)
	b.applyFilter()
	if b.cursor < 0 || b.cursor >= len(b.visible) {
		b.cursor = 0
	}
}

// ClearFilter removes the active filter.
func (b *Browser) ClearFilter() {
	b.SetFilter("")
}

// FilterPattern returns the active case-folded pattern, "" when none.
func (b *Browser) FilterPattern() string {
	return b.filterPattern
}

func (b *Browser) applyFilter() {
	if b.filterPattern == "" {
		b.visible = b.base
		b.filtered = nil
		return
	}

	visible := make([]fsutil.Entry, 0, len(b.base))
	filtered := make([]int, 0, len(b.base))
	for i, e := range b.base {
		if strings.Contains(strings.ToLower(e.Name), b.filterPattern) {
			visible = append(visible, e)
			filtered = append(filtered, i)
		}
	}
	b.visible = visible
	b.filtered = filtered
}
