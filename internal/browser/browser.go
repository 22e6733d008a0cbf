// Package browser maintains the ordered list of rows shown for one
// location: a real directory, or a virtual position inside an archive. It
// composes listing, sorting, substring filtering, incremental search, and
// in-place fold expansion over a single flat, index-addressable sequence.
//
// A Browser is single-owner state: every method runs synchronously on the
// interaction thread and there is no internal locking.
package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/vdir/internal/archive"
	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// Options carry the config-derived knobs fixed at construction.
type Options struct {
	ShowHidden    bool
	ShowParentRow bool
	SortMode      fsutil.SortMode
}

// Browser owns the full view state for one location.
//
// base holds the sorted listing including fold-expanded children; visible
// is base with the active filter applied. The cursor indexes visible and
// is clamped after every structural mutation.
type Browser struct {
	path string // current real directory

	// Archive mode. archivePath is non-empty while inside an archive;
	// members is the table fetched once on enter and held for the visit.
	archivePath string
	prefix      string
	members     []archive.Member

	base     []fsutil.Entry
	visible  []fsutil.Entry
	filtered []int // base indices of visible rows while a filter is active
	cursor   int

	showHidden    bool
	showParentRow bool
	sortMode      fsutil.SortMode
	sortReverse   bool

	filterPattern string // case-folded; empty means no filter

	search searchState

	expanded map[string]struct{} // fold-expanded directory locations

	listArchive func(string) ([]archive.Member, error)
}

// New creates a Browser bound to a starting real directory and performs
// the initial listing.
func New(startPath string, opts Options) *Browser {
	b := &Browser{
		path:          filepath.Clean(startPath),
		showHidden:    opts.ShowHidden,
		showParentRow: opts.ShowParentRow,
		sortMode:      opts.SortMode,
		expanded:      make(map[string]struct{}),
		listArchive:   archive.List,
	}
	b.Refresh()
	return b
}

// Refresh regenerates the base set from scratch (or from the cached
// archive table), re-derives the visible set, and clamps the cursor. Every
// structural mutation funnels through here.
func (b *Browser) Refresh() {
	if b.InArchive() {
		b.base = b.buildArchiveBase()
	} else {
		b.base = b.buildDirectoryBase()
	}
	b.applyFilter()
	b.clampCursor()
}

func (b *Browser) buildDirectoryBase() []fsutil.Entry {
	entries, err := fsutil.ReadDir(b.path, fsutil.ListOptions{
		ShowHidden:    b.showHidden,
		ShowParentRow: b.showParentRow,
	})
	if err != nil {
		// Unreadable directory degrades to an empty listing.
		return nil
	}
	fsutil.Sort(entries, b.sortMode, b.sortReverse)
	return b.applyExpansions(entries)
}

func (b *Browser) buildArchiveBase() []fsutil.Entry {
	entries := archive.ListPrefix(b.members, b.prefix)
	if !b.showHidden {
		kept := entries[:0]
		for _, e := range entries {
			if !strings.HasPrefix(e.Name, ".") {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	fsutil.Sort(entries, b.sortMode, b.sortReverse)
	if b.showParentRow && b.prefix != "" {
		parent := fsutil.Entry{
			Name:     fsutil.ParentName,
			Location: archive.ParentPrefix(b.prefix),
			IsDir:    true,
		}
		entries = append([]fsutil.Entry{parent}, entries...)
	}
	return entries
}

// applyExpansions re-applies every member of the expanded set depth-first:
// children spliced in for one directory are themselves visited, so nested
// expansions materialize in a single pass.
func (b *Browser) applyExpansions(entries []fsutil.Entry) []fsutil.Entry {
	if len(b.expanded) == 0 {
		return entries
	}
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if !e.IsDir || e.IsParent() {
			continue
		}
		if _, ok := b.expanded[e.Location]; !ok {
			continue
		}
		entries = spliceAfter(entries, i, b.loadChildren(e))
	}
	return entries
}

// loadChildren reads a directory's immediate children one level deeper,
// with no ".." row, ready for splicing after the parent.
func (b *Browser) loadChildren(parent fsutil.Entry) []fsutil.Entry {
	children, err := fsutil.ReadDir(parent.Location, fsutil.ListOptions{
		ShowHidden: b.showHidden,
		Depth:      parent.Depth + 1,
	})
	if err != nil {
		return nil
	}
	fsutil.Sort(children, b.sortMode, b.sortReverse)
	return children
}

func spliceAfter(entries []fsutil.Entry, i int, children []fsutil.Entry) []fsutil.Entry {
	if len(children) == 0 {
		return entries
	}
	out := make([]fsutil.Entry, 0, len(entries)+len(children))
	out = append(out, entries[:i+1]...)
	out = append(out, children...)
	out = append(out, entries[i+1:]...)
	return out
}

func (b *Browser) clampCursor() {
	if len(b.visible) == 0 {
		b.cursor = 0
		return
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= len(b.visible) {
		b.cursor = len(b.visible) - 1
	}
}

// baseIndexOf maps a visible index to its position in the base set.
func (b *Browser) baseIndexOf(visibleIdx int) int {
	if visibleIdx < 0 || visibleIdx >= len(b.visible) {
		return -1
	}
	if b.filterPattern == "" {
		return visibleIdx
	}
	return b.filtered[visibleIdx]
}

// ===== ACCESSORS (consumed by rendering/UI) =====

// Visible returns the ordered sequence of rows currently shown.
func (b *Browser) Visible() []fsutil.Entry {
	return b.visible
}

// Cursor returns the index of the selected row within Visible.
func (b *Browser) Cursor() int {
	return b.cursor
}

// CursorEntry returns the row under the cursor, or nil when the visible
// set is empty.
func (b *Browser) CursorEntry() *fsutil.Entry {
	if b.cursor < 0 || b.cursor >= len(b.visible) {
		return nil
	}
	return &b.visible[b.cursor]
}

// InArchive reports whether the browser is at a virtual position inside an
// archive.
func (b *Browser) InArchive() bool {
	return b.archivePath != ""
}

// Path returns the current real directory (the archive's containing
// directory while in archive mode).
func (b *Browser) Path() string {
	return b.path
}

// Location returns the display string for the current location: the real
// path, or "[archive]/prefix" in archive mode.
func (b *Browser) Location() string {
	if !b.InArchive() {
		return b.path
	}
	if b.prefix == "" {
		return fmt.Sprintf("[%s]", b.archivePath)
	}
	return fmt.Sprintf("[%s]/%s", b.archivePath, b.prefix)
}

// ShowHidden reports whether dotfiles are listed.
func (b *Browser) ShowHidden() bool {
	return b.showHidden
}

// ToggleHidden flips dotfile visibility and rebuilds the listing.
func (b *Browser) ToggleHidden() {
	b.showHidden = !b.showHidden
	b.Refresh()
}

// SortMode returns the active sort mode.
func (b *Browser) SortMode() fsutil.SortMode {
	return b.sortMode
}

// SortReverse reports whether the non-pinned portion is reversed.
func (b *Browser) SortReverse() bool {
	return b.sortReverse
}

// SetSortMode switches the comparator and rebuilds the listing.
func (b *Browser) SetSortMode(mode fsutil.SortMode) {
	b.sortMode = mode
	b.Refresh()
}

// SetSortReverse sets reverse ordering and rebuilds the listing.
func (b *Browser) SetSortReverse(reverse bool) {
	b.sortReverse = reverse
	b.Refresh()
}
