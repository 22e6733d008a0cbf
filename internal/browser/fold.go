package browser

import (
	"path/filepath"

	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// Fold expansion splices a directory's children into the flat sequence
// immediately after the directory's own row, one depth level down, and
// collapse removes the contiguous run of deeper rows. Expansion membership
// is owned here as a set keyed by cleaned location; fold is not defined
// over archive-mode rows.

// IsExpanded reports whether the directory at location is fold-expanded,
// for open/closed icon choice.
func (b *Browser) IsExpanded(location string) bool {
	_, ok := b.expanded[filepath.Clean(location)]
	return ok
}

// Expand fold-expands the directory row at visible index i. No-op when the
// target is "..", not a directory, already expanded, or an archive row.
// A recursive expand pre-registers every child directory as expanded and
// rebuilds the whole listing so multi-level nesting materializes.
func (b *Browser) Expand(i int, recursive bool) {
	if b.InArchive() {
		return
	}
	target, baseIdx := b.foldTarget(i)
	if target == nil || b.IsExpanded(target.Location) {
		return
	}

	children := b.loadChildren(*target)
	b.expanded[target.Location] = struct{}{}

	if recursive {
		for _, c := range children {
			if c.IsDir {
				b.expanded[c.Location] = struct{}{}
			}
		}
		b.Refresh()
		return
	}

	b.base = spliceAfter(b.base, baseIdx, children)
	b.applyFilter()
	b.clampCursor()
}

// Collapse removes the expanded children of the directory row at visible
// index i: the contiguous run of rows after it whose depth is strictly
// greater, ending at the first row at or above the directory's depth. A
// recursive collapse also forgets every directory within the removed run.
func (b *Browser) Collapse(i int, recursive bool) {
	if b.InArchive() {
		return
	}
	target, baseIdx := b.foldTarget(i)
	if target == nil || !b.IsExpanded(target.Location) {
		return
	}

	end := baseIdx + 1
	for end < len(b.base) && b.base[end].Depth > target.Depth {
		end++
	}

	delete(b.expanded, target.Location)
	if recursive {
		for _, removed := range b.base[baseIdx+1 : end] {
			if removed.IsDir {
				delete(b.expanded, removed.Location)
			}
		}
	}

	b.base = append(b.base[:baseIdx+1], b.base[end:]...)
	b.applyFilter()
	b.clampCursor()
}

// Toggle dispatches to Expand or Collapse based on current membership.
func (b *Browser) Toggle(i int, recursive bool) {
	target, _ := b.foldTarget(i)
	if target == nil {
		return
	}
	if b.IsExpanded(target.Location) {
		b.Collapse(i, recursive)
	} else {
		b.Expand(i, recursive)
	}
}

// foldTarget validates a fold operation's target row and resolves its base
// index. Returns nil for out-of-range indices, "..", and non-directories.
func (b *Browser) foldTarget(i int) (*fsutil.Entry, int) {
	if i < 0 || i >= len(b.visible) {
		return nil, -1
	}
	e := &b.visible[i]
	if !e.IsDir || e.IsParent() {
		return nil, -1
	}
	return e, b.baseIndexOf(i)
}
