package browser

import (
	"path/filepath"

	"github.com/kk-code-lab/vdir/internal/archive"
)

// MoveCursor clamps cursor+delta into the visible range.
func (b *Browser) MoveCursor(delta int) {
	b.cursor += delta
	b.clampCursor()
}

// MoveCursorTo places the cursor on an absolute visible index, clamped.
func (b *Browser) MoveCursorTo(i int) {
	b.cursor = i
	b.clampCursor()
}

// NextDirectory moves the cursor to the nearest directory row after it.
// Without a match the cursor stays put; there is no wraparound.
func (b *Browser) NextDirectory() {
	for i := b.cursor + 1; i < len(b.visible); i++ {
		if b.visible[i].IsDir {
			b.cursor = i
			return
		}
	}
}

// PrevDirectory moves the cursor to the nearest directory row before it.
func (b *Browser) PrevDirectory() {
	for i := b.cursor - 1; i >= 0; i-- {
		if b.visible[i].IsDir {
			b.cursor = i
			return
		}
	}
}

// Enter descends into the row under the cursor. Directory rows navigate
// (replacing the location, or extending the archive prefix), the ".." row
// ascends, and a file row with a recognized archive extension switches the
// browser into archive mode.
func (b *Browser) Enter() {
	e := b.CursorEntry()
	if e == nil {
		return
	}
	switch {
	case e.IsParent():
		b.Parent()
	case b.InArchive() && e.IsDir:
		b.prefix = e.Location
		b.resetView()
	case e.IsDir:
		b.path = e.Location
		b.resetView()
	case !b.InArchive() && archive.IsArchivePath(e.Name):
		b.enterArchive(e.Location)
	}
}

// Parent ascends one level. Inside an archive it strips the last prefix
// segment, and from the archive root it exits archive mode back to the
// directory containing the archive file.
func (b *Browser) Parent() {
	if b.InArchive() {
		if b.prefix == "" {
			b.path = filepath.Dir(b.archivePath)
			b.exitArchive()
			return
		}
		b.prefix = archive.ParentPrefix(b.prefix)
		b.resetView()
		return
	}
	parent := filepath.Dir(b.path)
	if parent == b.path {
		return
	}
	b.path = parent
	b.resetView()
}

// enterArchive fetches and caches the member table, then lists the archive
// root. A listing failure still activates archive mode with an empty
// table.
func (b *Browser) enterArchive(path string) {
	members, err := b.listArchive(path)
	if err != nil {
		members = nil
	}
	b.archivePath = path
	b.members = members
	b.prefix = ""
	b.resetView()
}

func (b *Browser) exitArchive() {
	b.archivePath = ""
	b.members = nil
	b.prefix = ""
	b.resetView()
}

// resetView re-lists after a location change: filter and search are
// dropped and the cursor returns to the top.
func (b *Browser) resetView() {
	b.filterPattern = ""
	b.search = searchState{}
	b.cursor = 0
	b.Refresh()
}
