package fs

import "time"

// ParentName is the display name of the synthetic row pointing at the
// enclosing listing.
const ParentName = ".."

// Entry represents a single row in a browsable listing: a file, a
// directory, or an archive member. Depth is 0 for rows of the current
// listing and parent.Depth+1 for rows inserted by fold expansion, which
// lets a flat slice carry a tree: the children of an expanded row are the
// contiguous run of deeper rows immediately after it.
type Entry struct {
	Name      string
	Location  string // absolute path, or virtual member path in archive mode
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time // zero for archive-derived rows
	Depth     int
}

// IsParent reports whether the entry is the synthetic ".." row.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Location, e.Name)
}
