package fs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SortMode selects the comparator applied to a listing. The set is closed;
// each mode maps to one pure comparator.
type SortMode int

const (
	SortName SortMode = iota
	SortSize
	SortDate
	SortType
)

func (m SortMode) String() string {
	switch m {
	case SortName:
		return "name"
	case SortSize:
		return "size"
	case SortDate:
		return "date"
	case SortType:
		return "type"
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// ParseSortMode maps a flag value to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(s) {
	case "", "name":
		return SortName, nil
	case "size":
		return SortSize, nil
	case "date":
		return SortDate, nil
	case "type":
		return SortType, nil
	}
	return SortName, fmt.Errorf("unknown sort mode %q", s)
}

// Sort orders entries in place. A leading ".." row is pinned and never
// reordered. Directories always precede files regardless of mode or
// reverse; reverse flips only the metric comparison within each class.
func Sort(entries []Entry, mode SortMode, reverse bool) {
	rest := entries
	if len(rest) > 0 && rest[0].IsParent() {
		rest = rest[1:]
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return entryLess(rest[i], rest[j], mode, reverse)
	})
}

func entryLess(a, b Entry, mode SortMode, reverse bool) bool {
	if a.IsDir != b.IsDir {
		return a.IsDir
	}
	r := compareMetric(a, b, mode)
	if reverse {
		r = -r
	}
	if r != 0 {
		return r < 0
	}
	if mode != SortName {
		// Equal metrics fall back to the name ordering, unreversed, so
		// ties stay stable under reverse toggling.
		return foldName(a.Name) < foldName(b.Name)
	}
	return false
}

func compareMetric(a, b Entry, mode SortMode) int {
	switch mode {
	case SortSize:
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	case SortDate:
		// A zero Modified (archive rows) orders before any real timestamp.
		if a.Modified.Before(b.Modified) {
			return -1
		}
		if b.Modified.Before(a.Modified) {
			return 1
		}
		return 0
	case SortType:
		return strings.Compare(strings.ToLower(filepath.Ext(a.Name)), strings.ToLower(filepath.Ext(b.Name)))
	default:
		return strings.Compare(foldName(a.Name), foldName(b.Name))
	}
}

func foldName(name string) string {
	return strings.ToLower(name)
}
