package browser

import (
	"fmt"
	"strings"
)

// searchState tracks incremental search. Search never removes rows: while
// typing it only moves the cursor, and once committed it freezes the
// match-index set over the visible sequence for circular next/prev
// navigation until the search is cleared.
type searchState struct {
	active    bool
	pattern   string // case-folded live pattern
	preCursor int    // cursor position when the search began
	committed bool
	matches   []int // frozen visible indices, set on commit
	current   int   // position within matches
}

// StartSearch begins a search, remembering the cursor so a cancel can
// restore it exactly.
func (b *Browser) StartSearch() {
	b.search = searchState{active: true, preCursor: b.cursor}
}

// SetSearch updates the live pattern while typing. The cursor moves to the
// first visible row at or after the pre-search position whose name
// contains the pattern; there is no wraparound while typing, and an
// unmatched pattern leaves the cursor where it was. Backspacing to an
// empty pattern restores the pre-search cursor.
func (b *Browser) SetSearch(pattern string) {
	if !b.search.active {
		b.StartSearch()
	}
	b.search.pattern = strings.ToLower(pattern)
	b.search.committed = false
	b.search.matches = nil

	if b.search.pattern == "" {
		b.cursor = b.search.preCursor
		b.clampCursor()
		return
	}
	for i := b.search.preCursor; i < len(b.visible); i++ {
		if strings.Contains(strings.ToLower(b.visible[i].Name), b.search.pattern) {
			b.cursor = i
			return
		}
	}
}

// CommitSearch accepts the pattern and freezes the match-index set over
// the current visible sequence. Further list mutation does not recompute
// it; NextMatch and PrevMatch cycle through the frozen set until the
// search is cleared.
func (b *Browser) CommitSearch() {
	if !b.search.active || b.search.pattern == "" {
		return
	}
	b.search.matches = b.computeMatches()
	b.search.committed = true
	b.search.current = 0
	for i, idx := range b.search.matches {
		if idx >= b.cursor {
			b.search.current = i
			break
		}
	}
}

func (b *Browser) computeMatches() []int {
	var matches []int
	for i, e := range b.visible {
		if strings.Contains(strings.ToLower(e.Name), b.search.pattern) {
			matches = append(matches, i)
		}
	}
	return matches
}

// CancelSearch abandons the search and restores the pre-search cursor.
func (b *Browser) CancelSearch() {
	if !b.search.active {
		return
	}
	b.cursor = b.search.preCursor
	b.search = searchState{}
	b.clampCursor()
}

// ClearSearch drops search state without moving the cursor, for the
// accept-then-navigate-away path.
func (b *Browser) ClearSearch() {
	b.search = searchState{}
}

// NextMatch advances circularly through the frozen match set.
func (b *Browser) NextMatch() {
	if len(b.search.matches) == 0 {
		return
	}
	b.search.current = (b.search.current + 1) % len(b.search.matches)
	b.moveToCurrentMatch()
}

// PrevMatch steps backwards circularly through the frozen match set.
func (b *Browser) PrevMatch() {
	n := len(b.search.matches)
	if n == 0 {
		return
	}
	b.search.current = (b.search.current - 1 + n) % n
	b.moveToCurrentMatch()
}

func (b *Browser) moveToCurrentMatch() {
	idx := b.search.matches[b.search.current]
	if idx >= 0 && idx < len(b.visible) {
		b.cursor = idx
	}
}

// SearchActive reports whether a search is in progress or committed.
func (b *Browser) SearchActive() bool {
	return b.search.active
}

// SearchPattern returns the live case-folded search pattern.
func (b *Browser) SearchPattern() string {
	return b.search.pattern
}

// SearchMatches returns the frozen match-index set, nil before commit.
// The caller must not mutate it.
func (b *Browser) SearchMatches() []int {
	return b.search.matches
}

// SearchStatus formats the "pattern [i/n]" indicator for the status line,
// or "" when no committed search is active.
func (b *Browser) SearchStatus() string {
	if !b.search.committed {
		if b.search.active && b.search.pattern != "" {
			return b.search.pattern
		}
		return ""
	}
	if len(b.search.matches) == 0 {
		return fmt.Sprintf("%s [0/0]", b.search.pattern)
	}
	return fmt.Sprintf("%s [%d/%d]", b.search.pattern, b.search.current+1, len(b.search.matches))
}
