package browser

import (
	"os"
	"path/filepath"
	"testing"

	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// scenarioDir builds the directory from the concrete scenario: alice.txt
// (100B), Bob (dir), charlie.md (50B), .hidden (file).
func scenarioDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "alice.txt", 100)
	writeFile(t, dir, "charlie.md", 50)
	writeFile(t, dir, ".hidden", 1)
	mkdir(t, dir, "Bob")
	return dir
}

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{dir}, parts...)...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func visibleNames(b *Browser) []string {
	rows := b.Visible()
	out := make([]string, len(rows))
	for i, e := range rows {
		out[i] = e.Name
	}
	return out
}

func assertVisible(t *testing.T, b *Browser, want ...string) {
	t.Helper()
	got := visibleNames(b)
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visible = %v, want %v", got, want)
		}
	}
}

func assertCursorInBounds(t *testing.T, b *Browser) {
	t.Helper()
	if len(b.Visible()) == 0 {
		if b.Cursor() != 0 {
			t.Fatalf("cursor %d on empty visible set, want 0", b.Cursor())
		}
		return
	}
	if b.Cursor() < 0 || b.Cursor() >= len(b.Visible()) {
		t.Fatalf("cursor %d out of range [0, %d)", b.Cursor(), len(b.Visible()))
	}
}

func TestScenarioNameSort(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	assertVisible(t, b, "Bob", "alice.txt", "charlie.md")
}

func TestScenarioSizeSortKeepsDirsFirst(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	b.SetSortMode(fsutil.SortSize)
	assertVisible(t, b, "Bob", "charlie.md", "alice.txt")
}

func TestScenarioFilter(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	b.SetFilter("al")
	assertVisible(t, b, "alice.txt")
	if b.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", b.Cursor())
	}
}

func TestFilterRoundTrip(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	before := b.Visible()

	b.SetFilter("li")
	assertVisible(t, b, "alice.txt")
	b.ClearFilter()

	after := b.Visible()
	if len(after) != len(before) {
		t.Fatalf("round trip changed length: %d != %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("round trip changed row %d: %+v != %+v", i, after[i], before[i])
		}
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	b.SetFilter("BOB")
	assertVisible(t, b, "Bob")
}

func TestFilterNeverMutatesBase(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	baseLen := len(b.base)
	b.SetFilter("charlie")
	if len(b.base) != baseLen {
		t.Fatalf("base length changed under filter: %d != %d", len(b.base), baseLen)
	}
}

func TestFilterOutOfRangeCursorResetsToZero(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	b.MoveCursorTo(2) // charlie.md
	b.SetFilter("alice")
	if b.Cursor() != 0 {
		t.Fatalf("cursor = %d, want reset to 0", b.Cursor())
	}
}

func TestFilterNoMatchesPinsCursor(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	b.SetFilter("zzz")
	if len(b.Visible()) != 0 {
		t.Fatalf("visible = %v, want empty", visibleNames(b))
	}
	assertCursorInBounds(t, b)
}

func TestToggleHidden(t *testing.T) {
	b := New(scenarioDir(t), Options{SortMode: fsutil.SortName})
	assertVisible(t, b, "Bob", "alice.txt", "charlie.md")

	b.ToggleHidden()
	assertVisible(t, b, "Bob", ".hidden", "alice.txt", "charlie.md")

	b.ToggleHidden()
	assertVisible(t, b, "Bob", "alice.txt", "charlie.md")
}

func TestShowParentRow(t *testing.T) {
	dir := scenarioDir(t)
	b := New(dir, Options{SortMode: fsutil.SortName, ShowParentRow: true})

	rows := b.Visible()
	if len(rows) == 0 || !rows[0].IsParent() {
		t.Fatalf("visible = %v, want leading ..", visibleNames(b))
	}

	// Reverse must not move the pinned parent row.
	b.SetSortReverse(true)
	rows = b.Visible()
	if !rows[0].IsParent() {
		t.Fatalf("reverse moved the parent row: %v", visibleNames(b))
	}
}

func TestUnreadableDirectoryYieldsEmptyListing(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "missing"), Options{SortMode: fsutil.SortName})
	if len(b.Visible()) != 0 {
		t.Fatalf("visible = %v, want empty", visibleNames(b))
	}
	assertCursorInBounds(t, b)
}

func TestCursorBoundAfterMutationStorm(t *testing.T) {
	dir := scenarioDir(t)
	mkdir(t, dir, "Bob", "inner")
	writeFile(t, dir, "Bob/inner/deep.txt", 7)

	b := New(dir, Options{SortMode: fsutil.SortName})

	ops := []func(){
		func() { b.MoveCursor(10) },
		func() { b.SetFilter("a") },
		func() { b.Expand(0, false) },
		func() { b.SetSortMode(fsutil.SortSize) },
		func() { b.ClearFilter() },
		func() { b.MoveCursor(-99) },
		func() { b.ToggleHidden() },
		func() { b.Toggle(0, true) },
		func() { b.SetSortReverse(true) },
		func() { b.SetFilter("zzz-no-match") },
		func() { b.Collapse(0, true) },
		func() { b.ClearFilter() },
	}
	for i, op := range ops {
		op()
		if t.Failed() {
			t.Fatalf("op %d broke cursor bound", i)
		}
		assertCursorInBounds(t, b)
	}
}

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	dir := scenarioDir(t)
	b := New(dir, Options{SortMode: fsutil.SortName})
	assertVisible(t, b, "Bob", "alice.txt", "charlie.md")

	writeFile(t, dir, "new.txt", 1)
	b.Refresh()
	assertVisible(t, b, "Bob", "alice.txt", "charlie.md", "new.txt")
}
