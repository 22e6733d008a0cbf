package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	browserpkg "github.com/kk-code-lab/vdir/internal/browser"
	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func screenText(screen tcell.SimulationScreen) string {
	var b strings.Builder
	cells, w, h := screen.GetContents()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := cells[y*w+x]
			if len(cell.Runes) > 0 {
				b.WriteRune(cell.Runes[0])
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestRenderShowsRowsAndLocation(t *testing.T) {
	dir := t.TempDir()
	b := browserpkg.New(dir, browserpkg.Options{SortMode: fsutil.SortName})

	screen := newSimScreen(t, 120, 10)
	r := NewRenderer(screen)
	r.Render(b, "")

	text := screenText(screen)
	if !strings.Contains(text, dir) {
		t.Fatalf("header missing location %q:\n%s", dir, text)
	}
}

func TestRenderStatusShowsPrompt(t *testing.T) {
	dir := t.TempDir()
	b := browserpkg.New(dir, browserpkg.Options{SortMode: fsutil.SortName})

	screen := newSimScreen(t, 60, 10)
	r := NewRenderer(screen)
	r.Render(b, "filter: abc")

	if !strings.Contains(screenText(screen), "filter: abc") {
		t.Fatal("status line missing prompt text")
	}
}

func TestAdjustOffset(t *testing.T) {
	tests := []struct {
		name                            string
		offset, cursor, count, lines, want int
	}{
		{"cursor visible", 0, 3, 20, 10, 0},
		{"cursor below window", 0, 15, 20, 10, 6},
		{"cursor above window", 8, 2, 20, 10, 2},
		{"clamped to max", 50, 19, 20, 10, 10},
		{"empty list", 5, 0, 0, 10, 0},
		{"no lines", 5, 3, 20, 0, 0},
	}
	for _, tt := range tests {
		if got := adjustOffset(tt.offset, tt.cursor, tt.count, tt.lines); got != tt.want {
			t.Errorf("%s: adjustOffset = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	for size, want := range map[int64]string{
		0:       "0B",
		512:     "512B",
		1024:    "1.0K",
		1536:    "1.5K",
		1048576: "1.0M",
	} {
		if got := formatSize(size); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", size, got, want)
		}
	}
}
