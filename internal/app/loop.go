package app

import (
	"github.com/gdamore/tcell/v2"

	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// Run processes events until quit.
func (app *Application) Run() {
	for !app.shouldQuit {
		app.renderer.Render(app.browser, app.promptLine())

		ev := app.screen.PollEvent()
		if ev == nil {
			return
		}
		app.HandleEvent(ev)
	}
}

// HandleEvent dispatches one event. Split out from Run so tests can drive
// the loop with a simulation screen.
func (app *Application) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *jobEvent:
		// The mutation already happened on the worker; re-list so the
		// view reflects it.
		app.browser.Refresh()
	case *tcell.EventKey:
		app.handleKey(ev)
	}
}

func (app *Application) promptLine() string {
	switch app.mode {
	case modeFilter:
		return "filter: " + string(app.input)
	case modeSearch:
		return "/" + string(app.input)
	}
	return ""
}

func (app *Application) handleKey(ev *tcell.EventKey) {
	if app.mode != modeNormal {
		app.handlePromptKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyUp:
		app.browser.MoveCursor(-1)
	case tcell.KeyDown:
		app.browser.MoveCursor(1)
	case tcell.KeyEnter, tcell.KeyRight:
		app.browser.Enter()
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		app.browser.Parent()
	case tcell.KeyEscape:
		app.browser.ClearFilter()
		app.browser.ClearSearch()
	case tcell.KeyCtrlC:
		app.shouldQuit = true
	case tcell.KeyRune:
		app.handleNormalRune(ev.Rune())
	}
}

func (app *Application) handleNormalRune(r rune) {
	b := app.browser
	switch r {
	case 'q':
		app.shouldQuit = true
	case 'j':
		b.MoveCursor(1)
	case 'k':
		b.MoveCursor(-1)
	case 'g':
		b.MoveCursorTo(0)
	case 'G':
		b.MoveCursorTo(len(b.Visible()) - 1)
	case 'l':
		b.Enter()
	case 'h':
		b.Parent()
	case ']':
		b.NextDirectory()
	case '[':
		b.PrevDirectory()
	case 'z':
		b.Toggle(b.Cursor(), false)
	case 'Z':
		b.Toggle(b.Cursor(), true)
	case '.':
		b.ToggleHidden()
	case 's':
		b.SetSortMode(nextSortMode(b.SortMode()))
	case 'r':
		b.SetSortReverse(!b.SortReverse())
	case 'f':
		app.mode = modeFilter
		app.input = []rune(b.FilterPattern())
	case '/':
		app.mode = modeSearch
		app.input = nil
		b.StartSearch()
	case 'n':
		b.NextMatch()
	case 'N':
		b.PrevMatch()
	}
}

// handlePromptKey edits the filter/search prompt; both update the browser
// live on every keystroke.
func (app *Application) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		if app.mode == modeSearch {
			app.browser.CancelSearch()
		} else {
			app.browser.ClearFilter()
		}
		app.mode = modeNormal
		app.input = nil
	case tcell.KeyEnter:
		if app.mode == modeSearch {
			app.browser.CommitSearch()
		}
		app.mode = modeNormal
		app.input = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.input) > 0 {
			app.input = app.input[:len(app.input)-1]
		}
		app.applyPrompt()
	case tcell.KeyRune:
		app.input = append(app.input, ev.Rune())
		app.applyPrompt()
	}
}

func (app *Application) applyPrompt() {
	if app.mode == modeSearch {
		app.browser.SetSearch(string(app.input))
	} else {
		app.browser.SetFilter(string(app.input))
	}
}

func nextSortMode(mode fsutil.SortMode) fsutil.SortMode {
	switch mode {
	case fsutil.SortName:
		return fsutil.SortSize
	case fsutil.SortSize:
		return fsutil.SortDate
	case fsutil.SortDate:
		return fsutil.SortType
	default:
		return fsutil.SortName
	}
}
