// Package app wires the browser, renderer, and job queue into a tcell
// event loop.
package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	browserpkg "github.com/kk-code-lab/vdir/internal/browser"
	fsutil "github.com/kk-code-lab/vdir/internal/fs"
	"github.com/kk-code-lab/vdir/internal/jobs"
	renderui "github.com/kk-code-lab/vdir/internal/ui/render"
)

// Options configure the application at startup.
type Options struct {
	StartPath  string
	ShowHidden bool
	SortMode   fsutil.SortMode
	LogPath    string // job log destination; empty disables logging
}

// inputMode tracks which prompt, if any, is consuming typed characters.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeSearch
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	browser  *browserpkg.Browser
	renderer *renderui.Renderer
	queue    *jobs.Queue
	logger   *zap.Logger

	mode       inputMode
	input      []rune
	shouldQuit bool
}

// NewApplication initializes the screen and loads the starting directory.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	logger := zap.NewNop()
	if opts.LogPath != "" {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{opts.LogPath}
		if built, err := cfg.Build(); err == nil {
			logger = built
		}
	}

	b := browserpkg.New(opts.StartPath, browserpkg.Options{
		ShowHidden:    opts.ShowHidden,
		ShowParentRow: true,
		SortMode:      opts.SortMode,
	})

	queue := jobs.New(logger)

	app := &Application{
		screen:   screen,
		browser:  b,
		renderer: renderui.NewRenderer(screen),
		queue:    queue,
		logger:   logger,
	}

	// Job completions arrive on the queue's channel; repost them as screen
	// events so the loop stays single-threaded.
	go func() {
		for result := range queue.Events() {
			_ = screen.PostEvent(newJobEvent(result))
		}
	}()

	return app, nil
}

// Browser exposes the view state, mainly for tests.
func (app *Application) Browser() *browserpkg.Browser {
	return app.browser
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.queue.Close()
	app.screen.Fini()
	_ = app.logger.Sync()
	return nil
}

// jobEvent carries a jobs.Result through the tcell event queue.
type jobEvent struct {
	when   time.Time
	result jobs.Result
}

func newJobEvent(result jobs.Result) *jobEvent {
	return &jobEvent{when: time.Now(), result: result}
}

func (e *jobEvent) When() time.Time {
	return e.when
}
