package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	apppkg "github.com/kk-code-lab/vdir/internal/app"
	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

func main() {
	showHidden := flag.Bool("hidden", false, "show hidden files")
	sortFlag := flag.String("sort", "name", "initial sort mode: name, size, date, or type")
	logPath := flag.String("log", "", "write job logs to this file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `vdir - fold-capable directory and archive browser

USAGE:
    vdir [OPTIONS] [PATH]

OPTIONS:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	sortMode, err := fsutil.ParseSortMode(*sortFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vdir: %v\n", err)
		os.Exit(2)
	}

	startPath := flag.Arg(0)
	if startPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "vdir: %v\n", err)
			os.Exit(1)
		}
		startPath = cwd
	}
	startPath, err = filepath.Abs(startPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vdir: %v\n", err)
		os.Exit(1)
	}

	// UTF-8 fallback keeps non-ASCII names readable on limited locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(apppkg.Options{
		StartPath:  startPath,
		ShowHidden: *showHidden,
		SortMode:   sortMode,
		LogPath:    *logPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
