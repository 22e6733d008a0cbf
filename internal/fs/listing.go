package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ListOptions control how a directory is materialized into entries.
type ListOptions struct {
	ShowHidden    bool
	ShowParentRow bool // synthesize a leading ".." when a parent exists
	Depth         int  // depth assigned to every produced row
}

// ReadDir loads the immediate children of dirPath as entries. Names are
// NFC-normalized so composed and decomposed spellings compare equal, and
// symlinks to directories are treated as directories. The ".." row, when
// requested, is exempt from hidden filtering.
func ReadDir(dirPath string, opts ListOptions) ([]Entry, error) {
	dirents, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirents)+1)

	if opts.ShowParentRow {
		if parent := filepath.Dir(dirPath); parent != dirPath {
			entries = append(entries, Entry{
				Name:     ParentName,
				Location: parent,
				IsDir:    true,
				Depth:    opts.Depth,
			})
		}
	}

	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			continue
		}

		rawName := d.Name()
		fullPath := filepath.Join(dirPath, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}
		if !opts.ShowHidden && IsHidden(fullPath, rawName) {
			continue
		}

		isDir := d.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0

		// For symlinks, the target decides whether the row navigates.
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		size := info.Size()
		if isDir {
			size = 0
		}

		entries = append(entries, Entry{
			Name:      norm.NFC.String(rawName),
			Location:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      size,
			Modified:  info.ModTime(),
			Depth:     opts.Depth,
		})
	}

	return entries, nil
}
