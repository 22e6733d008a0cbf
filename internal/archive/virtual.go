package archive

import (
	"strings"

	fsutil "github.com/kk-code-lab/vdir/internal/fs"
)

// ListPrefix synthesizes the rows visible at one virtual directory inside
// an archive. Every member under the prefix contributes exactly one row:
// members nested deeper than one level materialize their first path
// segment as an implied directory, deduplicated within this pass, and
// members exactly one level down appear as themselves. The caller owns
// sorting, hidden filtering, and the ".." row.
func ListPrefix(members []Member, prefix string) []fsutil.Entry {
	scope := prefix
	if scope != "" {
		scope += "/"
	}

	seenDirs := make(map[string]bool)
	var entries []fsutil.Entry

	for _, m := range members {
		if !strings.HasPrefix(m.Path, scope) {
			continue
		}
		rest := m.Path[len(scope):]
		if rest == "" {
			continue
		}

		name, _, nested := strings.Cut(rest, "/")
		if name == "" {
			continue
		}

		switch {
		case nested:
			// Implied directory: no explicit entry in the table, its
			// existence follows from a deeper member path.
			if seenDirs[name] {
				continue
			}
			seenDirs[name] = true
			entries = append(entries, fsutil.Entry{
				Name:     name,
				Location: scope + name,
				IsDir:    true,
			})
		case m.IsDir:
			if seenDirs[name] {
				continue
			}
			seenDirs[name] = true
			entries = append(entries, fsutil.Entry{
				Name:     name,
				Location: scope + name,
				IsDir:    true,
				Size:     m.Size,
			})
		default:
			entries = append(entries, fsutil.Entry{
				Name:     name,
				Location: scope + name,
				Size:     m.Size,
			})
		}
	}

	return entries
}

// ParentPrefix strips the last slash-joined segment. An empty result means
// the archive root.
func ParentPrefix(prefix string) string {
	if idx := strings.LastIndex(prefix, "/"); idx >= 0 {
		return prefix[:idx]
	}
	return ""
}

// JoinPrefix descends one level into the named directory.
func JoinPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
