// Package archive lists archive contents and presents a flat member table
// as a synthetic directory tree addressed by a virtual prefix.
package archive

import "strings"

// Multi-part extensions must come before their suffixes so ".tar.gz" is not
// claimed by a hypothetical ".gz" entry later.
var archiveSuffixes = []string{
	".tar.gz",
	".tar.bz2",
	".tar.zst",
	".tgz",
	".tbz2",
	".tar",
	".zip",
	".jar",
	".7z",
	".rar",
}

// IsArchivePath reports whether name looks like a supported archive. This
// is a pure suffix predicate; it never touches the filesystem.
func IsArchivePath(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
