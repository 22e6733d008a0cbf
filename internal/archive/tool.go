package archive

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// toolSpec describes one external lister: the command producing a
// line-oriented table and a parser for one line of it. Lines the parser
// rejects (headers, separators, mangled rows) are skipped.
type toolSpec struct {
	name    string
	command func(path string) *exec.Cmd
	extract func(path, destDir string) *exec.Cmd
	parse   func(line string) (Member, bool)
}

var sevenZipTool = toolSpec{
	name: "7z",
	command: func(path string) *exec.Cmd {
		return exec.Command("7z", "l", "-ba", path)
	},
	extract: func(path, destDir string) *exec.Cmd {
		return exec.Command("7z", "x", "-y", "-o"+destDir, path)
	},
	parse: parse7zLine,
}

var unrarTool = toolSpec{
	name: "unrar",
	command: func(path string) *exec.Cmd {
		return exec.Command("unrar", "l", "-p-", path)
	},
	extract: func(path, destDir string) *exec.Cmd {
		return exec.Command("unrar", "x", "-y", "-p-", path, destDir+string(os.PathSeparator))
	},
	parse: parseUnrarLine,
}

func listWithTool(path string, tool toolSpec) ([]Member, error) {
	out, err := tool.command(path).Output()
	if err != nil {
		return nil, fmt.Errorf("%s list %s: %w", tool.name, path, err)
	}

	var members []Member
	for _, line := range strings.Split(string(out), "\n") {
		if m, ok := tool.parse(line); ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// parse7zLine parses one row of `7z l -ba` output:
//
//	2024-01-02 03:04:05 D....            0            0  dir/sub
//	2024-01-02 03:04:05 ....A           10           10  dir/file.txt
//
// The compressed-size column is blank for some rows, so the name starts at
// field 4 or 5 depending on whether field 4 is numeric.
func parse7zLine(line string) (Member, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Member{}, false
	}

	attrs := fields[2]
	size, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Member{}, false
	}

	nameStart := 4
	if len(fields) > 5 {
		if _, err := strconv.ParseInt(fields[4], 10, 64); err == nil {
			nameStart = 5
		}
	}

	name := strings.Join(fields[nameStart:], " ")
	if name == "" {
		return Member{}, false
	}

	return Member{
		Path:  strings.TrimSuffix(name, "/"),
		IsDir: strings.HasPrefix(attrs, "D"),
		Size:  size,
	}, true
}

// parseUnrarLine parses one row of `unrar l` output:
//
//	    -rw-r--r--        10  2024-01-02 03:04  dir/file.txt
//	    drwxr-xr-x         0  2024-01-02 03:04  dir/sub
//
// Header and summary lines fail the size parse and are skipped.
func parseUnrarLine(line string) (Member, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Member{}, false
	}

	attrs := fields[0]
	size, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Member{}, false
	}

	name := strings.Join(fields[4:], " ")
	if name == "" || name == "Name" {
		return Member{}, false
	}

	return Member{
		Path:  strings.TrimSuffix(name, "/"),
		IsDir: strings.HasPrefix(attrs, "d") || strings.Contains(attrs, "D"),
		Size:  size,
	}, true
}
