package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse7zLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Member
		ok   bool
	}{
		{
			name: "file",
			line: "2024-01-02 03:04:05 ....A           10           10  dir/file.txt",
			want: Member{Path: "dir/file.txt", Size: 10},
			ok:   true,
		},
		{
			name: "directory",
			line: "2024-01-02 03:04:05 D....            0            0  dir/sub",
			want: Member{Path: "dir/sub", IsDir: true},
			ok:   true,
		},
		{
			name: "blank compressed column",
			line: "2024-01-02 03:04:05 ....A           10  dir/file.txt",
			want: Member{Path: "dir/file.txt", Size: 10},
			ok:   true,
		},
		{
			name: "name with spaces",
			line: "2024-01-02 03:04:05 ....A            7            7  my docs/read me.txt",
			want: Member{Path: "my docs/read me.txt", Size: 7},
			ok:   true,
		},
		{name: "empty", line: "", ok: false},
		{name: "garbage", line: "not an archive row", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parse7zLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseUnrarLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Member
		ok   bool
	}{
		{
			name: "file",
			line: "    -rw-r--r--        10  2024-01-02 03:04  dir/file.txt",
			want: Member{Path: "dir/file.txt", Size: 10},
			ok:   true,
		},
		{
			name: "directory",
			line: "    drwxr-xr-x         0  2024-01-02 03:04  dir/sub",
			want: Member{Path: "dir/sub", IsDir: true},
			ok:   true,
		},
		{
			name: "header",
			line: " Attributes      Size     Date    Time   Name",
			ok:   false,
		},
		{name: "separator", line: "-----------", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseUnrarLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
