package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func writeTarGz(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err = tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return path
}

func memberByPath(members []Member, path string) (Member, bool) {
	for _, m := range members {
		if m.Path == path {
			return m, true
		}
	}
	return Member{}, false
}

func TestListZip(t *testing.T) {
	path := writeZip(t, map[string]string{
		"a/b/c.txt": "0123456789",
		"a/d.txt":   "01234",
	})

	members, err := List(path)
	require.NoError(t, err)
	require.Len(t, members, 2)

	c, ok := memberByPath(members, "a/b/c.txt")
	require.True(t, ok)
	assert.False(t, c.IsDir)
	assert.EqualValues(t, 10, c.Size)

	d, ok := memberByPath(members, "a/d.txt")
	require.True(t, ok)
	assert.EqualValues(t, 5, d.Size)
}

func TestListZipDirectoryEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirs.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("dir/")
	require.NoError(t, err)
	w, err := zw.Create("dir/file")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	members, err := List(path)
	require.NoError(t, err)
	require.Len(t, members, 2)

	dir, ok := memberByPath(members, "dir")
	require.True(t, ok, "trailing slash should be stripped")
	assert.True(t, dir.IsDir)
}

func TestListTarGz(t *testing.T) {
	path := writeTarGz(t, map[string]string{
		"x.txt":     "abc",
		"sub/y.txt": "defg",
	})

	members, err := List(path)
	require.NoError(t, err)
	require.Len(t, members, 2)

	y, ok := memberByPath(members, "sub/y.txt")
	require.True(t, ok)
	assert.EqualValues(t, 4, y.Size)
}

func TestListUnsupportedFormat(t *testing.T) {
	_, err := List("whatever.txt")
	assert.Error(t, err)
}

func TestListMissingArchive(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "gone.zip"))
	assert.Error(t, err)
}

func TestExtractZip(t *testing.T) {
	path := writeZip(t, map[string]string{
		"a/b/c.txt": "hello",
		"top.txt":   "world",
	})
	dest := t.TempDir()

	require.NoError(t, Extract(path, dest))

	content, err := os.ReadFile(filepath.Join(dest, "a", "b", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	content, err = os.ReadFile(filepath.Join(dest, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(content))
}

func TestExtractTarGz(t *testing.T) {
	path := writeTarGz(t, map[string]string{"d/e.txt": "nested"})
	dest := t.TempDir()

	require.NoError(t, Extract(path, dest))

	content, err := os.ReadFile(filepath.Join(dest, "d", "e.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(content))
}

func TestExtractRejectsEscapingPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evil.tar")
	f, err := os.Create(path)
	require.NoError(t, err)
	tw := tar.NewWriter(f)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Mode:     0o644,
		Size:     1,
		Typeflag: tar.TypeReg,
	}))
	_, err = tw.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, f.Close())

	err = Extract(path, t.TempDir())
	assert.Error(t, err)
}
