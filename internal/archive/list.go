package archive

import (
	"archive/tar"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// List reads an archive's member table. Formats the Go ecosystem covers
// are read structurally; 7z and rar fall back to external tools whose
// line-oriented output is parsed, skipping lines that do not parse. A
// truncated archive yields the members read so far rather than an error.
func List(path string) ([]Member, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".jar"):
		return listZip(path)
	case strings.HasSuffix(lower, ".tar"):
		return listTar(path, nil)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return listTar(path, gzipDecompressor)
	case strings.HasSuffix(lower, ".tar.zst"):
		return listTar(path, zstdDecompressor)
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"):
		return listTar(path, bzip2Decompressor)
	case strings.HasSuffix(lower, ".7z"):
		return listWithTool(path, sevenZipTool)
	case strings.HasSuffix(lower, ".rar"):
		return listWithTool(path, unrarTool)
	}
	return nil, fmt.Errorf("unsupported archive format: %s", path)
}

func listZip(path string) ([]Member, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", path, err)
	}
	defer r.Close()

	members := make([]Member, 0, len(r.File))
	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, "/")
		if name == "" {
			continue
		}
		members = append(members, Member{
			Path:  name,
			IsDir: f.FileInfo().IsDir(),
			Size:  int64(f.UncompressedSize64),
		})
	}
	return members, nil
}

// decompressor wraps a raw archive stream; the returned closer may be nil.
type decompressor func(io.Reader) (io.Reader, func(), error)

func gzipDecompressor(r io.Reader) (io.Reader, func(), error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return gr, func() { _ = gr.Close() }, nil
}

func zstdDecompressor(r io.Reader) (io.Reader, func(), error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return zr.IOReadCloser(), zr.Close, nil
}

func bzip2Decompressor(r io.Reader) (io.Reader, func(), error) {
	return bzip2.NewReader(r), nil, nil
}

func listTar(path string, wrap decompressor) ([]Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if wrap != nil {
		wrapped, done, err := wrap(f)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		if done != nil {
			defer done()
		}
		src = wrapped
	}

	var members []Member
	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Truncated or corrupt tail; keep what parsed.
			break
		}
		switch hdr.Typeflag {
		case tar.TypeReg, tar.TypeDir:
		default:
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(hdr.Name, "./"), "/")
		if name == "" || name == "." {
			continue
		}
		members = append(members, Member{
			Path:  name,
			IsDir: hdr.Typeflag == tar.TypeDir,
			Size:  hdr.Size,
		})
	}
	return members, nil
}
