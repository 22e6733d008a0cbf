package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Extract unpacks an archive into destDir. Formats with structured readers
// are extracted in-process; 7z and rar shell out to their tools. Member
// paths are confined to destDir so a crafted archive cannot write outside
// it.
func Extract(path, destDir string) error {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".jar"):
		return extractZip(path, destDir)
	case strings.HasSuffix(lower, ".tar"):
		return extractTar(path, destDir, nil)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return extractTar(path, destDir, gzipDecompressor)
	case strings.HasSuffix(lower, ".tar.zst"):
		return extractTar(path, destDir, zstdDecompressor)
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"):
		return extractTar(path, destDir, bzip2Decompressor)
	case strings.HasSuffix(lower, ".7z"):
		return extractWithTool(path, destDir, sevenZipTool)
	case strings.HasSuffix(lower, ".rar"):
		return extractWithTool(path, destDir, unrarTool)
	}
	return fmt.Errorf("unsupported archive format: %s", path)
}

func extractWithTool(path, destDir string, tool toolSpec) error {
	cmd := tool.extract(path, destDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s extract %s: %w: %s", tool.name, path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// securePath joins a member path under destDir, rejecting escapes.
func securePath(destDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("member path escapes destination: %s", name)
	}
	return filepath.Join(destDir, cleaned), nil
}

func extractZip(path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open zip %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := securePath(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("open member %s: %w", f.Name, err)
		}
		err = writeFile(target, src, f.Mode())
		src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTar(path, destDir string, wrap decompressor) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if wrap != nil {
		wrapped, done, err := wrap(f)
		if err != nil {
			return fmt.Errorf("decompress %s: %w", path, err)
		}
		if done != nil {
			defer done()
		}
		src = wrapped
	}

	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		target, err := securePath(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}
}

func writeFile(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}
