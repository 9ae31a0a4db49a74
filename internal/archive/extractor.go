// Package archive unpacks cursor packs shipped as .zip, .7z or tar archives.
package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
)

var tarSuffixes = []string{".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// IsArchive reports whether path names a supported archive format.
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".zip") || strings.HasSuffix(lower, ".7z") {
		return true
	}
	for _, s := range tarSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// Extract routes to the appropriate extraction function based on archive type
// and unpacks src into dest.
func Extract(src, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return extract7z(src, dest)
	case IsArchive(lower):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// safeJoin joins an archive entry name to dest, rejecting entries that
// would land outside dest, either by name or through a symlinked parent
// directory created by an earlier entry.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if !inside(dest, target) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	rel, _ := filepath.Rel(dest, filepath.Dir(target))
	dir := dest
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		if part == "." || part == "" {
			continue
		}
		dir = filepath.Join(dir, part)
		info, err := os.Lstat(dir)
		if err != nil {
			break // not created yet, so neither are its children
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("archive entry %s lies beneath symlink %s", name, dir)
		}
	}
	return target, nil
}

// inside reports whether path is dest or lies below it.
func inside(dest, path string) bool {
	rel, err := filepath.Rel(dest, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// writeEntry creates target from r with the given permissions. A symlink
// left at target by an earlier entry is replaced, never followed.
func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if info, err := os.Lstat(target); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return err
		}
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeLink creates a symlink entry. Links must resolve inside dest.
func writeLink(dest, target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("refusing absolute symlink %s -> %s", target, linkname)
	}
	if !inside(dest, filepath.Join(filepath.Dir(target), linkname)) {
		return fmt.Errorf("refusing symlink %s -> %s pointing outside the archive", target, linkname)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return fsutil.CreateSymlink(linkname, target)
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			// cursor packs ship their aliases as links
			if err := writeLink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		default:
			logger.Debug("[DEBUG] skipping tar entry %s (type %c)\n", hdr.Name, hdr.Typeflag)
		}
	}
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		if f.Mode()&os.ModeSymlink != 0 {
			// zip stores the link target as the entry body
			var linkname []byte
			linkname, err = io.ReadAll(rc)
			if err == nil {
				err = writeLink(dest, target, string(linkname))
			}
		} else {
			err = writeEntry(target, rc, f.Mode())
		}
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// FindCursorDir locates the directory holding cursor files inside an
// extracted tree: single top-level directories are descended, and a
// cursors/ subdirectory is preferred when present.
func FindCursorDir(root string) string {
	dir := root
	for {
		if fsutil.Exists(filepath.Join(dir, "cursors")) {
			return filepath.Join(dir, "cursors")
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) != 1 || !entries[0].IsDir() {
			return dir
		}
		dir = filepath.Join(dir, entries[0].Name())
	}
}

// Open returns a directory of cursor files for input. Plain directories are
// returned unchanged. Archives are extracted into a temporary directory, and
// the returned cleanup function removes it.
func Open(input string) (dir string, cleanup func(), err error) {
	noop := func() {}
	info, err := os.Stat(input)
	if err != nil {
		return "", noop, err
	}
	if info.IsDir() || !IsArchive(input) {
		return input, noop, nil
	}

	tmp, err := os.MkdirTemp("", "koosh-pack-*")
	if err != nil {
		return "", noop, err
	}
	cleanup = func() {
		if err := os.RemoveAll(tmp); err != nil {
			logger.Warn("[WARN] Failed to remove %s: %v\n", tmp, err)
		}
	}
	logger.Info("[INFO] Extracting cursor pack %s\n", input)
	if err := Extract(input, tmp); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("failed to extract %s: %w", input, err)
	}
	return FindCursorDir(tmp), cleanup, nil
}
