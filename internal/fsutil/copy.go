package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path exists, following symlinks.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsSymlink reports whether path is itself a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// CopyFile copies a file from src to dst, following symlinks on src.
// It creates any missing directories in the destination path and
// preserves the source permissions unless modeOverride is non-zero.
func CopyFile(src, dst string, modeOverride os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	// A symlink left at dst would redirect the write into its target
	if IsSymlink(dst) {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("remove existing link failed: %w", err)
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s -> %s failed: %w", src, dst, err)
	}

	if modeOverride != 0 {
		return os.Chmod(dst, modeOverride)
	}
	stat, err := in.Stat()
	if err != nil {
		return err
	}
	return os.Chmod(dst, stat.Mode().Perm())
}

// CopyDir copies the tree rooted at src into dst. Regular files are copied
// with their permissions and symlinks are recreated with the same target.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("source directory does not exist: %s", src)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}
	// WalkDir does not descend into a symlinked root
	if src, err = filepath.EvalSymlinks(src); err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dst, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("failed to read link %s: %w", path, err)
			}
			return CreateSymlink(link, target)
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		default:
			return CopyFile(path, target, 0)
		}
	})
}

// CopyFiles copies every regular file directly inside src into dst, following
// symlinks so that link entries become real files. Subdirectories are skipped.
// It returns the number of files copied.
func CopyFiles(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}
	copied := 0
	for _, entry := range entries {
		path := filepath.Join(src, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			// dangling links and directories
			continue
		}
		if err := CopyFile(path, filepath.Join(dst, entry.Name()), 0); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", path, err)
		}
		copied++
	}
	return copied, nil
}
