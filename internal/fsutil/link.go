package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// CreateSymlink creates link pointing at target, replacing whatever file or
// (possibly dangling) link already sits at link.
func CreateSymlink(target, link string) error {
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("failed to remove existing link %s: %w", link, err)
		}
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s: %w", link, target, err)
	}
	return nil
}

// CopySymlink recreates the symlink src inside destDir with the same target.
// It returns the target the new link points at.
func CopySymlink(src, destDir string) (string, error) {
	target, err := os.Readlink(src)
	if err != nil {
		return "", fmt.Errorf("failed to read link %s: %w", src, err)
	}
	return target, CreateSymlink(target, filepath.Join(destDir, filepath.Base(src)))
}

// SetPermissionsRecursive sets mode on root and everything below it.
// Symlinks are left alone; chmod would follow them. It is a no-op on Windows.
func SetPermissionsRecursive(root string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if err := os.Chmod(path, mode); err != nil {
			return fmt.Errorf("failed to set permissions for %s: %w", path, err)
		}
		return nil
	})
}
