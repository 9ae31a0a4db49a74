// Package theme models cursor theme directories and writes their metadata files.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"koosh-cursor-tools/internal/fsutil"
)

var (
	// ErrThemeNotFound is returned when a theme directory or its cursors/ subdirectory is missing.
	ErrThemeNotFound = errors.New("theme directory not found")
	// ErrCursorNotFound is returned when an expected cursor file is missing.
	ErrCursorNotFound = errors.New("cursor file not found")
	// ErrManifestNotFound is returned when a hyprcursor manifest.hl is missing.
	ErrManifestNotFound = errors.New("manifest file not found")
	// ErrInvalidName is returned for theme names that are not a single path element.
	ErrInvalidName = errors.New("invalid theme name")
)

// CursorsDirName is the subdirectory holding the X11 cursor files.
const CursorsDirName = "cursors"

// CursorTheme is a theme directory: <Path>/cursors plus metadata files.
type CursorTheme struct {
	Name       string
	Path       string
	CursorsDir string
}

// ValidName rejects names that would not stay inside their parent
// directory once joined to it: "", ".", ".." and anything with a separator.
func ValidName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// New returns the theme called name rooted at path.
func New(name, path string) CursorTheme {
	return CursorTheme{
		Name:       name,
		Path:       path,
		CursorsDir: filepath.Join(path, CursorsDirName),
	}
}

// Exists reports whether both the theme directory and its cursors directory exist.
func (t CursorTheme) Exists() bool {
	return fsutil.Exists(t.Path) && fsutil.Exists(t.CursorsDir)
}

// Check returns ErrThemeNotFound, naming the missing directory, unless Exists.
func (t CursorTheme) Check() error {
	if !fsutil.Exists(t.Path) {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, t.Path)
	}
	if !fsutil.Exists(t.CursorsDir) {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, t.CursorsDir)
	}
	return nil
}

// CreateDirectories creates the theme and cursors directories.
func (t CursorTheme) CreateDirectories() error {
	if err := os.MkdirAll(t.CursorsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cursors directory %s: %w", t.CursorsDir, err)
	}
	return nil
}

// Reset removes any existing theme directory and recreates an empty one.
func (t CursorTheme) Reset() error {
	if err := os.RemoveAll(t.Path); err != nil {
		return fmt.Errorf("failed to remove existing theme directory %s: %w", t.Path, err)
	}
	return t.CreateDirectories()
}

// Cursor returns the path of the named cursor inside the theme.
func (t CursorTheme) Cursor(name string) string {
	return filepath.Join(t.CursorsDir, name)
}

// CursorCount returns the number of entries (files and links) in the cursors directory.
func (t CursorTheme) CursorCount() int {
	entries, err := os.ReadDir(t.CursorsDir)
	if err != nil {
		return 0
	}
	return len(entries)
}
