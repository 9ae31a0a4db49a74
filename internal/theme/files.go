package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names written into a theme directory.
const (
	IndexThemeFile  = "index.theme"
	CursorThemeFile = "cursor.theme"
	ManifestFile    = "manifest.hl"
)

// WriteIndexTheme writes <themePath>/index.theme. When sizes are given, one
// [cursors/N] section is added per size.
func WriteIndexTheme(themePath, name, comment string, sizes []int) error {
	var b strings.Builder
	fmt.Fprintf(&b, `[Icon Theme]
Name=%s
Comment=%s
Inherits=hicolor

# Directory list
Directories=cursors

[cursors]
Context=Cursors
Type=Fixed
`, name, comment)

	for _, size := range sizes {
		fmt.Fprintf(&b, `
[cursors/%d]
Size=%d
Context=Cursors
Type=Fixed
`, size, size)
	}
	return writeFile(filepath.Join(themePath, IndexThemeFile), b.String())
}

// WriteCursorTheme writes <themePath>/cursor.theme.
func WriteCursorTheme(themePath, name, comment string) error {
	content := fmt.Sprintf(`[Icon Theme]
Name=%s
Comment=%s
Inherits=%s
`, name, comment, name)
	return writeFile(filepath.Join(themePath, CursorThemeFile), content)
}

// WriteThemeFiles writes both index.theme and cursor.theme.
func WriteThemeFiles(themePath, name, comment string, sizes []int) error {
	if err := WriteIndexTheme(themePath, name, comment, sizes); err != nil {
		return err
	}
	return WriteCursorTheme(themePath, name, comment)
}

// WriteHyprcursorIndex writes an index.theme that lists both the X11
// cursors directory and the hyprcursors bundle directory.
func WriteHyprcursorIndex(themePath, name, comment string) error {
	content := fmt.Sprintf(`[Icon Theme]
Name=%s
Comment=%s
Inherits=hicolor

# Directory list
Directories=cursors hyprcursors

[cursors]
Context=Cursors
Type=Fixed

[hyprcursors]
Context=Cursors
Type=Fixed
`, name, comment)
	return writeFile(filepath.Join(themePath, IndexThemeFile), content)
}

// WriteManifest writes a fresh hyprcursor manifest.hl.
// Part of the package's library surface; the workflows edit the extracted
// manifest with UpdateManifest instead.
func WriteManifest(themePath, name, description, version string) error {
	content := fmt.Sprintf(`name = %s
description = %s
version = %s
cursors_directory = cursors
`, name, description, version)
	return writeFile(filepath.Join(themePath, ManifestFile), content)
}

// UpdateManifest rewrites the name, description and version lines of an
// existing manifest.hl. Every other line is kept as is.
func UpdateManifest(manifestPath, name, description, version string) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrManifestNotFound, manifestPath)
		}
		return err
	}

	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "name = "):
			lines[i] = "name = " + name
		case strings.HasPrefix(line, "description = "):
			lines[i] = "description = " + description
		case strings.HasPrefix(line, "version = "):
			lines[i] = "version = " + version
		}
	}
	return writeFile(manifestPath, strings.Join(lines, "\n"))
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
