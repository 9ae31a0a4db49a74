package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

// ThemeMode is applied recursively to built and installed themes.
const ThemeMode os.FileMode = 0o755

// Installer copies built themes into the user's icon directory and keeps the
// state file in step with what it installed.
type Installer struct {
	IconsDir  string
	StatePath string
	Tools     *toolchain.Toolchain
}

// ThemeDir returns <IconsDir>/<name>. Callers that modify the directory
// check name with theme.ValidName first.
func (in *Installer) ThemeDir(name string) string {
	return filepath.Join(in.IconsDir, name)
}

// Install copies the theme's cursors directory, index.theme and cursor.theme
// into <IconsDir>/<name>, replacing any previous installation, and records it.
// A theme already living at its install location is only recorded.
func (in *Installer) Install(th theme.CursorTheme, rec state.ThemeState) (string, error) {
	if err := theme.ValidName(th.Name); err != nil {
		return "", err
	}
	dest := in.ThemeDir(th.Name)

	if samePath(th.Path, dest) {
		logger.Debug("[DEBUG] %s already lives in %s, nothing to copy\n", th.Name, in.IconsDir)
	} else {
		logger.Info("[INFO] Installing to %s\n", dest)
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("failed to remove existing installation %s: %w", dest, err)
		}
		if err := os.MkdirAll(dest, ThemeMode); err != nil {
			return "", err
		}
		if fsutil.Exists(th.CursorsDir) {
			if err := fsutil.CopyDir(th.CursorsDir, filepath.Join(dest, theme.CursorsDirName)); err != nil {
				return "", err
			}
		}
		for _, name := range []string{theme.IndexThemeFile, theme.CursorThemeFile} {
			src := filepath.Join(th.Path, name)
			if !fsutil.Exists(src) {
				continue
			}
			if err := fsutil.CopyFile(src, filepath.Join(dest, name), 0); err != nil {
				return "", err
			}
		}
	}

	if err := fsutil.SetPermissionsRecursive(dest, ThemeMode); err != nil {
		return "", err
	}
	return dest, in.Record(th.Name, dest, rec)
}

// InstallTree replaces <IconsDir>/<name> with a copy of the whole directory src.
func (in *Installer) InstallTree(src, name string) (string, error) {
	if err := theme.ValidName(name); err != nil {
		return "", err
	}
	dest := in.ThemeDir(name)
	if !fsutil.Exists(src) {
		return "", fmt.Errorf("%w: %s", theme.ErrThemeNotFound, src)
	}
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to remove existing installation %s: %w", dest, err)
	}
	if err := fsutil.CopyDir(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Record stores rec for name in the state file, filling in the install path,
// the cursor count and the timestamp.
func (in *Installer) Record(name, dest string, rec state.ThemeState) error {
	if err := theme.ValidName(name); err != nil {
		return err
	}
	if in.StatePath == "" {
		return nil
	}
	st, err := state.LoadState(in.StatePath)
	if err != nil {
		return err
	}
	rec.InstallPath = dest
	rec.Cursors = theme.New(name, dest).CursorCount()
	rec.InstalledAt = time.Now().UTC()
	st.Themes[name] = rec
	return state.SaveState(in.StatePath, st)
}

// UpdateIconCache refreshes the GTK icon cache of an installed theme.
func (in *Installer) UpdateIconCache(ctx context.Context, name string) {
	if in.Tools == nil {
		return
	}
	in.Tools.UpdateIconCache(ctx, in.ThemeDir(name))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
