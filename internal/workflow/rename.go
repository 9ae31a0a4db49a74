package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"koosh-cursor-tools/internal/archive"
	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/mapping"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
)

// RenameOptions configures RenameCursors.
type RenameOptions struct {
	// InputDir holds Windows-named cursor files, or is an archive of them.
	InputDir string
	// OutputTheme names the X11 theme to create.
	OutputTheme string
}

// RenameResult reports what RenameCursors did.
type RenameResult struct {
	Theme   theme.CursorTheme
	Renamed map[string]string // Windows name -> X11 name
	Skipped []string          // files without a mapping
}

// RenameCursors copies Windows-named cursor files into a new theme under
// their X11 names, adds compatibility links and installs the theme.
func (e *Env) RenameCursors(ctx context.Context, opts RenameOptions) (RenameResult, error) {
	logger.Info("[INFO] Renaming cursor files from Windows to X11 format...\n")
	logger.Info("[INFO] Input directory: %s\n", opts.InputDir)
	logger.Info("[INFO] Output theme: %s\n", opts.OutputTheme)

	res := RenameResult{Theme: e.outputTheme(opts.OutputTheme), Renamed: make(map[string]string)}
	th := res.Theme
	if err := theme.ValidName(opts.OutputTheme); err != nil {
		return res, err
	}

	if !fsutil.Exists(opts.InputDir) {
		return res, fmt.Errorf("input directory does not exist: %s", opts.InputDir)
	}
	dir, cleanup, err := archive.Open(opts.InputDir)
	defer cleanup()
	if err != nil {
		return res, err
	}
	if within(dir, th.Path) {
		return res, fmt.Errorf("input %s lies inside the theme %s that is about to be rebuilt", dir, th.Path)
	}

	if err := th.Reset(); err != nil {
		return res, err
	}

	if err := processWindowsCursors(dir, th, &res); err != nil {
		return res, err
	}

	if _, err := e.createSymlinks(th.CursorsDir); err != nil {
		return res, err
	}

	if err := theme.WriteThemeFiles(th.Path, th.Name, e.Config.Comments.Renamed, nil); err != nil {
		return res, err
	}

	if _, err := e.finish(ctx, th, state.ThemeState{Kind: state.KindRenamed, Source: opts.InputDir}); err != nil {
		return res, err
	}

	logger.Info("[INFO] Done! Created X11 cursor theme: %s\n", th.Name)
	logger.Info("[INFO] Listing files in %s:\n", th.CursorsDir)
	if err := listCursorFiles(th.CursorsDir); err != nil {
		return res, err
	}
	return res, nil
}

// processWindowsCursors copies every mapped file of dir into the theme.
func processWindowsCursors(dir string, th theme.CursorTheme, res *RenameResult) error {
	logger.Info("[INFO] Processing cursor files...\n")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		name := entry.Name()
		x11, ok := mapping.X11Name(name)
		if !ok {
			logger.Plain("  Skipping %s (no mapping defined)\n", name)
			res.Skipped = append(res.Skipped, name)
			continue
		}

		logger.Plain("  Copying %s to %s\n", name, x11)
		dest := th.Cursor(x11)
		if err := fsutil.CopyFile(path, dest, 0); err != nil {
			return fmt.Errorf("failed to copy cursor file %s: %w", path, err)
		}
		if !fsutil.Exists(dest) {
			logger.Error("[ERROR] %s: %s\n", theme.ErrCursorNotFound, dest)
			continue
		}
		logger.Debug("[DEBUG] Verified: %s exists at destination\n", x11)
		res.Renamed[name] = x11
	}
	return nil
}

// listCursorFiles prints every entry of dir with its size or link target.
func listCursorFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		var desc string
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			desc = "-> " + target
		case info.Mode().IsRegular():
			desc = fmt.Sprintf("%d bytes", info.Size())
		default:
			desc = "directory"
		}
		logger.Plain("  %s (%s)\n", entry.Name(), desc)
	}
	return nil
}
