package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"koosh-cursor-tools/internal/archive"
	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
)

// ErrSourceNotFound is returned when add-links cannot locate any cursor files.
var ErrSourceNotFound = errors.New("could not find Koosh cursor theme")

// AddLinksOptions configures AddLinks.
type AddLinksOptions struct {
	// ThemeName names the theme to create.
	ThemeName string
	// SourceDir is a directory or cursor-pack archive; empty means search.
	SourceDir string
}

// AddLinks builds a theme from an existing set of cursor files plus every
// compatibility symlink the files can satisfy, then installs it.
func (e *Env) AddLinks(ctx context.Context, opts AddLinksOptions) (theme.CursorTheme, error) {
	logger.Info("[INFO] Adding missing links to cursor theme...\n")

	th := e.outputTheme(opts.ThemeName)
	if err := theme.ValidName(opts.ThemeName); err != nil {
		return th, err
	}

	source, err := e.findCursorSource(opts.SourceDir)
	if err != nil {
		return th, err
	}
	dir, cleanup, err := archive.Open(source)
	defer cleanup()
	if err != nil {
		return th, err
	}
	if within(dir, th.Path) {
		return th, fmt.Errorf("source %s lies inside the theme %s that is about to be rebuilt", dir, th.Path)
	}

	if err := th.Reset(); err != nil {
		return th, err
	}

	logger.Info("[INFO] Copying cursor files from %s to %s\n", dir, th.CursorsDir)
	copied, err := fsutil.CopyFiles(dir, th.CursorsDir)
	if err != nil {
		return th, err
	}
	logger.Debug("[DEBUG] Copied %d cursor files\n", copied)

	if _, err := e.createSymlinks(th.CursorsDir); err != nil {
		return th, err
	}

	if err := theme.WriteThemeFiles(th.Path, th.Name, e.Config.Comments.Links, nil); err != nil {
		return th, err
	}

	dest, err := e.finish(ctx, th, state.ThemeState{Kind: state.KindLinks, Source: source})
	if err != nil {
		return th, err
	}

	logger.Info("[INFO] Done! Created new cursor theme: %s\n", th.Path)
	if dest != "" {
		logger.Info("[INFO] Also installed to: %s\n", dest)
	}
	printHyprlandHint(th.Name)
	return th, nil
}

// findCursorSource returns the explicit source when it exists, otherwise the
// first existing location of ./cursors, ./Koosh/cursors and <icons>/Koosh/cursors.
func (e *Env) findCursorSource(explicit string) (string, error) {
	if explicit != "" {
		if fsutil.Exists(explicit) {
			return explicit, nil
		}
		logger.Warn("[WARN] Source %s does not exist, searching default locations\n", explicit)
	}

	candidates := []string{
		filepath.Join(e.SearchDir, "cursors"),
		filepath.Join(e.SearchDir, "Koosh", "cursors"),
		filepath.Join(e.Config.IconsDir, "Koosh", "cursors"),
	}
	for _, c := range candidates {
		if fsutil.Exists(c) {
			logger.Debug("[DEBUG] Using cursor source %s\n", c)
			return c, nil
		}
	}
	return "", fmt.Errorf("%w; run this command from the Koosh directory or pass --source-dir", ErrSourceNotFound)
}

func printHyprlandHint(name string) {
	logger.Plain("\nTo use with Hyprland, add to your config:\n")
	logger.Plain("env = XCURSOR_THEME,%s\n", name)
	logger.Plain("env = XCURSOR_SIZE,24\n\n")
	logger.Plain("cursor {\n    size = 24\n}\n\n")
	logger.Plain("Cursors that do not carry multiple sizes look best at size 24, their native size.\n")
}
