package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/installer"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

// HyprcursorVersion is written into the manifest of every generated bundle.
const HyprcursorVersion = "1.0"

// HyprcursorOptions configures CreateHyprcursor.
type HyprcursorOptions struct {
	// SourceTheme names an installed X11 theme under the icons directory.
	SourceTheme string
	// DestTheme names the hyprcursor theme to install.
	DestTheme string
}

// CreateHyprcursor converts an installed X11 theme into a hyprcursor bundle
// with hyprcursor-util and installs it next to a copy of the X11 cursors.
// The result always goes into the icons directory.
func (e *Env) CreateHyprcursor(ctx context.Context, opts HyprcursorOptions) (string, error) {
	logger.Info("[INFO] Creating hyprcursor theme from %s...\n", opts.SourceTheme)

	for _, name := range []string{opts.SourceTheme, opts.DestTheme} {
		if err := theme.ValidName(name); err != nil {
			return "", err
		}
	}
	if opts.SourceTheme == opts.DestTheme {
		return "", fmt.Errorf("source and destination theme are both %s", opts.SourceTheme)
	}
	if err := e.Tools.Require(toolchain.HyprcursorUtil); err != nil {
		return "", err
	}

	extractDir, err := os.MkdirTemp("", "koosh-extract-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(extractDir)
	outputDir, err := os.MkdirTemp("", "koosh-hyprcursor-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outputDir)

	source := theme.New(opts.SourceTheme, e.Installer.ThemeDir(opts.SourceTheme))

	logger.Info("[INFO] Step 1: Extracting source theme...\n")
	if !source.Exists() {
		return "", fmt.Errorf("%w: %s", theme.ErrThemeNotFound, source.Path)
	}
	if err := e.Tools.HyprcursorExtract(ctx, source.Path, extractDir); err != nil {
		return "", fmt.Errorf("failed to extract source theme with hyprcursor-util: %w", err)
	}
	extracted := filepath.Join(extractDir, "extracted_"+opts.SourceTheme)

	logger.Info("[INFO] Step 2: Updating manifest file...\n")
	manifest := filepath.Join(extracted, theme.ManifestFile)
	if err := theme.UpdateManifest(manifest, opts.DestTheme, e.Config.Comments.Hyprcursor, HyprcursorVersion); err != nil {
		return "", err
	}

	logger.Info("[INFO] Step 3: Creating hyprcursor theme...\n")
	if err := e.Tools.HyprcursorCreate(ctx, extracted, outputDir); err != nil {
		return "", fmt.Errorf("failed to create hyprcursor theme: %w", err)
	}

	logger.Info("[INFO] Step 4: Installing theme to %s...\n", e.Installer.ThemeDir(opts.DestTheme))
	generated := filepath.Join(outputDir, "theme_"+opts.DestTheme)
	if !fsutil.Exists(generated) {
		return "", fmt.Errorf("generated theme directory not found: %s", generated)
	}
	dest, err := e.Installer.InstallTree(generated, opts.DestTheme)
	if err != nil {
		return "", err
	}
	installed := theme.New(opts.DestTheme, dest)

	logger.Info("[INFO] Step 5: Copying X11 cursors for compatibility...\n")
	if fsutil.Exists(source.CursorsDir) {
		if err := fsutil.CopyDir(source.CursorsDir, installed.CursorsDir); err != nil {
			return dest, err
		}
	} else {
		logger.Warn("[WARN] %s has no cursors directory, skipping X11 fallback\n", source.Name)
	}

	logger.Info("[INFO] Step 6: Creating theme configuration files...\n")
	comment := e.Config.Comments.Hyprcursor
	if err := theme.WriteHyprcursorIndex(dest, opts.DestTheme, comment); err != nil {
		return dest, err
	}
	if err := theme.WriteCursorTheme(dest, opts.DestTheme, comment); err != nil {
		return dest, err
	}
	if err := fsutil.SetPermissionsRecursive(dest, installer.ThemeMode); err != nil {
		return dest, err
	}

	logger.Info("[INFO] Step 7: Updating icon cache...\n")
	e.Installer.UpdateIconCache(ctx, opts.DestTheme)

	if err := e.Installer.Record(opts.DestTheme, dest, state.ThemeState{
		Kind:   state.KindHyprcursor,
		Source: source.Path,
	}); err != nil {
		return dest, err
	}

	// the deferred removals do the work
	logger.Info("[INFO] Step 8: Cleaning up...\n")

	logger.Info("[INFO] Done! Created hyprcursor theme: %s\n", opts.DestTheme)
	return dest, nil
}
