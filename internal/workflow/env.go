// Package workflow implements the cursor theme batch workflows: add-links,
// rename-cursors, create-animated and create-hyprcursor.
//
// Each workflow is a fixed sequence of file operations and calls into
// external tools. Workflows run strictly sequentially; per-cursor failures
// in the animated pipeline fall back to copying the original file.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"koosh-cursor-tools/internal/config"
	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/installer"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/mapping"
	"koosh-cursor-tools/internal/runner"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

// Env carries what every workflow needs: configuration, the external tools,
// the installer and the directory build trees are written to.
type Env struct {
	Config    config.Config
	Tools     *toolchain.Toolchain
	Installer *installer.Installer
	// OutputDir holds the theme trees the workflows build.
	OutputDir string
	// SearchDir is where add-links looks for cursors/ and Koosh/cursors.
	SearchDir string

	hotspots mapping.HotspotTable
}

// NewEnv wires the toolchain and installer for cfg on top of r.
func NewEnv(cfg config.Config, r runner.Runner, outputDir string) (*Env, error) {
	tc, err := toolchain.New(r, cfg.Tools)
	if err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = "."
	}

	hotspots := make(mapping.HotspotTable, len(cfg.Hotspots))
	for name, ratio := range cfg.Hotspots {
		if len(ratio) == 2 {
			hotspots[name] = [2]float64{ratio[0], ratio[1]}
		}
	}

	return &Env{
		Config: cfg,
		Tools:  tc,
		Installer: &installer.Installer{
			IconsDir:  cfg.IconsDir,
			StatePath: cfg.StateFile,
			Tools:     tc,
		},
		OutputDir: outputDir,
		SearchDir: ".",
		hotspots:  hotspots,
	}, nil
}

// outputTheme returns the build location for the theme called name.
func (e *Env) outputTheme(name string) theme.CursorTheme {
	return theme.New(name, filepath.Join(e.OutputDir, name))
}

// links returns the built-in compatibility links followed by the configured extras.
func (e *Env) links() []mapping.Link {
	links := mapping.Symlinks()
	for _, extra := range e.Config.ExtraSymlinks {
		links = append(links, mapping.Link{Target: extra.Target, Link: extra.Link})
	}
	return links
}

// createSymlinks adds every compatibility link whose target exists in
// cursorsDir and whose link name is not already taken. It returns the
// number of links created.
func (e *Env) createSymlinks(cursorsDir string) (int, error) {
	logger.Info("[INFO] Creating cursor symlinks...\n")
	created := 0
	for _, l := range e.links() {
		target := filepath.Join(cursorsDir, l.Target)
		link := filepath.Join(cursorsDir, l.Link)
		if !fsutil.Exists(target) || fsutil.Exists(link) {
			continue
		}
		if err := fsutil.CreateSymlink(l.Target, link); err != nil {
			return created, fmt.Errorf("failed to create symlink %s -> %s: %w", l.Link, l.Target, err)
		}
		logger.Debug("[DEBUG] Created symlink: %s -> %s\n", l.Link, l.Target)
		created++
	}
	logger.Info("[INFO] Created %d symlinks\n", created)
	return created, nil
}

// finish installs the built theme into the icons directory, fixes
// permissions on the build tree and refreshes the icon cache. It returns the
// install location, or "" when installation is disabled.
func (e *Env) finish(ctx context.Context, th theme.CursorTheme, rec state.ThemeState) (string, error) {
	var dest string
	if e.Config.SkipInstall {
		logger.Info("[INFO] Skipping installation into %s\n", e.Config.IconsDir)
	} else {
		var err error
		if dest, err = e.Installer.Install(th, rec); err != nil {
			return "", fmt.Errorf("failed to install %s: %w", th.Name, err)
		}
	}

	if err := fsutil.SetPermissionsRecursive(th.Path, installer.ThemeMode); err != nil {
		return dest, err
	}

	if dest != "" {
		e.Installer.UpdateIconCache(ctx, th.Name)
	}
	return dest, nil
}

// within reports whether path lies inside (or is) root.
func within(path, root string) bool {
	absPath, err1 := filepath.Abs(path)
	absRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
