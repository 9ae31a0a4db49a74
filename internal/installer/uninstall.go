package installer

import (
	"errors"
	"fmt"
	"os"

	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
)

// ErrNotManaged is returned when uninstalling a theme this tool did not install.
var ErrNotManaged = errors.New("theme was not installed by koosh-cursor-tools")

// Uninstall removes an installed theme and its state record. Themes without a
// record are only removed when force is set.
func (in *Installer) Uninstall(name string, force bool) error {
	if err := theme.ValidName(name); err != nil {
		return err
	}
	logger.Info("[INFO] Uninstalling %s...\n", name)

	st, err := state.LoadState(in.StatePath)
	if err != nil {
		return err
	}

	rec, recorded := st.Themes[name]
	installPath := rec.InstallPath
	if installPath == "" {
		installPath = in.ThemeDir(name)
	}
	if !recorded && !force {
		return fmt.Errorf("%w: %s (use --force to remove %s anyway)", ErrNotManaged, name, installPath)
	}

	if fsutil.Exists(installPath) || fsutil.IsSymlink(installPath) {
		logger.Debug("[DEBUG] Attempting to remove %s\n", installPath)
		if err := os.RemoveAll(installPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", installPath, err)
		}
		logger.Info("[INFO] Successfully removed directory %s\n", installPath)
	} else {
		logger.Warn("[WARN] %s is already gone\n", installPath)
	}

	if recorded {
		delete(st.Themes, name)
		return state.SaveState(in.StatePath, st)
	}
	return nil
}
