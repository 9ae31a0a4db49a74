package installer

import (
	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
)

// Installed is one entry of List.
type Installed struct {
	Name string
	state.ThemeState
}

// SyncState drops state records whose install directory no longer exists,
// e.g. themes deleted by hand, and saves the state when anything changed.
// It returns the names that were dropped.
func (in *Installer) SyncState() ([]string, error) {
	st, err := state.LoadState(in.StatePath)
	if err != nil {
		return nil, err
	}

	var dropped []string
	for _, name := range st.Names() {
		if fsutil.Exists(st.Themes[name].InstallPath) {
			logger.Debug("[DEBUG] SyncState: %s is present\n", name)
			continue
		}
		logger.Warn("[WARN] %s was removed outside this tool. Forgetting it.\n", name)
		delete(st.Themes, name)
		dropped = append(dropped, name)
	}

	if len(dropped) > 0 {
		if err := state.SaveState(in.StatePath, st); err != nil {
			return dropped, err
		}
	}
	return dropped, nil
}

// List returns the installed themes sorted by name.
func (in *Installer) List() ([]Installed, error) {
	st, err := state.LoadState(in.StatePath)
	if err != nil {
		return nil, err
	}
	out := make([]Installed, 0, len(st.Themes))
	for _, name := range st.Names() {
		out = append(out, Installed{Name: name, ThemeState: st.Themes[name]})
	}
	return out, nil
}
