package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"koosh-cursor-tools/internal/logger"
)

// Theme kinds recorded in ThemeState.Kind.
const (
	KindLinks      = "links"
	KindRenamed    = "renamed"
	KindAnimated   = "animated"
	KindHyprcursor = "hyprcursor"
)

// ThemeState is the saved record of a theme installed by this tool.
type ThemeState struct {
	Kind        string    `json:"kind"`            // Which workflow produced the theme
	Source      string    `json:"source"`          // Input directory, archive or theme the build started from
	InstallPath string    `json:"install_path"`    // Absolute path of the installed theme directory
	Sizes       []int     `json:"sizes,omitempty"` // Nominal sizes baked into the cursors, if any
	Cursors     int       `json:"cursors"`         // Number of entries in the installed cursors directory
	InstalledAt time.Time `json:"installed_at"`
}

// State holds every installed theme keyed by theme name.
type State struct {
	Themes map[string]ThemeState `json:"themes"`
}

// LoadState loads the saved state from a JSON file at the given path.
// A missing file yields an empty state; a corrupt file is reported as an error
// so it is never silently overwritten.
func LoadState(path string) (*State, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Themes: make(map[string]ThemeState)}, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if st.Themes == nil {
		st.Themes = make(map[string]ThemeState)
	}
	return &st, nil
}

// SaveState writes the given State to path as indented JSON, creating the
// parent directory when needed.
func SaveState(path string, st *State) error {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}

// Names returns the recorded theme names in sorted order.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.Themes))
	for name := range s.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
