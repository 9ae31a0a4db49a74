package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setHome points HOME and the XDG variables at a temp directory.
func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	home := setHome(t)
	cfg := Defaults()
	assert.Equal(t, filepath.Join(home, ".icons"), cfg.IconsDir)
	assert.Equal(t, filepath.Join(home, ".local", "state", "koosh-cursor-tools", "state.json"), cfg.StateFile)
	assert.Equal(t, []int{24, 32, 48, 64, 72, 96}, cfg.Sizes)
	assert.Equal(t, 100, cfg.FrameDelay)
	assert.Equal(t, "Koosh cursor theme", cfg.Comments.Renamed)
}

func TestDefaultsHonorXDG(t *testing.T) {
	setHome(t)
	xdg := t.TempDir()
	t.Setenv("XDG_STATE_HOME", xdg)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, filepath.Join(xdg, "koosh-cursor-tools", "state.json"), Defaults().StateFile)
	assert.Equal(t, filepath.Join(xdg, "koosh-cursor-tools", "config.yaml"), DefaultPath())
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	setHome(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	setHome(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigOverrides(t *testing.T) {
	home := setHome(t)
	path := writeConfig(t, `
icons_dir: ~/themes
sizes: [32, 64]
frame_delay: 50
comments:
  animated: Custom animated
tools:
  hyprcursor_util: flatpak run org.hypr.Util
hotspots:
  text: [0.25, 0.75]
extra_symlinks:
  - target: left_ptr
    link: my-arrow
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "themes"), cfg.IconsDir)
	assert.Equal(t, []int{32, 64}, cfg.Sizes)
	assert.Equal(t, 50, cfg.FrameDelay)
	assert.Equal(t, "Custom animated", cfg.Comments.Animated)
	// untouched keys keep their defaults
	assert.Equal(t, "Koosh cursor theme", cfg.Comments.Renamed)
	assert.Equal(t, "flatpak run org.hypr.Util", cfg.Tools.HyprcursorUtil)
	assert.Equal(t, []float64{0.25, 0.75}, cfg.Hotspots["text"])
	assert.Equal(t, []Symlink{{Target: "left_ptr", Link: "my-arrow"}}, cfg.ExtraSymlinks)
}

func TestLoadConfigEmptySizesFallBack(t *testing.T) {
	setHome(t)
	cfg, err := LoadConfig(writeConfig(t, "sizes: []\n"))
	require.NoError(t, err)
	assert.Equal(t, StandardSizes, cfg.Sizes)
}

func TestLoadConfigInvalid(t *testing.T) {
	setHome(t)
	tests := map[string]string{
		"bad yaml":        "sizes: [",
		"negative size":   "sizes: [24, -1]\n",
		"negative delay":  "frame_delay: -5\n",
		"hotspot arity":   "hotspots:\n  text: [0.5]\n",
		"hotspot range":   "hotspots:\n  text: [0.5, 1.5]\n",
		"half symlink":    "extra_symlinks:\n  - target: left_ptr\n",
		"unbalanced tool": "tools:\n  xcursorgen: '\"xcursorgen'\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
