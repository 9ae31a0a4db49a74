package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

// appName names the per-user config and state directories.
const appName = "koosh-cursor-tools"

// StandardSizes are the cursor sizes used by modern themes.
var StandardSizes = []int{24, 32, 48, 64, 72, 96}

// DefaultFrameDelay is the per-frame animation delay in milliseconds.
const DefaultFrameDelay = 100

// Defaults returns the configuration used when no config file is present.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		IconsDir:   filepath.Join(home, ".icons"),
		StateFile:  filepath.Join(xdgDir("XDG_STATE_HOME", home, ".local/state"), appName, "state.json"),
		Sizes:      append([]int(nil), StandardSizes...),
		FrameDelay: DefaultFrameDelay,
		Comments: Comments{
			Links:      "Koosh cursor theme with all necessary symlinks",
			Renamed:    "Koosh cursor theme",
			Animated:   "Koosh cursor theme with proper animation support",
			Hyprcursor: "Koosh cursor theme with hyprcursor support for Wayland",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/koosh-cursor-tools/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", home, ".config"), appName, "config.yaml")
}

// LoadConfig reads configFile on top of Defaults and validates the result.
// An empty configFile means DefaultPath, which is allowed to be missing;
// an explicitly named file must exist.
func LoadConfig(configFile string) (Config, error) {
	cfg := Defaults()

	explicit := configFile != ""
	if !explicit {
		configFile = DefaultPath()
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", configFile, err)
	}

	// Fields explicitly blanked in the file fall back to their defaults
	def := Defaults()
	if cfg.IconsDir == "" {
		cfg.IconsDir = def.IconsDir
	}
	if cfg.StateFile == "" {
		cfg.StateFile = def.StateFile
	}
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = def.Sizes
	}
	if cfg.FrameDelay == 0 {
		cfg.FrameDelay = def.FrameDelay
	}
	cfg.IconsDir = expandHome(cfg.IconsDir)
	cfg.StateFile = expandHome(cfg.StateFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return cfg, nil
}

// Validate checks value ranges and that every tool override parses as a command line.
func (c Config) Validate() error {
	for _, size := range c.Sizes {
		if size <= 0 {
			return fmt.Errorf("cursor size must be positive, got %d", size)
		}
	}
	if c.FrameDelay < 0 {
		return fmt.Errorf("frame_delay must not be negative, got %d", c.FrameDelay)
	}
	for name, ratio := range c.Hotspots {
		if len(ratio) != 2 {
			return fmt.Errorf("hotspot for %s needs exactly two ratios, got %d", name, len(ratio))
		}
		for _, r := range ratio {
			if r < 0 || r > 1 {
				return fmt.Errorf("hotspot ratio for %s out of range [0,1]: %v", name, r)
			}
		}
	}
	for _, link := range c.ExtraSymlinks {
		if link.Target == "" || link.Link == "" {
			return fmt.Errorf("extra symlink needs both target and link: %+v", link)
		}
	}
	for _, override := range []string{
		c.Tools.Xcur2png, c.Tools.Xcursorgen, c.Tools.Identify, c.Tools.Magick,
		c.Tools.Convert, c.Tools.HyprcursorUtil, c.Tools.GtkUpdateIconCache,
	} {
		if override == "" {
			continue
		}
		argv, err := shlex.Split(override)
		if err != nil {
			return fmt.Errorf("tool override %q: %w", override, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("tool override %q is empty", override)
		}
	}
	return nil
}

// xdgDir returns the XDG base directory named by env, or home/fallback.
func xdgDir(env, home, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return filepath.Join(home, fallback)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
