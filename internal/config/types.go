package config

// Config is the top-level structure returned after loading the YAML configuration.
// Every field is optional; Defaults fills in what the file leaves out.
type Config struct {
	// IconsDir is where themes are installed, normally ~/.icons.
	IconsDir string `yaml:"icons_dir"`
	// StateFile records which themes this tool has installed.
	StateFile string `yaml:"state_file"`
	// Sizes are the nominal cursor sizes baked into animated themes.
	Sizes []int `yaml:"sizes"`
	// FrameDelay is the per-frame delay in milliseconds written to xcursorgen configs.
	FrameDelay int `yaml:"frame_delay"`
	// SkipInstall builds theme trees without copying them into IconsDir.
	SkipInstall bool `yaml:"skip_install"`

	Comments      Comments             `yaml:"comments"`
	Tools         Tools                `yaml:"tools"`
	Hotspots      map[string][]float64 `yaml:"hotspots"`
	ExtraSymlinks []Symlink            `yaml:"extra_symlinks"`
}

// Comments holds the Comment= / description text written into theme files.
type Comments struct {
	Links      string `yaml:"links"`
	Renamed    string `yaml:"renamed"`
	Animated   string `yaml:"animated"`
	Hyprcursor string `yaml:"hyprcursor"`
}

// Tools overrides the command used for each external binary.
// Values are shell-quoted command lines, e.g. "flatpak run org.hypr.Util".
// An empty value keeps the default binary name.
type Tools struct {
	Xcur2png           string `yaml:"xcur2png"`
	Xcursorgen         string `yaml:"xcursorgen"`
	Identify           string `yaml:"identify"`
	Magick             string `yaml:"magick"`
	Convert            string `yaml:"convert"`
	HyprcursorUtil     string `yaml:"hyprcursor_util"`
	GtkUpdateIconCache string `yaml:"gtk_update_icon_cache"`
}

// Symlink is an additional compatibility link created next to the built-in table.
// - Target: existing cursor name the link points at.
// - Link: alternate cursor name to create.
type Symlink struct {
	Target string `yaml:"target"`
	Link   string `yaml:"link"`
}
