package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"koosh-cursor-tools/internal/config"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/runner"
	"koosh-cursor-tools/internal/workflow"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to the optional YAML configuration file.
// Empty means the default location under $XDG_CONFIG_HOME.
var configPath string

// outputDir is where the workflows write the theme trees they build.
var outputDir string

// iconsDir overrides the install target from the config file.
var iconsDir string

// cfg is the configuration loaded before any subcommand runs.
var cfg config.Config

// rootCmd is the base command for the CLI tool `koosh-cursor-tools`.
// It sets up the root-level CLI structure and provides global flags.
var rootCmd = &cobra.Command{
	Use:   "koosh-cursor-tools",
	Short: "Build, convert and install Koosh cursor themes",
	Long: `koosh-cursor-tools builds X11 cursor themes from Windows-named cursor
files, adds compatibility symlinks, regenerates cursors at several sizes and
converts themes to the hyprcursor format for Wayland compositors.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRunE runs before any subcommand: it sets up logging and
	// loads the configuration, letting flags override the file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug)

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if iconsDir != "" {
			loaded.IconsDir = iconsDir
		}
		cfg = loaded
		logger.Debug("[DEBUG] Icons directory: %s\n", cfg.IconsDir)
		logger.Debug("[DEBUG] State file: %s\n", cfg.StateFile)
		return nil
	},
}

// newEnv wires the workflows to the real external tools.
func newEnv() (*workflow.Env, error) {
	return workflow.NewEnv(cfg, runner.Exec{}, outputDir)
}

// Execute registers the global flags and runs the selected subcommand.
// Any error is printed and the process exits with status 1.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", ".", "Directory the built themes are written to")
	rootCmd.PersistentFlags().StringVar(&iconsDir, "icons-dir", "", "Install themes here instead of ~/.icons")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
