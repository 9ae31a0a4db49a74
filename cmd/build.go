package cmd

import (
	"github.com/spf13/cobra"

	"koosh-cursor-tools/internal/workflow"
)

// Flag values of the build commands.
var (
	addLinksOpts   workflow.AddLinksOptions
	animatedOpts   workflow.AnimatedOptions
	hyprcursorOpts workflow.HyprcursorOptions
	renameOpts     workflow.RenameOptions
)

// addLinksCmd copies an existing cursor set into a new theme and adds every
// compatibility symlink the files can satisfy.
var addLinksCmd = &cobra.Command{
	Use:   "add-links",
	Short: "Create a theme with all compatibility symlinks from existing cursors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		_, err = env.AddLinks(cmd.Context(), addLinksOpts)
		return err
	},
}

// createAnimatedCmd rebuilds every cursor of a theme at all configured sizes.
var createAnimatedCmd = &cobra.Command{
	Use:   "create-animated",
	Short: "Create a multi-size animated theme from an X11 theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		_, err = env.CreateAnimated(cmd.Context(), animatedOpts)
		return err
	},
}

// createHyprcursorCmd converts an installed theme with hyprcursor-util.
var createHyprcursorCmd = &cobra.Command{
	Use:   "create-hyprcursor",
	Short: "Convert an installed theme to the hyprcursor format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		_, err = env.CreateHyprcursor(cmd.Context(), hyprcursorOpts)
		return err
	},
}

// renameCursorsCmd turns a directory (or archive) of Windows-named cursors
// into an X11 theme.
var renameCursorsCmd = &cobra.Command{
	Use:   "rename-cursors",
	Short: "Rename Windows cursor files to X11 names and build a theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		_, err = env.RenameCursors(cmd.Context(), renameOpts)
		return err
	},
}

func init() {
	f := addLinksCmd.Flags()
	f.StringVarP(&addLinksOpts.ThemeName, "theme-name", "t", "Koosh-Complete", "Name of the theme to create")
	f.StringVarP(&addLinksOpts.SourceDir, "source-dir", "s", "", "Directory or archive with the cursor files (default: search ./cursors, ./Koosh/cursors, ~/.icons/Koosh/cursors)")

	f = createAnimatedCmd.Flags()
	f.StringVarP(&animatedOpts.InputTheme, "input-theme", "i", "Koosh-X11", "Input theme directory or installed theme name")
	f.StringVarP(&animatedOpts.OutputTheme, "output-theme", "o", "Koosh-Animated", "Name of the theme to create")

	f = createHyprcursorCmd.Flags()
	f.StringVarP(&hyprcursorOpts.SourceTheme, "source-theme", "s", "Koosh-Animated", "Installed theme to convert")
	f.StringVarP(&hyprcursorOpts.DestTheme, "dest-theme", "d", "Koosh-Hyprcursor2", "Name of the hyprcursor theme to install")

	f = renameCursorsCmd.Flags()
	f.StringVarP(&renameOpts.InputDir, "input-dir", "i", "output", "Directory or archive with Windows-named cursor files")
	f.StringVarP(&renameOpts.OutputTheme, "output-theme", "o", "Koosh-X11", "Name of the theme to create")

	rootCmd.AddCommand(addLinksCmd, createAnimatedCmd, createHyprcursorCmd, renameCursorsCmd)
}
