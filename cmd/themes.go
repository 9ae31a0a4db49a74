package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"koosh-cursor-tools/internal/logger"
)

// force lets uninstall remove themes that have no state record.
var force bool

// listCmd prints the themes recorded in the state file, after forgetting
// any that were deleted by hand.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the themes installed by this tool",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := env.Installer.SyncState(); err != nil {
			return err
		}
		themes, err := env.Installer.List()
		if err != nil {
			return err
		}
		if len(themes) == 0 {
			logger.Info("[INFO] No themes installed\n")
			return nil
		}
		for _, th := range themes {
			line := []string{th.Kind, th.InstallPath}
			if len(th.Sizes) > 0 {
				line = append(line, "sizes "+joinInts(th.Sizes))
			}
			logger.Plain("%-20s %d cursors  %s  (%s)\n",
				th.Name, th.Cursors, strings.Join(line, "  "), th.InstalledAt.Local().Format(time.DateTime))
		}
		return nil
	},
}

// uninstallCmd removes an installed theme and its state record.
var uninstallCmd = &cobra.Command{
	Use:   "uninstall <theme>",
	Short: "Remove an installed theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return env.Installer.Uninstall(args[0], force)
	},
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func init() {
	uninstallCmd.Flags().BoolVarP(&force, "force", "f", false, "Remove the theme even if it was not installed by this tool")

	rootCmd.AddCommand(listCmd, uninstallCmd)
}
