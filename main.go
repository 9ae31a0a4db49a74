package main

import (
	"koosh-cursor-tools/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// koosh-cursor-tools manages the Koosh cursor theme directories:
//   - Renames Windows-named cursor files to their X11 names and builds a theme from them
//   - Adds the compatibility symlinks applications look for (arrow, hand2, watch, xterm ...)
//   - Regenerates every cursor at several sizes, keeping animation frames, with xcur2png,
//     ImageMagick and xcursorgen
//   - Converts an installed theme to the hyprcursor format with hyprcursor-util
//   - Installs the results into ~/.icons and records them in a JSON state file so that
//     `list` and `uninstall` only touch themes this tool created
//
// Error handling strategy:
//   - A cursor that cannot be rebuilt falls back to a copy of the original file, so a single
//     bad cursor never aborts a theme build
//   - Optional steps such as the GTK icon cache refresh log a warning and continue
//   - Everything else stops the command, which exits with a non-zero status
//
// Image decoding and cursor encoding are left to the external tools; this program only
// orchestrates them and arranges the files they produce.
func main() {
	cmd.Execute()
}
