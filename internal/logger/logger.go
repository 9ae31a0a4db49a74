package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colorized printing functions for the different log levels. They behave like
// fmt.Printf and write to color.Output, so the workflows can report progress
// the same way whether they run from a terminal or from a test.

// Info logs progress and result messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs recoverable problems in bright magenta, e.g. a cursor that fell
// back to its original file or a missing animation frame.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Plain prints uncolored text such as file listings and configuration hints
// meant to be copied by the user.
var Plain = color.New(color.Reset).PrintfFunc()

// Debug logs debug messages in cyan if enabled, otherwise is a no-op.
// It starts out disabled so packages can log before Init has run.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When enabled, Debug prints cyan-colored messages; when disabled it silently
// drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
