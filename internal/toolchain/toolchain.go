// Package toolchain exposes the external cursor and image tools as typed calls.
//
// Every tool resolves to an argv prefix: the binary name by default, or the
// shell-split override from the config file. Nothing here decodes or encodes
// images itself; all processing is delegated to the installed binaries.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"koosh-cursor-tools/internal/config"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/runner"
)

// Logical tool names.
const (
	Xcur2png           = "xcur2png"
	Xcursorgen         = "xcursorgen"
	Identify           = "identify"
	Magick             = "magick"
	Convert            = "convert"
	HyprcursorUtil     = "hyprcursor-util"
	GtkUpdateIconCache = "gtk-update-icon-cache"
)

// DefaultImageSize is assumed when the width of a frame cannot be determined.
const DefaultImageSize = 48

// Toolchain runs the external tools through a runner.Runner.
type Toolchain struct {
	r    runner.Runner
	argv map[string][]string
}

// New resolves every tool's command line, applying the overrides.
func New(r runner.Runner, overrides config.Tools) (*Toolchain, error) {
	tc := &Toolchain{r: r, argv: make(map[string][]string)}
	for name, override := range map[string]string{
		Xcur2png:           overrides.Xcur2png,
		Xcursorgen:         overrides.Xcursorgen,
		Identify:           overrides.Identify,
		Magick:             overrides.Magick,
		Convert:            overrides.Convert,
		HyprcursorUtil:     overrides.HyprcursorUtil,
		GtkUpdateIconCache: overrides.GtkUpdateIconCache,
	} {
		if override == "" {
			tc.argv[name] = []string{name}
			continue
		}
		argv, err := shlex.Split(override)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s override %q: %w", name, override, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty %s override", name)
		}
		tc.argv[name] = argv
	}
	return tc, nil
}

// Command returns the argv prefix used for tool.
func (tc *Toolchain) Command(tool string) []string {
	if argv, ok := tc.argv[tool]; ok {
		return argv
	}
	return []string{tool}
}

// Available reports whether the executable behind tool is on PATH.
func (tc *Toolchain) Available(tool string) bool {
	return tc.r.LookPath(tc.Command(tool)[0])
}

func (tc *Toolchain) run(ctx context.Context, dir, tool string, args ...string) (runner.Result, error) {
	argv := tc.Command(tool)
	full := append(append([]string(nil), argv[1:]...), args...)
	return tc.r.Run(ctx, dir, argv[0], full...)
}

// ExtractFrames splits an X11 cursor file into <base>_NNN.png frames inside
// outDir. The xcur2png config file is written into outDir as well, so nothing
// lands in the current directory.
func (tc *Toolchain) ExtractFrames(ctx context.Context, cursorFile, outDir string) error {
	base := filepath.Base(cursorFile)
	_, err := tc.run(ctx, "", Xcur2png, cursorFile,
		"-d", outDir,
		"-c", filepath.Join(outDir, base+".conf"),
	)
	return err
}

// FrameName returns the file name xcur2png gives frame n of base.
func FrameName(base string, n int) string {
	return fmt.Sprintf("%s_%03d.png", base, n)
}

// CountFrames returns one more than the highest frame number among the
// <base>_NNN.png files in dir, so a gap in the numbering still counts the
// missing frame.
func CountFrames(dir, base string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, base+"_") || !strings.HasSuffix(name, ".png") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, base+"_"), ".png"))
		if err != nil || n < 0 {
			continue
		}
		count = max(count, n+1)
	}
	return count, nil
}

// ImageWidth returns the pixel width of an image via ImageMagick identify.
// When identify itself fails DefaultImageSize is returned; unparsable output
// is an error.
func (tc *Toolchain) ImageWidth(ctx context.Context, image string) (int, error) {
	res, err := tc.run(ctx, "", Identify, "-format", "%w", image)
	if err != nil {
		logger.Debug("[DEBUG] identify failed for %s, assuming %d: %v\n", image, DefaultImageSize, err)
		return DefaultImageSize, nil
	}
	width, err := strconv.Atoi(strings.TrimSpace(string(res.Stdout)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse image size of %s: %w", image, err)
	}
	return width, nil
}

// ImageSizes returns the distinct widths of every PNG in dir, ascending.
func (tc *Toolchain) ImageSizes(ctx context.Context, dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var sizes []int
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".png" {
			continue
		}
		w, err := tc.ImageWidth(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if !seen[w] {
			seen[w] = true
			sizes = append(sizes, w)
		}
	}
	sort.Ints(sizes)
	return sizes, nil
}

// Scale resizes src to size x size pixels, preferring ImageMagick 7's magick
// and falling back to convert.
func (tc *Toolchain) Scale(ctx context.Context, src, dst string, size int) error {
	tool := Convert
	if tc.Available(Magick) {
		tool = Magick
	}
	geometry := fmt.Sprintf("%dx%d", size, size)
	if _, err := tc.run(ctx, "", tool, src, "-resize", geometry, dst); err != nil {
		return fmt.Errorf("image scaling failed: %w", err)
	}
	return nil
}

// GenerateCursor runs xcursorgen on configName inside workDir, producing outName there.
// Frame paths in the config are resolved relative to workDir.
func (tc *Toolchain) GenerateCursor(ctx context.Context, workDir, configName, outName string) error {
	_, err := tc.run(ctx, workDir, Xcursorgen, configName, outName)
	return err
}

// HyprcursorExtract unpacks an installed X11 theme into outDir/extracted_<theme>.
func (tc *Toolchain) HyprcursorExtract(ctx context.Context, themeDir, outDir string) error {
	_, err := tc.run(ctx, "", HyprcursorUtil, "--extract", themeDir, "--output", outDir)
	return err
}

// HyprcursorCreate builds a hyprcursor bundle from an extracted theme into outDir/theme_<name>.
func (tc *Toolchain) HyprcursorCreate(ctx context.Context, extractedDir, outDir string) error {
	_, err := tc.run(ctx, "", HyprcursorUtil, "--create", extractedDir, "--output", outDir)
	return err
}

// ErrToolMissing is returned by Require for a tool that is not on PATH.
var ErrToolMissing = errors.New("required tool not found")

// Require fails when any of the given tools is unavailable.
func (tc *Toolchain) Require(tools ...string) error {
	for _, tool := range tools {
		if !tc.Available(tool) {
			return fmt.Errorf("%w: %s", ErrToolMissing, tc.Command(tool)[0])
		}
	}
	return nil
}

// UpdateIconCache refreshes the GTK icon cache for dir. The step is optional:
// a missing binary or a failed run is logged and otherwise ignored.
func (tc *Toolchain) UpdateIconCache(ctx context.Context, dir string) {
	if !tc.Available(GtkUpdateIconCache) {
		logger.Debug("[DEBUG] gtk-update-icon-cache not found, skipping icon cache update\n")
		return
	}
	if _, err := tc.run(ctx, "", GtkUpdateIconCache, "-f", "-t", dir); err != nil {
		logger.Warn("[WARN] Failed to update icon cache for %s: %v\n", dir, err)
	}
}
