package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"koosh-cursor-tools/internal/fsutil"
	"koosh-cursor-tools/internal/logger"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

// Names used inside each cursor's working directory.
const (
	workingDirName   = "working"
	verifyDirName    = "verify"
	cursorConfigName = "cursor.config"
	cursorOutputName = "cursor"
)

// AnimatedOptions configures CreateAnimated.
type AnimatedOptions struct {
	// InputTheme is a theme directory (or the name of an installed theme).
	InputTheme string
	// OutputTheme names the multi-size theme to create.
	OutputTheme string
}

// Outcome says how one cursor ended up in the output theme.
type Outcome int

const (
	// Rebuilt cursors were regenerated with every configured size.
	Rebuilt Outcome = iota
	// CopiedOriginal cursors could not be rebuilt and were copied unchanged.
	CopiedOriginal
	// Linked entries were symlinks recreated verbatim.
	Linked
)

func (o Outcome) String() string {
	switch o {
	case Rebuilt:
		return "rebuilt"
	case CopiedOriginal:
		return "copied original"
	case Linked:
		return "linked"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// AnimatedResult reports the outcome of every input cursor.
type AnimatedResult struct {
	Theme    theme.CursorTheme
	Outcomes map[string]Outcome
}

// Count returns how many cursors ended with outcome o.
func (r AnimatedResult) Count(o Outcome) int {
	n := 0
	for _, got := range r.Outcomes {
		if got == o {
			n++
		}
	}
	return n
}

// CreateAnimated rebuilds every cursor of the input theme as a multi-size
// (and, where the source has several frames, animated) X11 cursor.
func (e *Env) CreateAnimated(ctx context.Context, opts AnimatedOptions) (AnimatedResult, error) {
	res := AnimatedResult{Theme: e.outputTheme(opts.OutputTheme), Outcomes: make(map[string]Outcome)}
	out := res.Theme

	logger.Info("[INFO] Creating animated cursor theme\n")
	logger.Info("[INFO] Input theme: %s\n", opts.InputTheme)
	logger.Info("[INFO] Output theme: %s\n", opts.OutputTheme)
	logger.Info("[INFO] Sizes: %v\n", e.Config.Sizes)

	if err := theme.ValidName(opts.OutputTheme); err != nil {
		return res, err
	}
	in, err := e.inputTheme(opts.InputTheme)
	if err != nil {
		return res, err
	}
	if within(in.Path, out.Path) || within(out.Path, in.Path) {
		return res, fmt.Errorf("input theme %s and output theme %s overlap", in.Path, out.Path)
	}
	for _, tool := range []string{toolchain.Xcur2png, toolchain.Xcursorgen} {
		if !e.Tools.Available(tool) {
			logger.Warn("[WARN] %s not found; cursors will be copied unchanged\n", tool)
		}
	}

	if err := out.Reset(); err != nil {
		return res, err
	}

	tmp, err := os.MkdirTemp("", "koosh-animated-*")
	if err != nil {
		return res, err
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			logger.Warn("[WARN] Failed to remove temporary directory %s: %v\n", tmp, err)
		}
	}()

	logger.Info("[INFO] Processing cursor files...\n")
	entries, err := os.ReadDir(in.CursorsDir)
	if err != nil {
		return res, err
	}
	for _, entry := range entries {
		name := entry.Name()
		src := in.Cursor(name)

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			target, err := fsutil.CopySymlink(src, out.CursorsDir)
			if err != nil {
				return res, err
			}
			logger.Debug("[DEBUG] Copying symlink: %s -> %s\n", name, target)
			res.Outcomes[name] = Linked
		case entry.Type().IsRegular():
			logger.Info("[INFO] Processing: %s\n", name)
			outcome, err := e.animateCursor(ctx, src, out, filepath.Join(tmp, name))
			if err != nil {
				return res, err
			}
			res.Outcomes[name] = outcome
		}
	}

	if _, err := e.createSymlinks(out.CursorsDir); err != nil {
		return res, err
	}

	if err := theme.WriteThemeFiles(out.Path, out.Name, e.Config.Comments.Animated, e.Config.Sizes); err != nil {
		return res, err
	}

	dest, err := e.finish(ctx, out, state.ThemeState{
		Kind:   state.KindAnimated,
		Source: in.Path,
		Sizes:  e.Config.Sizes,
	})
	if err != nil {
		return res, err
	}

	logger.Info("[INFO] Rebuilt %d cursors, copied %d unchanged, kept %d links\n",
		res.Count(Rebuilt), res.Count(CopiedOriginal), res.Count(Linked))
	logger.Info("[INFO] Done! Created animated cursor theme: %s\n", out.Path)
	if dest != "" {
		logger.Info("[INFO] Also installed to: %s\n", dest)
	}
	return res, nil
}

// inputTheme resolves the input theme: a directory relative to the working
// directory first, then an installed theme of that name.
func (e *Env) inputTheme(input string) (theme.CursorTheme, error) {
	local := theme.New(filepath.Base(input), input)
	if local.Exists() || strings.ContainsRune(input, os.PathSeparator) {
		return local, local.Check()
	}
	installed := theme.New(input, e.Installer.ThemeDir(input))
	if theme.ValidName(input) == nil && installed.Exists() {
		return installed, nil
	}
	return local, local.Check()
}

// animateCursor runs the per-cursor pipeline for src inside workDir. Any
// failure along the way falls back to copying src unchanged; only a failing
// fallback copy is returned as an error.
func (e *Env) animateCursor(ctx context.Context, src string, out theme.CursorTheme, workDir string) (Outcome, error) {
	name := filepath.Base(src)
	dest := out.Cursor(name)

	fallback := func(reason string, args ...any) (Outcome, error) {
		logger.Warn("[WARN]     "+reason+", copying original\n", args...)
		if err := fsutil.CopyFile(src, dest, 0); err != nil {
			return CopiedOriginal, fmt.Errorf("failed to copy original cursor %s: %w", name, err)
		}
		return CopiedOriginal, nil
	}

	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fallback("cannot create working directory: %v", err)
	}

	if err := e.Tools.ExtractFrames(ctx, src, workDir); err != nil {
		return fallback("xcur2png failed: %v", err)
	}
	frames, err := toolchain.CountFrames(workDir, name)
	if err != nil || frames == 0 {
		return fallback("failed to extract cursor")
	}
	logger.Info("[INFO]     Found %d animation frames\n", frames)

	generated, err := e.buildMultiSize(ctx, workDir, name, frames)
	if err != nil {
		return fallback("%v", err)
	}

	if err := fsutil.CopyFile(generated, dest, 0); err != nil {
		return CopiedOriginal, err
	}
	logger.Info("[INFO]     Successfully created multi-size animated cursor\n")
	e.verifyCursor(ctx, generated)
	return Rebuilt, nil
}

// buildMultiSize scales every extracted frame to every configured size,
// writes the xcursorgen config and generates the cursor. It returns the path
// of the generated cursor file.
func (e *Env) buildMultiSize(ctx context.Context, frameDir, name string, frames int) (string, error) {
	origSize := toolchain.DefaultImageSize
	if first := filepath.Join(frameDir, toolchain.FrameName(name, 0)); fsutil.Exists(first) {
		w, err := e.Tools.ImageWidth(ctx, first)
		if err != nil {
			return "", err
		}
		origSize = w
	}
	logger.Info("[INFO]     Original size: %dx%d\n", origSize, origSize)

	working := filepath.Join(frameDir, workingDirName)
	if err := os.MkdirAll(working, 0o755); err != nil {
		return "", err
	}

	var conf strings.Builder
	for _, size := range e.Config.Sizes {
		hx, hy := e.hotspots.Pixels(name, size)

		for frame := 0; frame < frames; frame++ {
			src := filepath.Join(frameDir, toolchain.FrameName(name, frame))
			if !fsutil.Exists(src) {
				logger.Warn("[WARN]     Missing frame %03d\n", frame)
				continue
			}

			frameFile := fmt.Sprintf("%d_%03d.png", size, frame)
			dst := filepath.Join(working, frameFile)
			if size == origSize {
				if err := fsutil.CopyFile(src, dst, 0); err != nil {
					return "", err
				}
			} else {
				logger.Debug("[DEBUG]     Creating %dx%d version of frame %03d\n", size, size, frame)
				if err := e.Tools.Scale(ctx, src, dst, size); err != nil {
					return "", err
				}
			}

			fmt.Fprintf(&conf, "%d %d %d %s %d\n", size, hx, hy, frameFile, e.Config.FrameDelay)
		}
	}
	if conf.Len() == 0 {
		return "", fmt.Errorf("no frames to assemble")
	}

	if err := os.WriteFile(filepath.Join(working, cursorConfigName), []byte(conf.String()), 0o644); err != nil {
		return "", err
	}

	generated := filepath.Join(working, cursorOutputName)
	if err := e.Tools.GenerateCursor(ctx, working, cursorConfigName, cursorOutputName); err != nil {
		return "", fmt.Errorf("failed to create cursor with xcursorgen: %w", err)
	}
	if !fsutil.Exists(generated) {
		return "", fmt.Errorf("xcursorgen produced no output")
	}
	return generated, nil
}

// verifyCursor re-extracts a generated cursor and reports its frames and
// sizes. Verification problems are reported but never fail the build.
func (e *Env) verifyCursor(ctx context.Context, cursorPath string) {
	logger.Debug("[DEBUG]     Verifying cursor...\n")
	verifyDir := filepath.Join(filepath.Dir(cursorPath), verifyDirName)
	defer os.RemoveAll(verifyDir)

	if err := os.MkdirAll(verifyDir, 0o755); err != nil {
		logger.Warn("[WARN]     Could not verify cursor: %v\n", err)
		return
	}
	if err := e.Tools.ExtractFrames(ctx, cursorPath, verifyDir); err != nil {
		logger.Warn("[WARN]     Could not verify cursor: %v\n", err)
		return
	}

	frames, err := toolchain.CountFrames(verifyDir, filepath.Base(cursorPath))
	if err != nil {
		logger.Warn("[WARN]     Could not verify cursor: %v\n", err)
		return
	}
	sizes, err := e.Tools.ImageSizes(ctx, verifyDir)
	if err != nil {
		logger.Warn("[WARN]     Could not read cursor sizes: %v\n", err)
		return
	}
	logger.Info("[INFO]     New cursor has %d frames/sizes, sizes %v\n", frames, sizes)
}
