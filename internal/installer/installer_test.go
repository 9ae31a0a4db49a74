package installer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koosh-cursor-tools/internal/config"
	"koosh-cursor-tools/internal/runner/runnertest"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

func skipIfNotUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: symlinks and Unix permissions not reliable on Windows")
	}
}

func newInstaller(t *testing.T) (*Installer, *runnertest.Fake) {
	t.Helper()
	fake := runnertest.New()
	tc, err := toolchain.New(fake, config.Tools{})
	require.NoError(t, err)
	root := t.TempDir()
	return &Installer{
		IconsDir:  filepath.Join(root, "icons"),
		StatePath: filepath.Join(root, "state", "state.json"),
		Tools:     tc,
	}, fake
}

// buildTheme creates a small theme tree with one cursor, one link and both
// metadata files.
func buildTheme(t *testing.T, name string) theme.CursorTheme {
	t.Helper()
	th := theme.New(name, filepath.Join(t.TempDir(), name))
	require.NoError(t, th.CreateDirectories())
	require.NoError(t, os.WriteFile(th.Cursor("left_ptr"), []byte("arrow"), 0o600))
	require.NoError(t, os.Symlink("left_ptr", th.Cursor("default")))
	require.NoError(t, theme.WriteThemeFiles(th.Path, name, "test", nil))
	// stray build output that must not be installed
	require.NoError(t, os.WriteFile(filepath.Join(th.Path, "notes.txt"), []byte("x"), 0o644))
	return th
}

func TestInstallCopiesThemeAndRecordsState(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	th := buildTheme(t, "Koosh-X11")

	dest, err := in.Install(th, state.ThemeState{Kind: state.KindRenamed, Source: "output"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.IconsDir, "Koosh-X11"), dest)

	assert.FileExists(t, filepath.Join(dest, "cursors", "left_ptr"))
	assert.FileExists(t, filepath.Join(dest, theme.IndexThemeFile))
	assert.FileExists(t, filepath.Join(dest, theme.CursorThemeFile))
	assert.NoFileExists(t, filepath.Join(dest, "notes.txt"))

	target, err := os.Readlink(filepath.Join(dest, "cursors", "default"))
	require.NoError(t, err)
	assert.Equal(t, "left_ptr", target)

	info, err := os.Stat(filepath.Join(dest, "cursors", "left_ptr"))
	require.NoError(t, err)
	assert.Equal(t, ThemeMode, info.Mode().Perm())

	st, err := state.LoadState(in.StatePath)
	require.NoError(t, err)
	rec, ok := st.Themes["Koosh-X11"]
	require.True(t, ok)
	assert.Equal(t, state.KindRenamed, rec.Kind)
	assert.Equal(t, dest, rec.InstallPath)
	assert.Equal(t, 2, rec.Cursors)
	assert.False(t, rec.InstalledAt.IsZero())
}

func TestInstallReplacesPreviousInstallation(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	stale := filepath.Join(in.IconsDir, "Koosh-X11", "cursors", "old")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	_, err := in.Install(buildTheme(t, "Koosh-X11"), state.ThemeState{Kind: state.KindRenamed})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestInstallInPlace(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	th := theme.New("Koosh", in.ThemeDir("Koosh"))
	require.NoError(t, th.CreateDirectories())
	require.NoError(t, os.WriteFile(th.Cursor("left_ptr"), []byte("arrow"), 0o644))

	dest, err := in.Install(th, state.ThemeState{Kind: state.KindLinks})
	require.NoError(t, err)
	assert.Equal(t, th.Path, dest)
	assert.FileExists(t, th.Cursor("left_ptr"))
}

func TestInstallTree(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "hyprcursors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "manifest.hl"), []byte("name = x\n"), 0o644))

	dest, err := in.InstallTree(src, "Koosh-Hyprcursor2")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dest, "hyprcursors"))
	assert.FileExists(t, filepath.Join(dest, "manifest.hl"))

	_, err = in.InstallTree(filepath.Join(src, "missing"), "x")
	assert.ErrorIs(t, err, theme.ErrThemeNotFound)
}

func TestUninstall(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	dest, err := in.Install(buildTheme(t, "Koosh-Animated"), state.ThemeState{Kind: state.KindAnimated})
	require.NoError(t, err)

	require.NoError(t, in.Uninstall("Koosh-Animated", false))
	assert.NoDirExists(t, dest)

	st, err := state.LoadState(in.StatePath)
	require.NoError(t, err)
	assert.Empty(t, st.Themes)
}

func TestUninstallUnmanaged(t *testing.T) {
	in, _ := newInstaller(t)
	foreign := in.ThemeDir("Adwaita")
	require.NoError(t, os.MkdirAll(foreign, 0o755))

	err := in.Uninstall("Adwaita", false)
	assert.ErrorIs(t, err, ErrNotManaged)
	assert.DirExists(t, foreign)

	require.NoError(t, in.Uninstall("Adwaita", true))
	assert.NoDirExists(t, foreign)
}

func TestUninstallRejectsInvalidNames(t *testing.T) {
	in, _ := newInstaller(t)
	sibling := filepath.Join(filepath.Dir(in.IconsDir), "keep.txt")
	require.NoError(t, os.MkdirAll(in.ThemeDir("Koosh"), 0o755))
	require.NoError(t, os.WriteFile(sibling, []byte("keep"), 0o644))

	for _, name := range []string{"", ".", "..", "../state", "Koosh/cursors"} {
		err := in.Uninstall(name, true)
		assert.ErrorIs(t, err, theme.ErrInvalidName, name)
	}
	assert.DirExists(t, in.ThemeDir("Koosh"))
	assert.FileExists(t, sibling)
}

func TestInstallRejectsInvalidNames(t *testing.T) {
	in, _ := newInstaller(t)
	sibling := filepath.Join(filepath.Dir(in.IconsDir), "keep.txt")
	require.NoError(t, os.WriteFile(sibling, []byte("keep"), 0o644))

	th := theme.New("..", filepath.Join(t.TempDir(), "src"))
	_, err := in.Install(th, state.ThemeState{Kind: state.KindRenamed})
	assert.ErrorIs(t, err, theme.ErrInvalidName)

	_, err = in.InstallTree(t.TempDir(), "..")
	assert.ErrorIs(t, err, theme.ErrInvalidName)

	assert.ErrorIs(t, in.Record("", in.IconsDir, state.ThemeState{}), theme.ErrInvalidName)
	assert.FileExists(t, sibling)
	assert.NoFileExists(t, in.StatePath)
}

func TestSyncStateAndList(t *testing.T) {
	skipIfNotUnix(t)
	in, _ := newInstaller(t)
	keep, err := in.Install(buildTheme(t, "Keep"), state.ThemeState{Kind: state.KindLinks})
	require.NoError(t, err)
	gone, err := in.Install(buildTheme(t, "Gone"), state.ThemeState{Kind: state.KindLinks})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(gone))

	dropped, err := in.SyncState()
	require.NoError(t, err)
	assert.Equal(t, []string{"Gone"}, dropped)

	list, err := in.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keep", list[0].Name)
	assert.Equal(t, keep, list[0].InstallPath)
}

func TestUpdateIconCacheUsesInstallDir(t *testing.T) {
	in, fake := newInstaller(t)
	in.UpdateIconCache(context.Background(), "Koosh")
	calls := fake.CallsTo(toolchain.GtkUpdateIconCache)
	require.Len(t, calls, 1)
	assert.Equal(t, in.ThemeDir("Koosh"), calls[0].Args[2])
}
