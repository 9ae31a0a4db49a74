package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koosh-cursor-tools/internal/config"
	"koosh-cursor-tools/internal/state"
	"koosh-cursor-tools/internal/theme"
	"koosh-cursor-tools/internal/toolchain"
)

func installSource(t *testing.T, env *Env, name string) {
	t.Helper()
	cursors := filepath.Join(env.Config.IconsDir, name, theme.CursorsDirName)
	writeFiles(t, cursors, map[string][]byte{"left_ptr": cursorData(2)})
	require.NoError(t, os.Symlink("left_ptr", filepath.Join(cursors, "default")))
}

func TestCreateHyprcursor(t *testing.T) {
	skipIfNotUnix(t)
	tb := newToolbox()
	env := newEnv(t, tb, nil)
	installSource(t, env, "Koosh-Animated")

	dest, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh-Animated",
		DestTheme:   "Koosh-Hyprcursor2",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.Config.IconsDir, "Koosh-Hyprcursor2"), dest)

	manifest, err := os.ReadFile(filepath.Join(dest, theme.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "name = Koosh-Hyprcursor2\n"+
		"description = "+env.Config.Comments.Hyprcursor+"\n"+
		"version = 1.0\n"+
		"cursors_directory = hyprcursors\n", string(manifest))

	assert.FileExists(t, filepath.Join(dest, "hyprcursors", "left_ptr.hlc"))
	assert.FileExists(t, filepath.Join(dest, theme.CursorsDirName, "left_ptr"))
	assert.Equal(t, "left_ptr", readLink(t, filepath.Join(dest, theme.CursorsDirName, "default")))

	index, err := os.ReadFile(filepath.Join(dest, theme.IndexThemeFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Directories=cursors hyprcursors")
	assert.FileExists(t, filepath.Join(dest, theme.CursorThemeFile))

	calls := tb.CallsTo(toolchain.HyprcursorUtil)
	require.Len(t, calls, 2)
	assert.Equal(t, filepath.Join(env.Config.IconsDir, "Koosh-Animated"), calls[0].Args[1])
	assert.Equal(t, "--create", calls[1].Args[0])

	// the work directories are gone
	for _, c := range calls {
		assert.NoDirExists(t, c.Args[len(c.Args)-1])
	}

	rec := loadRecord(t, env, "Koosh-Hyprcursor2")
	assert.Equal(t, state.KindHyprcursor, rec.Kind)
	assert.Len(t, tb.CallsTo(toolchain.GtkUpdateIconCache), 1)
}

func TestCreateHyprcursorIgnoresSkipInstall(t *testing.T) {
	skipIfNotUnix(t)
	env := newEnv(t, newToolbox(), func(cfg *config.Config) { cfg.SkipInstall = true })
	installSource(t, env, "Koosh-Animated")

	dest, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh-Animated",
		DestTheme:   "Koosh-Hyprcursor2",
	})
	require.NoError(t, err)
	assert.DirExists(t, dest)
}

func TestCreateHyprcursorMissingSource(t *testing.T) {
	env := newEnv(t, newToolbox(), nil)
	_, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh-Animated",
		DestTheme:   "Koosh-Hyprcursor2",
	})
	assert.ErrorIs(t, err, theme.ErrThemeNotFound)
}

func TestCreateHyprcursorRequiresTool(t *testing.T) {
	tb := newToolbox()
	tb.Remove(toolchain.HyprcursorUtil)
	env := newEnv(t, tb, nil)

	_, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh-Animated",
		DestTheme:   "Koosh-Hyprcursor2",
	})
	assert.ErrorIs(t, err, toolchain.ErrToolMissing)
	assert.Empty(t, tb.Calls())
}

func TestCreateHyprcursorMissingManifest(t *testing.T) {
	skipIfNotUnix(t)
	tb := newToolbox()
	// extraction "succeeds" without producing anything
	delete(tb.Handlers, toolchain.HyprcursorUtil)
	env := newEnv(t, tb, nil)
	installSource(t, env, "Koosh-Animated")

	_, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh-Animated",
		DestTheme:   "Koosh-Hyprcursor2",
	})
	assert.ErrorIs(t, err, theme.ErrManifestNotFound)
}

func TestCreateHyprcursorSameTheme(t *testing.T) {
	env := newEnv(t, newToolbox(), nil)
	_, err := env.CreateHyprcursor(context.Background(), HyprcursorOptions{
		SourceTheme: "Koosh",
		DestTheme:   "Koosh",
	})
	assert.Error(t, err)
}
