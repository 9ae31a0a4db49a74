package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewAndDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Koosh-X11")
	th := New("Koosh-X11", root)
	assert.Equal(t, filepath.Join(root, "cursors"), th.CursorsDir)
	assert.False(t, th.Exists())
	assert.ErrorIs(t, th.Check(), ErrThemeNotFound)

	require.NoError(t, th.CreateDirectories())
	assert.True(t, th.Exists())
	assert.NoError(t, th.Check())
	assert.Equal(t, filepath.Join(root, "cursors", "left_ptr"), th.Cursor("left_ptr"))
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"Koosh-X11", "Koosh Animated", "..Koosh", "koosh.v2"} {
		assert.NoError(t, ValidName(name), name)
	}
	for _, name := range []string{"", ".", "..", "../Koosh", "Koosh/cursors", "/abs", `a\b`} {
		assert.ErrorIs(t, ValidName(name), ErrInvalidName, name)
	}
}

func TestCheckNamesMissingCursorsDir(t *testing.T) {
	root := t.TempDir()
	err := New("x", root).Check()
	require.ErrorIs(t, err, ErrThemeNotFound)
	assert.Contains(t, err.Error(), filepath.Join(root, "cursors"))
}

func TestReset(t *testing.T) {
	root := filepath.Join(t.TempDir(), "theme")
	th := New("theme", root)
	require.NoError(t, th.CreateDirectories())
	require.NoError(t, os.WriteFile(th.Cursor("stale"), []byte("x"), 0o644))
	assert.Equal(t, 1, th.CursorCount())

	require.NoError(t, th.Reset())
	assert.True(t, th.Exists())
	assert.Equal(t, 0, th.CursorCount())
}

func TestWriteIndexThemeWithoutSizes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteIndexTheme(dir, "Koosh-Complete", "links", nil))

	want := `[Icon Theme]
Name=Koosh-Complete
Comment=links
Inherits=hicolor

# Directory list
Directories=cursors

[cursors]
Context=Cursors
Type=Fixed
`
	if diff := cmp.Diff(want, readFile(t, filepath.Join(dir, IndexThemeFile))); diff != "" {
		t.Errorf("index.theme mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteIndexThemeWithSizes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteIndexTheme(dir, "Koosh-Animated", "anim", []int{24, 32}))

	got := readFile(t, filepath.Join(dir, IndexThemeFile))
	assert.Contains(t, got, "\n[cursors/24]\nSize=24\nContext=Cursors\nType=Fixed\n")
	assert.Contains(t, got, "\n[cursors/32]\nSize=32\nContext=Cursors\nType=Fixed\n")
	assert.NotContains(t, got, "[cursors/48]")
}

func TestWriteThemeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteThemeFiles(dir, "Koosh-X11", "Koosh cursor theme", nil))

	want := "[Icon Theme]\nName=Koosh-X11\nComment=Koosh cursor theme\nInherits=Koosh-X11\n"
	assert.Equal(t, want, readFile(t, filepath.Join(dir, CursorThemeFile)))
	assert.FileExists(t, filepath.Join(dir, IndexThemeFile))
}

func TestWriteHyprcursorIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteHyprcursorIndex(dir, "Koosh-Hyprcursor2", "wayland"))

	got := readFile(t, filepath.Join(dir, IndexThemeFile))
	assert.Contains(t, got, "Directories=cursors hyprcursors\n")
	assert.Contains(t, got, "[hyprcursors]\nContext=Cursors\nType=Fixed\n")
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteManifest(dir, "Koosh", "desc", "1.0"))
	assert.Equal(t,
		"name = Koosh\ndescription = desc\nversion = 1.0\ncursors_directory = cursors\n",
		readFile(t, filepath.Join(dir, ManifestFile)),
	)
}

func TestUpdateManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFile)
	original := "name = Koosh-Animated\ndescription = Extracted by hyprcursor-util\nversion = 0.1\ncursors_directory = hyprcursors\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, UpdateManifest(path, "Koosh-Hyprcursor2", "for Wayland", "1.0"))

	want := "name = Koosh-Hyprcursor2\ndescription = for Wayland\nversion = 1.0\ncursors_directory = hyprcursors\n"
	assert.Equal(t, want, readFile(t, path))
}

func TestUpdateManifestMissing(t *testing.T) {
	err := UpdateManifest(filepath.Join(t.TempDir(), ManifestFile), "a", "b", "c")
	assert.ErrorIs(t, err, ErrManifestNotFound)
}
