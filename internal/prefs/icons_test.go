package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIconsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := LoadIcons()
	require.NoError(t, err)
	require.Nil(t, got)

	want := map[string]string{"양식": "./icons/pasta.png"}
	require.NoError(t, SaveIcons(want))

	got, err = LoadIcons()
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = os.Stat(filepath.Join(dir, "salesboard", "icons.json.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestLoadIconsRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "salesboard"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "salesboard", "icons.json"), []byte("[1,"), 0o600))

	_, err := LoadIcons()
	require.Error(t, err)
}
