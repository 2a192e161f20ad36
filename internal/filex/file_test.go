package filex

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureStateDir_CreatesExplicitDir(t *testing.T) {
	want := filepath.Join(t.TempDir(), "state", "nested")

	got, err := EnsureStateDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureStateDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	first, err := EnsureStateDir(dir)
	require.NoError(t, err)
	second, err := EnsureStateDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureStateDir_DefaultsToUserConfigDir(t *testing.T) {
	base := t.TempDir()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return base, nil }
	t.Cleanup(func() { userConfigDir = orig })

	got, err := EnsureStateDir("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, AppDirName), got)
}

func TestEnsureStateDir_UserConfigDirError(t *testing.T) {
	orig := userConfigDir
	userConfigDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { userConfigDir = orig })

	_, err := EnsureStateDir("")
	require.ErrorContains(t, err, "user config dir")
}

func TestEnsureStateDir_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureStateDir(file)
	require.Error(t, err)
}
