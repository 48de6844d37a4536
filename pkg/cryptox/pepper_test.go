package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPepper_PersistedToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "pepper")
	SetPepperPath(path)
	t.Cleanup(func() { SetPepperPath("") })

	p := GetPepper()
	require.NotEmpty(t, p)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, p, string(data))

	// A fresh process pointed at the same file sees the same pepper.
	SetPepperPath(path)
	require.Equal(t, p, GetPepper())
}

func TestPepper_HashesDependOnPepper(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { SetPepperPath("") })

	SetPepperPath(filepath.Join(dir, "a"))
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, VerifyPassword("secret", hash))

	SetPepperPath(filepath.Join(dir, "b"))
	require.ErrorIs(t, VerifyPassword("secret", hash), ErrPasswordMismatch)
}

