package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRejectsMissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_SECRET", "")

	err := run()
	require.ErrorContains(t, err, "failed to initialize chat service")
	require.ErrorContains(t, err, "APP_SECRET")
}
