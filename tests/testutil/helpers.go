// Package testutil provides shared file helpers for the integration
// test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile creates path below dir, including parent directories, and
// fails the test on any error.
func WriteFile(t *testing.T, dir string, path string, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

// ReadFile reads path below dir and fails the test on any error.
func ReadFile(t *testing.T, dir string, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	require.NoError(t, err)
	return string(data)
}
