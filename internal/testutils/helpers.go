package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDefinitions writes content to a file called name inside a fresh
// temporary directory and returns its absolute path.
// It fails the test immediately on error.
func WriteDefinitions(t *testing.T, name, content string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for definitions")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write definitions")
	return path
}
