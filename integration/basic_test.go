//go:build basic

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDevpulseWithSQLite exercises the CLI against a throwaway SQLite file.
func TestDevpulseWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "devpulse.db")

	_ = os.Setenv("DEVPULSE_BACKEND", "sqlite")
	_ = os.Setenv("DEVPULSE_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("DEVPULSE_BACKEND") }()
	defer func() { _ = os.Unsetenv("DEVPULSE_DB_CONNECT") }()

	err := runDevpulseSQLiteCommand(t, "store", "migrate")
	require.NoError(t, err)

	err = runDevpulseSQLiteCommand(t, "store", "status")
	require.NoError(t, err)

	err = runDevpulseSQLiteCommand(t, "catalog")
	require.NoError(t, err)

	err = runDevpulseSQLiteCommand(t, "trends")
	require.NoError(t, err)

	err = runDevpulseSQLiteCommand(t, "store", "clear")
	require.NoError(t, err)
}

// TestDevpulseVersion verifies the binary reports version details.
func TestDevpulseVersion(t *testing.T) {
	devpulsePath := getDevpulseBinary()
	cmd := exec.Command(devpulsePath, "version")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(output), "devpulse CLI")
}

func runDevpulseSQLiteCommand(t *testing.T, args ...string) error {
	devpulsePath := getDevpulseBinary()
	cmd := exec.Command(devpulsePath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
