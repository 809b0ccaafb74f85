package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh root command with args and returns what it wrote
// to stdout. SQLTREE_* variables are cleared and the .env lookup points at a
// file that does not exist, so the host environment cannot leak in.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"SQLTREE_LOG_LEVEL", "SQLTREE_LOG_FORMAT", "SQLTREE_OUTPUT", "SQLTREE_LOAD_CONCURRENCY"} {
		t.Setenv(k, "")
	}
	return runCLIWithEnvFile(t, filepath.Join(t.TempDir(), "missing.env"), args...)
}

func runCLIWithEnvFile(t *testing.T, envFile string, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--env-file", envFile}, args...))
	err := rootCmd.Execute()
	return stdout.String(), err
}

// writeDoc writes a tree document into dir and returns its path.
func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const ordersDoc = `
kind: table
schema: sales
name: orders
alias: o
version:
  kind: table_version
  type: VERSION
  mode: BEFORE
  line: 1
  column: 22
  value: {kind: literal, type: number, value: "42"}
`
