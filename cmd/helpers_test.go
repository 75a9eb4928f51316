package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args, capturing output. Flag
// variables persist across Execute calls within one test binary, so they are
// reset to their declared defaults first.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	cfgFile = ""
	rootOverride = ""
	logLevelFlag = ""

	searchPathFlag = ""
	searchFixed = false
	searchCase = false
	searchLineNums = true
	searchContext = -1
	searchFileTypes = nil
	searchMaxDepth = -1
	searchJSON = false
}

func requireRipgrep(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(search.Executable); err != nil {
		t.Skipf("%s not installed", search.Executable)
	}
}

func setupSearchRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	rs := "fn hello_world() {\n    println!(\"Hello, world!\");\n}\n"
	js := "function helloWorld() {\n    console.log(\"Hello, world!\");\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_file.rs"), []byte(rs), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_file.js"), []byte(js), 0o644))
	return dir
}
