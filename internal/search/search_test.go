package search

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner returns canned output instead of spawning a process, and
// records what it was asked to run.
type scriptedRunner struct {
	out RunOutput
	err error

	calls int
	name  string
	args  []string
}

func (r *scriptedRunner) Run(ctx context.Context, name string, args ...string) (RunOutput, error) {
	r.calls++
	r.name = name
	r.args = args
	return r.out, r.err
}

func TestSearch_MatchesVerbatimInOrder(t *testing.T) {
	runner := &scriptedRunner{out: RunOutput{Stdout: []byte("b.go:2:beta\na.go:1:  alpha \n")}}
	s := New(t.TempDir(), WithRunner(runner))

	result, err := s.Search(context.Background(), Request{Pattern: "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b.go:2:beta", "a.go:1:  alpha "}, result.Matches)
	assert.Equal(t, 2, result.Stats.MatchedLines)
	assert.GreaterOrEqual(t, result.Stats.ElapsedMs, int64(0))
	assert.Equal(t, Executable, runner.name)
}

func TestSearch_NoMatchesIsSuccess(t *testing.T) {
	runner := &scriptedRunner{out: RunOutput{ExitCode: 1}}
	s := New(t.TempDir(), WithRunner(runner))

	result, err := s.Search(context.Background(), Request{Pattern: "nothing"})
	require.NoError(t, err)

	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.Stats.MatchedLines)
}

func TestSearch_EngineFailureSurfacesStderr(t *testing.T) {
	runner := &scriptedRunner{out: RunOutput{ExitCode: 2, Stderr: []byte("regex parse error\n")}}
	s := New(t.TempDir(), WithRunner(runner))

	_, err := s.Search(context.Background(), Request{Pattern: "("})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindEngine, kind)
	assert.Contains(t, err.Error(), "regex parse error")
}

func TestSearch_SpawnFailure(t *testing.T) {
	runner := &scriptedRunner{err: errors.New("executable file not found in $PATH")}
	s := New(t.TempDir(), WithRunner(runner))

	_, err := s.Search(context.Background(), Request{Pattern: "x"})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSpawn, kind)
}

func TestSearch_InvalidOutputEncoding(t *testing.T) {
	runner := &scriptedRunner{out: RunOutput{Stdout: []byte{0xff, 0xfe, 0xfd}}}
	s := New(t.TempDir(), WithRunner(runner))

	_, err := s.Search(context.Background(), Request{Pattern: "x"})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindEngine, kind)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestSearch_TraversalRejectedBeforeSpawn(t *testing.T) {
	runner := &scriptedRunner{}
	s := New(t.TempDir(), WithRunner(runner))

	_, err := s.Search(context.Background(), Request{Pattern: "x", Path: "../../../etc/passwd"})
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindPathTraversal, kind)
	assert.Zero(t, runner.calls)
}

func TestSearch_EmptyDirectoryReportsDuration(t *testing.T) {
	requireRipgrep(t)
	s := New(t.TempDir())

	result, err := s.Search(context.Background(), Request{Pattern: "anything"})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.GreaterOrEqual(t, result.Stats.ElapsedMs, int64(0))
}

func TestSearch_AgainstRealRipgrep(t *testing.T) {
	requireRipgrep(t)
	root := setupTestFiles(t)
	s := New(root)

	req := Request{
		Pattern:      "hello",
		FixedStrings: true,
		LineNumbers:  true,
	}
	result, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Matches), 2, "should find hello in both files")

	// Case-sensitive and restricted to Rust files, only "fn hello_world"
	// remains; the "Hello, world!" line and the js file drop out.
	req.CaseSensitive = true
	req.FileTypes = []string{"rust"}
	result, err = s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1, "should only find hello_world in the Rust file")
	assert.Contains(t, result.Matches[0], "hello_world")
	assert.Equal(t, result.Stats.MatchedLines, len(result.Matches))
}

func requireRipgrep(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(Executable); err != nil {
		t.Skipf("%s not installed", Executable)
	}
}

func setupTestFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	rs := "fn hello_world() {\n    println!(\"Hello, world!\");\n}\n"
	js := "function helloWorld() {\n    console.log(\"Hello, world!\");\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_file.rs"), []byte(rs), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_file.js"), []byte(js), 0o644))
	return dir
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{}, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
	assert.Equal(t, []string{"no trailing newline"}, splitLines("no trailing newline"))
}
