// Package search runs sandboxed ripgrep invocations against a fixed root
// directory. The Searcher holds no mutable state, so one instance is safely
// shared by any number of concurrent searches.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Executable is the name of the external search engine binary, located via
// the host's executable search path.
const Executable = "rg"

// exitNoMatches is ripgrep's exit status for "ran fine, found nothing".
// A different engine would need a different convention here.
const exitNoMatches = 1

// Request describes one search. Pattern is the only required field. Pointer
// fields are optional flags: when nil they contribute no arguments to the
// engine invocation.
type Request struct {
	// Pattern is the search pattern, regex unless FixedStrings is set.
	Pattern string
	// Path is a relative path inside the root; empty means the root itself.
	Path string
	// FixedStrings switches to literal (non-regex) matching.
	FixedStrings bool
	// CaseSensitive opts in to case-sensitive matching; the default is
	// case-insensitive.
	CaseSensitive bool
	// LineNumbers prefixes matches with line numbers.
	LineNumbers bool
	// ContextLines is the number of context lines around each match.
	ContextLines *int
	// FileTypes restricts matching to the named ripgrep file types.
	FileTypes []string
	// MaxDepth bounds directory recursion.
	MaxDepth *int
}

// Result is the outcome of one successful search.
type Result struct {
	// Matches holds the engine's output lines verbatim, in emission order.
	Matches []string `json:"matches"`
	Stats   Stats    `json:"stats"`
}

// Stats carries timing and match counts for one search.
type Stats struct {
	MatchedLines int   `json:"matched_lines"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// Searcher runs searches confined to a single root directory. The root is
// fixed at construction and never mutated.
type Searcher struct {
	rootDir string
	runner  Runner
	log     zerolog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithRunner substitutes the process runner, used by tests to script engine
// behavior.
func WithRunner(r Runner) Option {
	return func(s *Searcher) { s.runner = r }
}

// WithLogger attaches a logger for per-search diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Searcher) { s.log = log }
}

// New creates a Searcher rooted at rootDir, which must be an absolute path
// to an existing directory (validated by the caller at startup).
func New(rootDir string, opts ...Option) *Searcher {
	s := &Searcher{
		rootDir: rootDir,
		runner:  execRunner{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the root directory all searches are confined to.
func (s *Searcher) Root() string { return s.rootDir }

// Search validates the request path, runs the engine, and interprets its
// output. Exit statuses 0 and 1 are both success: ripgrep exits 1 when the
// search ran but matched nothing. Any other non-zero exit surfaces the
// engine's stderr as an engine error.
func (s *Searcher) Search(ctx context.Context, req Request) (*Result, error) {
	searchPath, err := s.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	args := buildArgs(req, searchPath)
	s.log.Debug().Str("pattern", req.Pattern).Strs("args", args).Msg("starting ripgrep search")

	out, err := s.runner.Run(ctx, Executable, args...)
	if err != nil {
		return nil, &Error{Kind: KindSpawn, Msg: err.Error(), Err: err}
	}

	elapsed := time.Since(start)

	if out.ExitCode != 0 && out.ExitCode != exitNoMatches {
		stderr := strings.TrimSpace(string(out.Stderr))
		s.log.Error().Int("exit_code", out.ExitCode).Str("stderr", stderr).Msg("ripgrep command failed")
		return nil, &Error{Kind: KindEngine, Msg: fmt.Sprintf("ripgrep failed: %s", stderr)}
	}

	if !utf8.Valid(out.Stdout) {
		return nil, &Error{Kind: KindEngine, Msg: "invalid UTF-8 in output"}
	}

	matches := splitLines(string(out.Stdout))

	return &Result{
		Matches: matches,
		Stats: Stats{
			MatchedLines: len(matches),
			ElapsedMs:    elapsed.Milliseconds(),
		},
	}, nil
}

// splitLines splits engine output into verbatim lines, tolerating both \n
// and \r\n terminators and ignoring the trailing terminator. It always
// returns a non-nil slice so an empty result serializes as [] rather than
// null.
func splitLines(out string) []string {
	matches := []string{}
	if out == "" {
		return matches
	}
	out = strings.TrimSuffix(out, "\n")
	for _, line := range strings.Split(out, "\n") {
		matches = append(matches, strings.TrimSuffix(line, "\r"))
	}
	return matches
}
