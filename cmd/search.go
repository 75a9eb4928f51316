package cmd

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchPathFlag  string
	searchFixed     bool
	searchCase      bool
	searchLineNums  bool
	searchContext   int
	searchFileTypes []string
	searchMaxDepth  int
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Run a one-off search from the command line",
	Long: `Runs a single search against the configured root directory using the same
sandboxing and argument mapping as the MCP tool, and prints the matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchPathFlag, "path", "p", "", "relative path within the root directory")
	searchCmd.Flags().BoolVarP(&searchFixed, "fixed-strings", "F", false, "treat the pattern as a literal string")
	searchCmd.Flags().BoolVarP(&searchCase, "case-sensitive", "s", false, "match case-sensitively")
	searchCmd.Flags().BoolVarP(&searchLineNums, "line-numbers", "n", true, "prefix matches with line numbers")
	searchCmd.Flags().IntVarP(&searchContext, "context", "C", -1, "context lines around each match (-1 to omit)")
	searchCmd.Flags().StringSliceVarP(&searchFileTypes, "type", "t", nil, "restrict to ripgrep file types")
	searchCmd.Flags().IntVar(&searchMaxDepth, "max-depth", -1, "maximum directory depth (-1 for unlimited)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchRequestFromFlags maps the command's flag state to a search request.
// The -1 sentinels mean "flag not given": the corresponding option stays nil
// and contributes no engine arguments.
func searchRequestFromFlags(pattern string) search.Request {
	req := search.Request{
		Pattern:       pattern,
		Path:          searchPathFlag,
		FixedStrings:  searchFixed,
		CaseSensitive: searchCase,
		LineNumbers:   searchLineNums,
		FileTypes:     searchFileTypes,
	}
	if searchContext >= 0 {
		req.ContextLines = &searchContext
	}
	if searchMaxDepth >= 0 {
		req.MaxDepth = &searchMaxDepth
	}
	return req
}

func runSearch(cmd *cobra.Command, args []string) error {
	if _, err := exec.LookPath(search.Executable); err != nil {
		return fmt.Errorf("ripgrep (%s) is not installed or not in PATH", search.Executable)
	}

	searcher := search.New(appConfig.FilesRoot, search.WithLogger(logger))
	result, err := searcher.Search(cmd.Context(), searchRequestFromFlags(args[0]))
	if err != nil {
		return err
	}

	if searchJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, m := range result.Matches {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d matched lines in %dms\n", result.Stats.MatchedLines, result.Stats.ElapsedMs)
	return nil
}
