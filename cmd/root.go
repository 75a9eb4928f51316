package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chris-regnier/ripgrep-mcp/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile      string
	rootOverride string
	logLevelFlag string
	appConfig    *config.Config
	logger       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ripgrep-mcp",
	Short: "MCP server exposing sandboxed ripgrep search",
	Long: `ripgrep-mcp is a Model Context Protocol server that exposes a single
"search" tool backed by ripgrep. All searches are confined to a configured
root directory; callers cannot escape it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if rootOverride != "" {
			root, err := config.ResolveRoot(rootOverride)
			if err != nil {
				return err
			}
			cfg.FilesRoot = root
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}
		appConfig = cfg

		logger = newLogger(cfg.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// A terminal on stdout means no MCP client is attached; serving
		// protocol bytes at a human helps nobody.
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&rootOverride, "root", "", "root directory searches are confined to (overrides FILES_ROOT)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (trace|debug|info|warn|error)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// newLogger builds the stderr-only logger. Stdout is reserved for protocol
// bytes, so nothing else in the process may ever write to it.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
