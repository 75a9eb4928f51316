package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris-regnier/ripgrep-mcp/internal/mcptools"
	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the search tool
over stdio transport. The server speaks JSON-RPC on stdout; all diagnostics
go to stderr.

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "ripgrep": {
        "command": "/path/to/ripgrep-mcp",
        "args": ["serve"],
        "env": { "FILES_ROOT": "/path/to/code" }
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Missing ripgrep is a fatal configuration error; fail before any
	// protocol traffic is accepted.
	rgPath, err := exec.LookPath(search.Executable)
	if err != nil {
		return fmt.Errorf("ripgrep (%s) is not installed or not in PATH", search.Executable)
	}

	logger.Info().
		Str("root", appConfig.FilesRoot).
		Str("ripgrep", rgPath).
		Msg("starting ripgrep MCP server (stdio transport)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appConfig.MetricsAddr != "" {
		go serveMetrics(ctx, appConfig.MetricsAddr)
	}

	searcher := search.New(appConfig.FilesRoot, search.WithLogger(logger))
	server := mcptools.CreateMCPServer(searcher, logger)

	// Blocks until the transport closes or the context is canceled.
	return server.Run(ctx, &mcp.StdioTransport{})
}

// serveMetrics exposes the Prometheus collectors on an optional HTTP
// listener, off the protocol path, and shuts the listener down when ctx is
// canceled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn().Err(err).Msg("metrics server error")
	}
}
