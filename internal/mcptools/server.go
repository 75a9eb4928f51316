package mcptools

import (
	"context"

	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// NewSearchMCPServer creates an in-memory MCP server exposing the search
// tool. Returns the server and a client transport for connecting to it.
func NewSearchMCPServer(searcher *search.Searcher) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(searcher, zerolog.Nop())

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the search tool registered.
// The tool descriptor is static; every ListTools call sees the same schema.
func CreateMCPServer(searcher *search.Searcher, log zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ripgrep-mcp",
		Version: "1.0.0",
	}, nil)

	server.AddTool(searchTool(), SearchHandler(searcher, log))

	return server
}

// searchTool describes the one exposed tool. "pattern" is the only required
// property; everything else is optional.
func searchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search",
		Description: "Search file contents under the configured root directory using ripgrep",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"pattern"},
			Properties: map[string]*jsonschema.Schema{
				"pattern": {
					Type:        "string",
					Description: "Search pattern",
				},
				"path": {
					Type:        "string",
					Description: "Relative path within the root directory",
				},
				"fixed_strings": {
					Type:        "boolean",
					Description: "Treat the pattern as a literal string instead of a regex",
				},
				"case_sensitive": {
					Type:        "boolean",
					Description: "Match case-sensitively (default is case-insensitive)",
				},
				"line_numbers": {
					Type:        "boolean",
					Description: "Prefix matches with line numbers (default true)",
				},
				"context_lines": {
					Type:        "integer",
					Description: "Number of context lines to show around each match",
				},
				"file_types": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Restrict matching to these ripgrep file types (e.g. \"rust\", \"js\")",
				},
				"max_depth": {
					Type:        "integer",
					Description: "Maximum directory depth to recurse into",
				},
			},
		},
	}
}
