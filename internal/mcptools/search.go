package mcptools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/chris-regnier/ripgrep-mcp/internal/metrics"
	"github.com/chris-regnier/ripgrep-mcp/internal/search"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// SearchHandler returns the handler function for the search MCP tool. It is
// the single place where internal failure classifications become protocol
// error responses; the executor's errors pass through it unchanged in text.
func SearchHandler(searcher *search.Searcher, log zerolog.Logger) func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqID, _ := gonanoid.New(8)
		logger := log.With().Str("request_id", reqID).Logger()

		if isEmptyArguments(req.Params.Arguments) {
			metrics.SearchesTotal.WithLabelValues("missing_arguments").Inc()
			return errorResult("missing required arguments for search"), nil
		}

		var input SearchInput
		dec := json.NewDecoder(bytes.NewReader(req.Params.Arguments))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&input); err != nil {
			metrics.SearchesTotal.WithLabelValues("invalid_parameters").Inc()
			return errorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		if err := input.validate(); err != nil {
			metrics.SearchesTotal.WithLabelValues("invalid_parameters").Inc()
			return errorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		logger.Debug().Str("pattern", input.Pattern).Str("path", input.Path).Msg("received search request")

		result, err := searcher.Search(ctx, input.toRequest())
		if err != nil {
			outcome := "error"
			if kind, ok := search.KindOf(err); ok {
				outcome = kind.String()
			}
			metrics.SearchesTotal.WithLabelValues(outcome).Inc()
			logger.Error().Err(err).Msg("search failed")
			return errorResult(fmt.Sprintf("search failed: %v", err)), nil
		}

		metrics.SearchesTotal.WithLabelValues("success").Inc()
		metrics.SearchDuration.Observe(float64(result.Stats.ElapsedMs) / 1000)
		logger.Debug().Int("matched_lines", result.Stats.MatchedLines).Int64("elapsed_ms", result.Stats.ElapsedMs).Msg("search complete")

		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("serializing result: %v", err)), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(pretty)}},
		}, nil
	}
}

// isEmptyArguments reports whether the call carried no arguments at all.
// The transport delivers an absent arguments field as an empty object, so
// "{}" counts as missing alongside nil and JSON null.
func isEmptyArguments(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	return bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

// errorResult wraps a failure message as a tool error response.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
