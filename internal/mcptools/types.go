package mcptools

import (
	"fmt"

	"github.com/chris-regnier/ripgrep-mcp/internal/search"
)

// SearchInput is the wire shape of the search tool's arguments. Pointer
// fields distinguish "absent" from "zero" so an omitted option is never
// forwarded to the engine.
type SearchInput struct {
	Pattern       string   `json:"pattern"`
	Path          string   `json:"path,omitempty"`
	FixedStrings  bool     `json:"fixed_strings,omitempty"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
	LineNumbers   *bool    `json:"line_numbers,omitempty"`
	ContextLines  *int     `json:"context_lines,omitempty"`
	FileTypes     []string `json:"file_types,omitempty"`
	MaxDepth      *int     `json:"max_depth,omitempty"`
}

func (in SearchInput) validate() error {
	if in.Pattern == "" {
		return fmt.Errorf("property %q is required", "pattern")
	}
	if in.ContextLines != nil && *in.ContextLines < 0 {
		return fmt.Errorf("property %q must be non-negative", "context_lines")
	}
	if in.MaxDepth != nil && *in.MaxDepth < 0 {
		return fmt.Errorf("property %q must be non-negative", "max_depth")
	}
	return nil
}

func (in SearchInput) toRequest() search.Request {
	return search.Request{
		Pattern:       in.Pattern,
		Path:          in.Path,
		FixedStrings:  in.FixedStrings,
		CaseSensitive: in.CaseSensitive,
		// Line numbers are on unless the caller turned them off.
		LineNumbers:  in.LineNumbers == nil || *in.LineNumbers,
		ContextLines: in.ContextLines,
		FileTypes:    in.FileTypes,
		MaxDepth:     in.MaxDepth,
	}
}
