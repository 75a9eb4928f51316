package search

import (
	"errors"
	"fmt"
)

// Kind classifies a search failure. The distinction between kinds is part of
// the tool's contract: a path traversal attempt must never surface as a
// generic IO error.
type Kind int

const (
	// KindIO covers filesystem or pipe failures outside the engine itself.
	KindIO Kind = iota
	// KindEngine means ripgrep ran but reported a real error, or produced
	// output that could not be decoded.
	KindEngine
	// KindSpawn means the ripgrep process could not be started at all.
	KindSpawn
	// KindPathTraversal means a validated path resolved outside the root.
	KindPathTraversal
	// KindInvalidPath means the candidate path could not be resolved.
	KindInvalidPath
	// KindConfig means the root directory itself could not be resolved.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io_error"
	case KindEngine:
		return "engine_error"
	case KindSpawn:
		return "spawn_error"
	case KindPathTraversal:
		return "path_traversal"
	case KindInvalidPath:
		return "invalid_path"
	case KindConfig:
		return "config_error"
	default:
		return "unknown"
	}
}

// Error is a classified search failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("I/O error: %s", e.Msg)
	case KindEngine:
		return fmt.Sprintf("ripgrep error: %s", e.Msg)
	case KindSpawn:
		return fmt.Sprintf("failed to start ripgrep: %s", e.Msg)
	case KindPathTraversal:
		return fmt.Sprintf("path traversal attempt: %s", e.Msg)
	case KindInvalidPath:
		return fmt.Sprintf("invalid path: %s", e.Msg)
	case KindConfig:
		return fmt.Sprintf("configuration error: %s", e.Msg)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the classification of err, or ok=false when err is not a
// search error.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
