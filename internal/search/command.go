package search

import "strconv"

// buildArgs maps a request and its resolved target path to the ripgrep
// argument vector. Pure; the argument order is fixed so tests can assert on
// it. --no-config is always first so results never depend on configuration
// files present on the host.
func buildArgs(req Request, searchPath string) []string {
	args := []string{"--no-config"}

	if req.FixedStrings {
		args = append(args, "-F")
	}

	// Case sensitivity is opt-in; the default is an insensitive search.
	if !req.CaseSensitive {
		args = append(args, "-i")
	}

	if req.LineNumbers {
		args = append(args, "-n")
	}

	if req.ContextLines != nil {
		args = append(args, "-C", strconv.Itoa(*req.ContextLines))
	}

	for _, ft := range req.FileTypes {
		args = append(args, "-t", ft)
	}

	if req.MaxDepth != nil {
		args = append(args, "--max-depth", strconv.Itoa(*req.MaxDepth))
	}

	args = append(args, req.Pattern, searchPath)
	return args
}
