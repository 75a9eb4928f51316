package search

import (
	"path/filepath"
	"strings"
)

// resolvePath validates a caller-supplied relative path against the root
// directory and returns the joined path to hand to ripgrep. An empty path
// means the root itself; the root was already validated at startup so no
// further resolution is needed.
//
// Both the joined path and the root are canonicalized (symlinks and ".."
// components resolved) before comparison, so a symlink inside the root that
// points outside it is rejected the same way a "../.." path is. The
// containment check is component-wise: /tmp/root-evil is not inside /tmp/root.
func (s *Searcher) resolvePath(path string) (string, error) {
	if path == "" {
		return s.rootDir, nil
	}

	joined := filepath.Join(s.rootDir, path)

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", &Error{Kind: KindInvalidPath, Msg: path, Err: err}
	}

	root, err := filepath.EvalSymlinks(s.rootDir)
	if err != nil {
		return "", &Error{Kind: KindConfig, Msg: "could not resolve root directory", Err: err}
	}

	if !isWithin(root, resolved) {
		return "", &Error{Kind: KindPathTraversal, Msg: path}
	}

	return joined, nil
}

// isWithin reports whether target is root itself or a descendant of it,
// comparing whole path components. Canonicalized paths never carry a
// trailing separator except the filesystem root itself.
func isWithin(root, target string) bool {
	if target == root {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(target, root)
}
