package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// IsLocal reports whether a catalog location names a local file.
func IsLocal(location string) bool {
	return !strings.Contains(location, "://") || strings.HasPrefix(location, "file://")
}

// LocalPath strips a file:// prefix and normalizes the result.
func LocalPath(location string) string {
	return NormalizePath(ExpandHome(strings.TrimPrefix(location, "file://")))
}

// Relative returns the path to target relative to base, using forward
// slashes. The boolean is false when target lies outside base.
func Relative(base, target string) (string, bool) {
	rel, err := filepath.Rel(NormalizePath(base), NormalizePath(target))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
