package tree

import "strings"

// SplitPath splits an archive path into its segments.
//
// Leading, trailing, and consecutive slashes produce no segments:
//   - "docs/main.tex" → ["docs", "main.tex"]
//   - "docs/" → ["docs"]
//   - "/a//b/" → ["a", "b"]
//   - "" or "/" → []
//
// "." and ".." segments are preserved; rejecting them is left to callers that
// materialize paths on a filesystem.
func SplitPath(p string) []string {
	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// joinPath appends name to parent with a slash separator.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// validName reports whether name can be used as a single path segment.
func validName(name string) bool {
	return name != "" && !strings.Contains(name, "/")
}
