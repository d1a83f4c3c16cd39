package converter

import "strings"

// BuildFilename expands an output pattern by replacing every '*' with
// the animation name. Pure: no I/O.
func BuildFilename(pattern, animation string) string {
	return strings.ReplaceAll(pattern, "*", animation)
}

// OutputSingleAnimation reports whether the pattern denotes a single
// fixed output target, in which case at most one imported clip can be
// exported.
func OutputSingleAnimation(pattern string) bool {
	return !strings.Contains(pattern, "*")
}
