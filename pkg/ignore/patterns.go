// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern translation.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
	singleStarPattern         = regexp.MustCompile(`\*`)
	directoryEndPattern       = regexp.MustCompile(`/$`)
	rootRelativePattern       = regexp.MustCompile(`^/`)
)

// escapeSpecialChars escapes regex special characters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	const specialChars = `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns replaces '**' forms with their regex equivalents.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, `(/|/.+/)`)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, `(/.*)?`)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, `(.*/)?`)
	return pattern
}

// wildcardToRegex converts the '*' and '?' wildcards to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStarPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", ".")
	return pattern
}

// anchorPattern anchors the translated pattern so it matches whole path
// segments: directory rules swallow their subtree, root-relative rules only
// match from the top.
func anchorPattern(pattern, originalPattern string) string {
	rooted := rootRelativePattern.MatchString(originalPattern)
	dirOnly := directoryEndPattern.MatchString(originalPattern)

	pattern = strings.TrimPrefix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	if dirOnly {
		pattern += "(/.*)?$"
	} else {
		pattern += "(|/.*)?$"
	}

	if rooted {
		return "^" + pattern
	}
	return "^(|.*/)" + pattern
}
