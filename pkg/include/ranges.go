// File: pkg/include/ranges.go
package include

import (
	"strconv"
	"strings"
)

// rangeSpec is a parsed "N" or "N.W" range endpoint. Line numbers are
// 1-indexed on input, word indices 0-indexed; hasWord records whether a word
// component was given at all.
type rangeSpec struct {
	line    int
	word    int
	hasWord bool
}

// parseRangeSpec parses a raw range endpoint. It reports false for empty or
// malformed specs, which callers treat as an absent endpoint.
func parseRangeSpec(raw string) (rangeSpec, bool) {
	if raw == "" {
		return rangeSpec{}, false
	}
	linePart, wordPart, hasWord := strings.Cut(raw, ".")
	line, err := strconv.Atoi(linePart)
	if err != nil || line < 1 {
		return rangeSpec{}, false
	}
	spec := rangeSpec{line: line}
	if hasWord {
		word, err := strconv.Atoi(wordPart)
		if err != nil || word < 0 {
			return rangeSpec{}, false
		}
		spec.word = word
		spec.hasWord = true
	}
	return spec, true
}

// selectRange slices text down to the lines and words addressed by the raw
// start and end specs. An absent start spec returns the text unchanged.
//
// Line selection is [startLineIndex, endLineIndex). A bare end line number is
// an exclusive bound, so start "N" with end "N" selects nothing; an end spec
// carrying a word component keeps its own line, since the word index bounds
// within it. An absent end selects exactly the start line.
func selectRange(text, startRaw, endRaw string) string {
	start, ok := parseRangeSpec(startRaw)
	if !ok {
		return text
	}

	lines := strings.Split(text, "\n")

	startLine := start.line - 1
	endLine := startLine + 1
	endWord := -1
	if end, ok := parseRangeSpec(endRaw); ok {
		if end.hasWord {
			endLine = end.line
			endWord = end.word
		} else {
			endLine = end.line - 1
		}
	}

	if startLine > len(lines) {
		startLine = len(lines)
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if endLine < startLine {
		endLine = startLine
	}

	selected := lines[startLine:endLine]
	if len(selected) == 0 {
		return ""
	}

	// Word truncation applies only to the first and last selected lines.
	// Words are maximal runs of non-whitespace and rejoin with single
	// spaces, so interior runs of whitespace collapse.
	if start.word > 0 || endWord >= 0 {
		words := strings.Fields(selected[0])
		startWord := start.word
		if startWord > len(words) {
			startWord = len(words)
		}

		if len(selected) == 1 {
			stop := endWord
			if stop < 0 || stop > len(words) {
				stop = len(words)
			}
			if stop < startWord {
				stop = startWord
			}
			selected[0] = strings.Join(words[startWord:stop], " ")
		} else {
			selected[0] = strings.Join(words[startWord:], " ")
			if endWord >= 0 {
				lastWords := strings.Fields(selected[len(selected)-1])
				stop := endWord
				if stop > len(lastWords) {
					stop = len(lastWords)
				}
				selected[len(selected)-1] = strings.Join(lastWords[:stop], " ")
			}
		}
	}

	return strings.Join(selected, "\n")
}
