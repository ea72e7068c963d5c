// File: pkg/include/quote.go
package include

import (
	"fmt"
	"path/filepath"
	"strings"
)

// sourceLinkScheme is the host-editor URL scheme embedded in citation links.
const sourceLinkScheme = "editor"

// quoteOptions carries everything the formatter needs for one directive.
type quoteOptions struct {
	sourcePath    string // Absolute path of the included file.
	label         string // Citation label text.
	includeSource bool   // Whether the citation line is appended.
	startSpec     string // Raw start spec, used for the citation position.
	original      string // Unsliced file content, used for word-column math.
}

// quoteContent wraps content as a block quotation and, when enabled, appends
// a blank quoted line followed by a citation linking back to the source
// position. Lines that are blank after trimming get a bare marker.
func quoteContent(content string, opts quoteOptions) string {
	var b strings.Builder
	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if strings.TrimSpace(line) == "" {
			b.WriteString(">")
		} else {
			b.WriteString("> ")
			b.WriteString(line)
		}
	}

	if opts.includeSource {
		b.WriteString("\n>\n> ")
		b.WriteString(citationLine(opts))
	}
	return b.String()
}

// citationLine builds the markdown link pointing at the quoted source:
// [<label>: <basename>](editor://file/<slash-path>:<line>:<col>).
func citationLine(opts quoteOptions) string {
	line := 1
	col := 1
	if spec, ok := parseRangeSpec(opts.startSpec); ok {
		line = spec.line
		if spec.hasWord && spec.word > 0 {
			col = wordColumn(opts.original, spec.line, spec.word)
		}
	}

	link := fmt.Sprintf("%s://file/%s:%d:%d",
		sourceLinkScheme, filepath.ToSlash(opts.sourcePath), line, col)
	return fmt.Sprintf("[%s: %s](%s)", opts.label, filepath.Base(opts.sourcePath), link)
}

// wordColumn recomputes the 1-indexed column where the given 0-indexed word
// begins on the given 1-indexed line of the original file content. Each
// consumed word contributes its character length plus one separating space,
// mirroring how the range selector rejoins words.
func wordColumn(original string, lineNo, word int) int {
	lines := strings.Split(original, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return 1
	}

	words := strings.Fields(lines[lineNo-1])
	if word > len(words) {
		word = len(words)
	}

	col := 1
	for i := 0; i < word; i++ {
		col += len(words[i]) + 1
	}
	return col
}
