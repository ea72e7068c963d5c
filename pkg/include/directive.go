// File: pkg/include/directive.go
package include

import (
	"regexp"
	"strings"
)

// Precompiled directive patterns. Both share the same capture layout:
// 1 = target reference, 2 = range start spec, 3 = range end spec,
// 4 = quote modifier.
var (
	// commonmarkPattern matches :[label|alt](target#Lstart-end){quote}.
	// The label text and its | separator are optional and not consumed for
	// output; the parenthesized target is required; the #L suffix sits
	// inside the parentheses and the brace modifier outside them.
	commonmarkPattern = regexp.MustCompile(`:\[[^\[\]]*\]\(\s*([^()#]+?)\s*(?:#L(\d+(?:\.\d+)?)(?:-(\d+(?:\.\d+)?))?\s*)?\)(?:\s*\{(quote|noquote)\})?`)

	// markdownItPattern matches !!! include ( target #Lstart-end ) {quote} !!!
	// with a case-insensitive keyword and arbitrary whitespace between parts.
	markdownItPattern = regexp.MustCompile(`!!!\s*(?i:include)\s*\(\s*([^()#]+?)\s*(?:#L(\d+(?:\.\d+)?)(?:-(\d+(?:\.\d+)?))?\s*)?\)\s*(?:\{(quote|noquote)\})?\s*!!!`)
)

// QuoteMode is a directive's per-occurrence quoting override.
type QuoteMode int

const (
	QuoteInherit QuoteMode = iota // No modifier: the global setting decides.
	QuoteOn                       // {quote}
	QuoteOff                      // {noquote}
)

// Directive is one inclusion occurrence extracted from document text.
type Directive struct {
	Target     string    // Referenced path, trimmed, relative or absolute.
	RangeStart string    // Raw start spec ("N" or "N.W"), empty when absent.
	RangeEnd   string    // Raw end spec, empty when absent.
	Quote      QuoteMode // Per-directive quoting override.
	Offset     int       // Byte offset of the matched span in the document.
	Length     int       // Length of the matched span.
}

// matchDirective extracts the first directive of the given pattern from
// content. It reports false when the pattern has no match.
func matchDirective(pattern *regexp.Regexp, content string) (Directive, bool) {
	idx := pattern.FindStringSubmatchIndex(content)
	if idx == nil {
		return Directive{}, false
	}
	return directiveFromIndex(content, idx), true
}

// matchAllDirectives extracts every non-overlapping directive of the given
// pattern from content, in order of appearance. Only callers that never
// mutate content may use this; the expander consumes one match at a time.
func matchAllDirectives(pattern *regexp.Regexp, content string) []Directive {
	var directives []Directive
	for _, idx := range pattern.FindAllStringSubmatchIndex(content, -1) {
		directives = append(directives, directiveFromIndex(content, idx))
	}
	return directives
}

// directiveFromIndex normalizes one submatch index set into a Directive.
func directiveFromIndex(content string, idx []int) Directive {
	group := func(n int) string {
		lo, hi := idx[2*n], idx[2*n+1]
		if lo < 0 {
			return ""
		}
		return content[lo:hi]
	}

	d := Directive{
		Target:     strings.TrimSpace(group(1)),
		RangeStart: group(2),
		RangeEnd:   group(3),
		Offset:     idx[0],
		Length:     idx[1] - idx[0],
	}
	switch group(4) {
	case "quote":
		d.Quote = QuoteOn
	case "noquote":
		d.Quote = QuoteOff
	}
	return d
}
