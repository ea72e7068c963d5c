// File: pkg/include/expand.go

// Package include implements recursive, cycle-safe expansion of inline
// file-inclusion directives: a directive names a target file, optionally a
// line/word range within it and a quoting mode, and the referenced content
// is spliced in place of the directive. Included content is expanded again,
// so includes nest; the chain of ancestor paths guards against cycles.
package include

import (
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// Expander resolves inclusion directives in document text, splicing in the
// referenced file contents recursively until no directive of an enabled
// syntax remains. An Expander is immutable after construction and safe for
// concurrent use: every root expansion owns its own buffer and ancestor
// chain.
type Expander struct {
	settings Settings
	fsys     FileSystem
	logger   *zap.Logger
}

// NewExpander builds an Expander. A nil fsys falls back to the operating
// system; a nil logger falls back to a no-op logger.
func NewExpander(settings Settings, fsys FileSystem, logger *zap.Logger) *Expander {
	if fsys == nil {
		fsys = OSFileSystem()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{settings: settings, fsys: fsys, logger: logger}
}

// Settings returns the settings the Expander was built with.
func (e *Expander) Settings() Settings { return e.settings }

// ExpandDocument expands every directive in content, resolving relative
// targets against the directory of docPath. docPath should be absolute; an
// empty docPath means there is no active document and therefore no base
// directory, so the content passes through unchanged.
func (e *Expander) ExpandDocument(content, docPath string) (string, error) {
	if docPath == "" {
		e.logger.Debug("No document path supplied, skipping expansion")
		return content, nil
	}
	return e.expand(content, docPath, []string{docPath})
}

// expand runs each enabled syntax's scan-and-splice loop to exhaustion over
// content, the first style fully before the second. chain is the sequence of
// absolute paths from the root document down to the document owning content;
// it is copied, never shared, on recursion so sibling branches cannot see
// each other's entries.
func (e *Expander) expand(content, docPath string, chain []string) (string, error) {
	for _, pattern := range e.enabledPatterns() {
		for {
			d, ok := matchDirective(pattern, content)
			if !ok {
				break
			}

			replacement, err := e.resolve(d, docPath, chain)
			if err != nil {
				return "", err
			}

			// Splicing shifts every offset past the directive, so the next
			// iteration rescans the mutated content from the start.
			content = content[:d.Offset] + replacement + content[d.Offset+d.Length:]
		}
	}
	return content, nil
}

// enabledPatterns returns the directive patterns active under the settings,
// in application order.
func (e *Expander) enabledPatterns() []*regexp.Regexp {
	var patterns []*regexp.Regexp
	if e.settings.CommonmarkStyle {
		patterns = append(patterns, commonmarkPattern)
	}
	if e.settings.MarkdownItStyle {
		patterns = append(patterns, markdownItPattern)
	}
	return patterns
}

// resolve produces the replacement text for one directive found in the
// document at docPath.
func (e *Expander) resolve(d Directive, docPath string, chain []string) (string, error) {
	target := e.fsys.ResolvePath(filepath.Dir(docPath), d.Target)

	if !e.fsys.FileExists(target) {
		e.logger.Debug("Include target not found",
			zap.String("target", target),
			zap.String("document", docPath))
		return fillTemplate(e.settings.NotFoundMessage, target, docPath), nil
	}

	// Cycle check against the ancestor chain only. A file legitimately
	// re-included from a sibling branch is not an ancestor and passes.
	if containsPath(chain, target) {
		e.logger.Warn("Circular include detected",
			zap.String("target", target),
			zap.String("document", docPath))
		return fillTemplate(e.settings.CircularMessage, target, docPath), nil
	}

	original, err := e.fsys.ReadFile(target)
	if err != nil {
		return "", &ReadError{Path: target, Err: err}
	}

	sliced := selectRange(original, d.RangeStart, d.RangeEnd)

	expanded, err := e.expand(sliced, target, extendChain(chain, target))
	if err != nil {
		return "", err
	}

	if e.quoteActive(d) {
		// Formatting wraps the fully expanded child content; the citation's
		// word-column math runs against the original, unsliced file bytes.
		expanded = quoteContent(expanded, quoteOptions{
			sourcePath:    target,
			label:         e.settings.QuoteSourceLabel,
			includeSource: e.settings.QuoteIncludeSource,
			startSpec:     d.RangeStart,
			original:      original,
		})
	}
	return expanded, nil
}

// quoteActive decides whether quoting applies to one directive: an explicit
// modifier wins, otherwise the global default.
func (e *Expander) quoteActive(d Directive) bool {
	switch d.Quote {
	case QuoteOn:
		return true
	case QuoteOff:
		return false
	}
	return e.settings.QuoteFormatting
}

// containsPath reports whether the ancestor chain already holds path.
func containsPath(chain []string, path string) bool {
	for _, entry := range chain {
		if entry == path {
			return true
		}
	}
	return false
}

// extendChain returns a fresh copy of chain with path appended, so recursive
// calls never share a backing array with their siblings.
func extendChain(chain []string, path string) []string {
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return append(next, path)
}
