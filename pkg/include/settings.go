// File: pkg/include/settings.go
package include

import "strings"

// Settings holds the configuration options for the expansion engine.
// A zero Settings disables both syntaxes; use DefaultSettings as the base.
type Settings struct {
	CommonmarkStyle    bool   // Enables the :[label](target) directive syntax.
	MarkdownItStyle    bool   // Enables the !!! include (target) !!! directive syntax.
	NotFoundMessage    string // Spliced in when a target does not exist; {{FILE}} is the resolved path.
	CircularMessage    string // Spliced in when a target closes a cycle; {{FILE}} and {{PARENT}} are filled.
	QuoteFormatting    bool   // Global default for block-quote wrapping of included content.
	QuoteIncludeSource bool   // Whether a source citation line is appended when quoting.
	QuoteSourceLabel   string // Label text used in the citation line.
}

// DefaultSettings returns the engine defaults: both syntaxes enabled,
// quoting off globally, citations on when quoting is active.
func DefaultSettings() Settings {
	return Settings{
		CommonmarkStyle:    true,
		MarkdownItStyle:    true,
		NotFoundMessage:    "!INCLUDE NOT FOUND: {{FILE}}",
		CircularMessage:    "!CIRCULAR INCLUDE: {{FILE}} (included from {{PARENT}})",
		QuoteFormatting:    false,
		QuoteIncludeSource: true,
		QuoteSourceLabel:   "Source",
	}
}

// fillTemplate substitutes the {{FILE}} and {{PARENT}} placeholders in a
// message template.
func fillTemplate(tmpl, file, parent string) string {
	out := strings.ReplaceAll(tmpl, "{{FILE}}", file)
	return strings.ReplaceAll(out, "{{PARENT}}", parent)
}
