// File: pkg/ignore/ignore.go

// Package ignore compiles gitignore-style pattern files into path matchers.
// Batch expansion uses it to decide which documents under an input directory
// are candidates for processing.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// IgnoreFileName is the per-project pattern file discovered from the working
// directory upward.
const IgnoreFileName = ".transcludeignore"

// Matcher reports whether a path is excluded by the loaded patterns.
type Matcher interface {
	MatchesPath(path string) bool
}

// Pattern is one compiled ignore rule with metadata about its origin.
type Pattern struct {
	Regex  *regexp.Regexp // Compiled regular expression for the rule.
	Negate bool           // True when the rule starts with '!'.
	LineNo int            // 1-based line number in the source.
	Line   string         // Original rule text.
}

// Ruleset is an ordered collection of ignore patterns; later rules override
// earlier ones, so a trailing negation re-admits a path.
type Ruleset struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewRuleset creates an empty Ruleset. A nil logger falls back to no-op.
func NewRuleset(logger *zap.Logger) *Ruleset {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ruleset{logger: logger}
}

// Load builds a Ruleset from the optional global pattern file plus every
// .transcludeignore found between the filesystem root and the current
// directory, root-most first so closer files take precedence.
func Load(globalPath string, logger *zap.Logger) (*Ruleset, error) {
	rs := NewRuleset(logger)

	if globalPath != "" {
		absGlobal, err := filepath.Abs(globalPath)
		if err == nil {
			if err := rs.CompileFile(absGlobal); err != nil {
				rs.logger.Warn("Failed to load global ignore file", zap.String("file", absGlobal), zap.Error(err))
			} else {
				rs.logger.Debug("Loaded global ignore file", zap.String("file", absGlobal))
			}
		}
	}

	startDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	var files []string
	currentDir := startDir
	for {
		candidate := filepath.Join(currentDir, IgnoreFileName)
		if _, err := os.Stat(candidate); err == nil {
			files = append([]string{candidate}, files...)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	for _, file := range files {
		if err := rs.CompileFile(file); err != nil {
			rs.logger.Warn("Failed to compile ignore file", zap.String("file", file), zap.Error(err))
			continue
		}
		rs.logger.Debug("Loaded ignore file", zap.String("file", file))
	}

	rs.logger.Debug("Finished loading ignore files", zap.Int("totalPatterns", len(rs.patterns)))
	return rs, nil
}

// CompileLines appends rules parsed from the given lines.
func (rs *Ruleset) CompileLines(lines ...string) {
	for i, line := range lines {
		rs.compileLine(line, len(rs.patterns)+i+1)
	}
}

// CompileFile reads a pattern file and appends its rules. A missing file is
// not an error; it simply contributes nothing.
func (rs *Ruleset) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	for i, line := range strings.Split(string(content), "\n") {
		rs.compileLine(line, i+1)
	}
	return nil
}

func (rs *Ruleset) compileLine(line string, lineNo int) {
	regex, negate := parsePatternLine(line, lineNo, rs.logger)
	if regex == nil {
		return
	}
	rs.patterns = append(rs.patterns, &Pattern{
		Regex:  regex,
		Negate: negate,
		LineNo: lineNo,
		Line:   strings.TrimSpace(line),
	})
}

// MatchesPath reports whether path is excluded by the rules.
func (rs *Ruleset) MatchesPath(path string) bool {
	matched, _ := rs.Match(path)
	return matched
}

// Match reports whether path is excluded and which rule decided it. Rules
// apply in order, so a later negation can re-admit a path excluded earlier.
func (rs *Ruleset) Match(path string) (bool, *Pattern) {
	normalized := NormalizePath(path)

	matched := false
	var deciding *Pattern
	for _, pattern := range rs.patterns {
		if !pattern.Regex.MatchString(normalized) {
			continue
		}
		deciding = pattern
		matched = !pattern.Negate
	}
	return matched, deciding
}

// Len returns the number of compiled rules.
func (rs *Ruleset) Len() int { return len(rs.patterns) }

// parsePatternLine converts one pattern-file line into a compiled regular
// expression and a negation flag. Comments and blank lines return nil.
func parsePatternLine(line string, lineNo int, logger *zap.Logger) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	pattern := escapeSpecialChars(trimmed)
	pattern = handleDoubleStarPatterns(pattern)
	pattern = wildcardToRegex(pattern)
	pattern = anchorPattern(pattern, trimmed)

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		logger.Error("Invalid ignore pattern",
			zap.String("pattern", trimmed),
			zap.Int("lineNo", lineNo),
			zap.Error(err))
		return nil, false
	}
	return compiled, negate
}

// NormalizePath prepares a path for matching: forward slashes, trailing
// slash on existing directories.
func NormalizePath(path string) string {
	path = filepath.ToSlash(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
