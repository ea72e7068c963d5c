// File: pkg/batch/batch.go

// Package batch expands inclusion directives across many root documents:
// it collects candidate files under the given paths, expands each one on a
// worker pool, and writes the results out. Every root document owns its own
// buffer and ancestor chain, so the expansions are independent.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"transclude/pkg/ignore"
	"transclude/pkg/include"

	"go.uber.org/zap"
)

// Options holds the configuration for one batch run.
type Options struct {
	Paths            []string // Files or directories to process.
	Output           string   // Output path when a single document is processed; empty means stdout.
	OutputDir        string   // Directory receiving one output per document; overrides sibling outputs.
	Suffix           string   // Inserted before the extension for sibling outputs; default ".out".
	Extensions       []string // Document extensions considered during traversal; default markdown set.
	MaxFileSizeKB    int      // Documents larger than this are skipped; <=0 means no limit.
	MaxWorkers       int      // Worker pool size; <=0 means NumCPU.
	IgnorePatterns   []string // Extra ignore rules supplied on the command line.
	GlobalIgnoreFile string   // Optional global .transcludeignore path.
	Verbose          bool     // Enables per-file skip logging.
}

// Result is one expanded root document.
type Result struct {
	Source  string // Absolute path of the root document.
	Content string // Fully expanded text.
}

// DefaultExtensions are the document extensions traversal considers when the
// options name none.
var DefaultExtensions = []string{".md", ".markdown", ".mdown", ".txt"}

// Run collects the root documents under opts.Paths, expands them
// concurrently with the given engine settings, and writes the results.
func Run(opts Options, settings include.Settings, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	rules, err := ignore.Load(opts.GlobalIgnoreFile, logger)
	if err != nil {
		logger.Error("Failed to load ignore patterns", zap.Error(err))
		return fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if len(opts.IgnorePatterns) > 0 {
		rules.CompileLines(opts.IgnorePatterns...)
		logger.Debug("Added command-line ignore patterns", zap.Int("count", len(opts.IgnorePatterns)))
	}

	documents, err := Collect(opts.Paths, rules, opts, logger)
	if err != nil {
		logger.Error("Failed to collect documents", zap.Error(err))
		return fmt.Errorf("failed to collect documents: %w", err)
	}
	if len(documents) == 0 {
		logger.Warn("No documents to expand after filtering")
		return nil
	}

	expander := include.NewExpander(settings, nil, logger)
	results := expandConcurrently(documents, expander, opts.MaxWorkers, logger)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Source < results[j].Source
	})

	if err := writeResults(results, opts, logger); err != nil {
		return err
	}

	logger.Info("Expansion completed",
		zap.Int("documents", len(results)),
		zap.Int("collected", len(documents)))
	return nil
}

// writeResults routes each expanded document to its destination. A single
// document goes to opts.Output or stdout; multiple documents go to
// opts.OutputDir or to a sibling file with the configured suffix.
func writeResults(results []Result, opts Options, logger *zap.Logger) error {
	if len(results) == 1 && opts.OutputDir == "" {
		if opts.Output == "" || opts.Output == "-" {
			_, err := os.Stdout.WriteString(results[0].Content)
			return err
		}
		return writeFile(opts.Output, results[0].Content, logger)
	}

	for _, result := range results {
		dest, err := outputPath(result.Source, opts)
		if err != nil {
			return err
		}
		if err := writeFile(dest, result.Content, logger); err != nil {
			return err
		}
	}
	return nil
}

// outputPath decides where one document's expansion lands.
func outputPath(source string, opts Options) (string, error) {
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		return filepath.Join(opts.OutputDir, filepath.Base(source)), nil
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = ".out"
	}
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + suffix + ext, nil
}

func writeFile(path string, content string, logger *zap.Logger) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		logger.Error("Failed to write output file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	logger.Debug("Wrote output file", zap.String("path", path))
	return nil
}
