// File: pkg/batch/traversal.go
package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"transclude/pkg/ignore"

	"go.uber.org/zap"
)

// Collect resolves the given paths into the list of root documents to
// expand. Files named directly are taken as-is (subject only to the binary
// sniff); directories are traversed with ignore rules, the extension filter,
// and the size cap applied.
func Collect(paths []string, rules *ignore.Ruleset, opts Options, logger *zap.Logger) ([]string, error) {
	var documents []string
	logger.Debug("Starting document collection", zap.Int("pathCount", len(paths)))

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			logger.Warn("Failed to get absolute path", zap.String("path", path), zap.Error(err))
			continue
		}

		info, err := os.Stat(absPath)
		if err != nil {
			logger.Warn("Path does not exist or cannot be accessed", zap.String("path", absPath), zap.Error(err))
			continue
		}

		if info.IsDir() {
			found, err := traverse(absPath, rules, opts, logger)
			if err != nil {
				logger.Warn("Failed to traverse directory", zap.String("dir", absPath), zap.Error(err))
				continue
			}
			documents = append(documents, found...)
			continue
		}

		binary, err := isBinaryFile(absPath)
		if err != nil {
			logger.Warn("Failed to sniff file", zap.String("path", absPath), zap.Error(err))
			continue
		}
		if binary {
			logger.Warn("Skipping binary file named on the command line", zap.String("path", absPath))
			continue
		}
		documents = append(documents, absPath)
	}

	logger.Debug("Completed document collection", zap.Int("documents", len(documents)))
	return documents, nil
}

// traverse walks one directory and collects candidate documents.
func traverse(parentDir string, rules *ignore.Ruleset, opts Options, logger *zap.Logger) ([]string, error) {
	var documents []string

	err := filepath.WalkDir(parentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}

		relPath, _ := filepath.Rel(parentDir, path)
		relPath = ignore.NormalizePath(relPath)

		if d.IsDir() {
			if path != parentDir && rules.MatchesPath(relPath) {
				logger.Debug("Skipping ignored directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if rules.MatchesPath(relPath) {
			if opts.Verbose {
				logger.Debug("Skipping ignored file", zap.String("file", path))
			}
			return nil
		}

		if !hasDocumentExtension(path, opts.Extensions) {
			return nil
		}

		if opts.MaxFileSizeKB > 0 {
			info, err := d.Info()
			if err != nil {
				logger.Warn("Failed to get file info", zap.String("file", path), zap.Error(err))
				return nil
			}
			if info.Size() > int64(opts.MaxFileSizeKB)*1024 {
				if opts.Verbose {
					logger.Debug("Skipping file over size limit",
						zap.String("file", path),
						zap.Int64("sizeBytes", info.Size()),
						zap.Int("maxSizeKB", opts.MaxFileSizeKB))
				}
				return nil
			}
		}

		binary, err := isBinaryFile(path)
		if err != nil {
			logger.Warn("Failed to sniff file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if binary {
			if opts.Verbose {
				logger.Debug("Skipping binary file", zap.String("file", path))
			}
			return nil
		}

		documents = append(documents, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// hasDocumentExtension reports whether path carries one of the configured
// document extensions.
func hasDocumentExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range extensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}
