// File: pkg/watch/watcher.go

// Package watch re-expands a root document whenever it, or any file in its
// inclusion tree, changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"transclude/pkg/include"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last filesystem event before
// a re-expansion runs. Editors commonly emit bursts of events per save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher drives expand-on-change for one root document.
type Watcher struct {
	expander *include.Expander
	root     string // Absolute path of the root document.
	output   string // Destination of the expanded text.
	debounce time.Duration
	logger   *zap.Logger
	fw       *fsnotify.Watcher
}

// New builds a Watcher for the root document, writing expansions to output.
// A non-positive debounce falls back to DefaultDebounce.
func New(expander *include.Expander, root, output string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root document path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	return &Watcher{
		expander: expander,
		root:     absRoot,
		output:   output,
		debounce: debounce,
		logger:   logger,
		fw:       fw,
	}, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error { return w.fw.Close() }

// Once expands the root document, writes the result, and refreshes the
// watch set from the resulting inclusion tree. The tree can change with
// every edit, so the watch set is re-derived after each expansion.
func (w *Watcher) Once() error {
	content, err := os.ReadFile(w.root)
	if err != nil {
		return fmt.Errorf("failed to read root document: %w", err)
	}

	expanded, err := w.expander.ExpandDocument(string(content), w.root)
	if err != nil {
		return fmt.Errorf("failed to expand document: %w", err)
	}

	if err := os.WriteFile(w.output, []byte(expanded), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	w.logger.Info("Expanded document",
		zap.String("document", w.root),
		zap.String("output", w.output))

	w.resetWatchSet()
	return nil
}

// Run expands once and then blocks, re-expanding after each debounced burst
// of changes, until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Once(); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if event.Name == w.output {
				continue // Our own writes are not edits.
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.logger.Debug("Filesystem event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			if err := w.Once(); err != nil {
				// Keep watching: a transient error (half-written include,
				// deleted target) often resolves with the next save.
				w.logger.Error("Re-expansion failed", zap.Error(err))
			}
		}
	}
}

// resetWatchSet points the filesystem watcher at the directories containing
// every member of the current inclusion tree. Directories rather than files:
// editors that save via rename would otherwise drop the watch.
func (w *Watcher) resetWatchSet() {
	tree, err := w.expander.Tree(w.root)
	if err != nil {
		w.logger.Warn("Failed to derive inclusion tree for watching", zap.Error(err))
		tree = &include.TreeNode{Path: w.root}
	}

	for _, watched := range w.fw.WatchList() {
		if err := w.fw.Remove(watched); err != nil {
			w.logger.Debug("Failed to remove watch", zap.String("path", watched), zap.Error(err))
		}
	}

	for _, dir := range watchTargets(tree) {
		if err := w.fw.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
}

// watchTargets returns the deduplicated parent directories of every resolved
// node in the tree. Not-found targets contribute too: their directory is
// where the file would appear.
func watchTargets(root *include.TreeNode) []string {
	seen := make(map[string]struct{})
	var dirs []string

	var walk func(node *include.TreeNode)
	walk = func(node *include.TreeNode) {
		dir := filepath.Dir(node.Path)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)
	return dirs
}
