// File: pkg/batch/worker.go
package batch

import (
	"os"
	"runtime"
	"sync"

	"transclude/pkg/include"

	"go.uber.org/zap"
)

// expandConcurrently expands the given root documents on a worker pool and
// returns the successful results. A document that fails to read or expand is
// logged and dropped; it never aborts its siblings.
func expandConcurrently(documents []string, expander *include.Expander, maxWorkers int, logger *zap.Logger) []Result {
	jobs := make(chan string, len(documents))
	results := make(chan Result, len(documents))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", w))
		go worker(jobs, results, expander, &wg, workerLogger)
	}

	for _, doc := range documents {
		jobs <- doc
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var expanded []Result
	for result := range results {
		expanded = append(expanded, result)
	}

	logger.Debug("All documents processed",
		zap.Int("expanded", len(expanded)),
		zap.Int("submitted", len(documents)))
	return expanded
}

// worker expands documents from the jobs channel until it closes.
func worker(jobs <-chan string, results chan<- Result, expander *include.Expander, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for doc := range jobs {
		content, err := os.ReadFile(doc)
		if err != nil {
			logger.Error("Failed to read document", zap.String("document", doc), zap.Error(err))
			continue
		}

		expanded, err := expander.ExpandDocument(string(content), doc)
		if err != nil {
			logger.Error("Failed to expand document", zap.String("document", doc), zap.Error(err))
			continue
		}

		results <- Result{Source: doc, Content: expanded}
		logger.Debug("Expanded document", zap.String("document", doc))
	}
}
