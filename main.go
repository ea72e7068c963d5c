package main

import (
	"log"
	"os"
	"strings"

	"transclude/cmd"
	"transclude/pkg/logging"
	"transclude/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := logging.Setup(os.Getenv("TRANSCLUDE_DEBUG") != "", "transclude", version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := cmd.Execute(logger); err != nil {
		logger.Fatal("transclude execution failed", zap.Error(err))
	}

	// Check if stderr is a terminal or a regular file before attempting to
	// sync; zap's Sync on a piped stderr reports EINVAL.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
