// File: pkg/include/fsys.go
package include

import (
	"os"
	"path/filepath"
)

// FileSystem is the capability surface the expander needs from its host:
// resolving a reference against a base directory, checking existence, and
// reading file content. Injecting it keeps the engine testable without a
// live filesystem.
type FileSystem interface {
	ResolvePath(dir, ref string) string
	FileExists(path string) bool
	ReadFile(path string) (string, error)
}

// osFS is the operating-system-backed FileSystem used outside tests.
type osFS struct{}

// OSFileSystem returns a FileSystem backed by the operating system.
func OSFileSystem() FileSystem { return osFS{} }

func (osFS) ResolvePath(dir, ref string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(dir, ref)
}

func (osFS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (osFS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
