// Package output persists rendered artifacts to disk.
package output

import (
	"os"
	"path/filepath"
)

// FileWriter writes artifacts under a filesystem root, creating parent
// directories as needed. The zero value writes relative to the working
// directory.
type FileWriter struct {
	// Root, when set, is prepended to every path.
	Root string
}

// NewFileWriter creates a writer rooted at dir; an empty dir means paths are
// used as given.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{Root: dir}
}

// Write persists data at path with parent directories created on demand.
func (w *FileWriter) Write(path string, data []byte) error {
	if w.Root != "" {
		path = filepath.Join(w.Root, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0600)
}
