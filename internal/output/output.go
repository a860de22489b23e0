// Package output writes split documents to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/mdsplit/internal/chunker"
)

// WriteError reports a file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFiles writes every file into dir, creating it if needed, and returns
// the written paths in order. Existing files with the same name are
// replaced. Writing stops at the first failure.
func WriteFiles(dir string, files []chunker.File) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.Title == "" || f.Title != filepath.Base(f.Title) {
			return paths, &WriteError{Path: f.Title, Err: fmt.Errorf("invalid file name %q", f.Title)}
		}
		path := filepath.Join(dir, f.Title)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return paths, &WriteError{Path: path, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}
