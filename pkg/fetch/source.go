// Package fetch defines the raw-text source seam between the parsing core
// and the retrieval collaborator. The core never performs network calls or
// markup stripping; it accepts edit-format text produced by a Source.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source produces the raw edit-format text of one named document. Network
// retrieval (the wikisource edit-page fetch) is an external collaborator
// implementing this interface.
type Source interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// DirSource serves already-downloaded documents from a local directory, one
// file per document.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource over the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch returns the contents of the named file within the source directory.
func (s *DirSource) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return string(data), nil
}

// List returns the names of all .txt documents in the source directory, in
// sorted order.
func (s *DirSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
