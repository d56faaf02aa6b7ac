package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrTopNotFound indicates no ancestor of the start directory contains the project file.
var ErrTopNotFound = errors.New("top directory not found")

// FindTop walks up from start until it finds a directory containing
// projectRel (slash-separated) and returns that directory.
func FindTop(fs afero.Fs, start, projectRel string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		exists, err := afero.Exists(fs, filepath.Join(dir, filepath.FromSlash(projectRel)))
		if err != nil {
			return "", err
		}
		if exists {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrTopNotFound, projectRel, start)
		}
		dir = parent
	}
}
