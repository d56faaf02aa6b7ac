package discovery

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// FileDiscovery lists source files of configured directories, applying the
// extension filter and exclusion patterns.
//
// All paths handed in and out are relative to rootDir and slash-separated.
type FileDiscovery struct {
	fs              afero.Fs
	rootDir         string
	extensions      []string
	excludePatterns []glob.Glob
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(fs afero.Fs, rootDir string, extensions, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		fs:         fs,
		rootDir:    rootDir,
		extensions: extensions,
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		fd.excludePatterns = append(fd.excludePatterns, g)
	}

	return fd, nil
}

// ListDir returns the relevant files directly inside dir, sorted by name.
// Subdirectories are not descended into; they have their own layout entries.
func (fd *FileDiscovery) ListDir(dir string) ([]string, error) {
	entries, err := afero.ReadDir(fd.fs, fd.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		relPath := path.Join(dir, entry.Name())
		if fd.IsRelevant(relPath) {
			files = append(files, relPath)
		}
	}

	return files, nil
}

// IsRelevant reports whether relPath has a recognized source extension and
// matches no exclusion pattern.
func (fd *FileDiscovery) IsRelevant(relPath string) bool {
	return fd.hasSourceExtension(relPath) && !fd.isExcluded(relPath)
}

// Exists reports whether relPath exists below the root.
func (fd *FileDiscovery) Exists(relPath string) (bool, error) {
	_, err := fd.fs.Stat(fd.abs(relPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (fd *FileDiscovery) hasSourceExtension(relPath string) bool {
	for _, ext := range fd.extensions {
		if strings.HasSuffix(relPath, ext) {
			return true
		}
	}
	return false
}

// isExcluded checks if a path matches any exclude pattern.
func (fd *FileDiscovery) isExcluded(relPath string) bool {
	for _, g := range fd.excludePatterns {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

func (fd *FileDiscovery) abs(relPath string) string {
	return filepath.Join(fd.rootDir, filepath.FromSlash(relPath))
}
