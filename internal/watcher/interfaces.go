package watcher

import (
	"context"

	"github.com/kepazon/my-sumatrapdf/internal/project"
)

// FileWatcher monitors source directories for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching source directories, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// ProjectSyncer brings the project file in step with the disk.
type ProjectSyncer interface {
	Sync(ctx context.Context) (*project.Result, error)
}
