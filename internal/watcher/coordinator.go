package watcher

import (
	"context"
	"log"
	"sync"

	"github.com/kepazon/my-sumatrapdf/internal/project"
)

// SyncCoordinator routes FileWatcher events to a ProjectSyncer.
type SyncCoordinator struct {
	files  FileWatcher
	syncer ProjectSyncer

	// OnSynced, if set, is called after every successful sync instead of
	// logging a summary.
	OnSynced func(result *project.Result)

	mu  sync.Mutex // serializes syncs, guards ctx
	ctx context.Context
}

// NewSyncCoordinator creates a new sync coordinator.
func NewSyncCoordinator(files FileWatcher, syncer ProjectSyncer) *SyncCoordinator {
	return &SyncCoordinator{
		files:  files,
		syncer: syncer,
	}
}

// Start begins watching and re-syncing the project on changes.
// Blocks until context is cancelled.
func (c *SyncCoordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	filesErr := make(chan error, 1)
	go func() {
		if err := c.files.Start(ctx, c.handleFileChange); err != nil {
			filesErr <- err
		}
	}()

	select {
	case err := <-filesErr:
		c.cleanup()
		return err
	case <-ctx.Done():
		c.cleanup()
		return ctx.Err()
	}
}

// cleanup stops the file watcher.
func (c *SyncCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleFileChange re-syncs the project. Events arriving while the sync
// runs are held back by pausing the watcher.
func (c *SyncCoordinator) handleFileChange(files []string) {
	if len(files) == 0 {
		return
	}

	c.files.Pause()
	defer c.files.Resume()

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	log.Printf("Syncing project after %d file change(s)...", len(files))

	result, err := c.syncer.Sync(ctx)
	if err != nil {
		log.Printf("Error: sync failed: %v", err)
		return
	}

	if c.OnSynced != nil {
		c.OnSynced(result)
		return
	}

	if result.Written {
		log.Printf("✓ Updated %s (%d added, %d removed)", result.Project, len(result.Added), len(result.Removed))
	} else {
		log.Printf("✓ %s already up to date", result.Project)
	}
}
