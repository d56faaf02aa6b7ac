package discovery

import (
	"context"
	"fmt"
	"slices"
)

// Mapping files the sources directly inside Dir under the filter path Filter.
type Mapping struct {
	Dir    string
	Filter []string
}

// AddedFile is an on-disk source file the project does not reference yet.
type AddedFile struct {
	Path   string
	Filter []string
}

// ChangeSet contains the result of change detection.
type ChangeSet struct {
	Added   []AddedFile // Relevant files on disk, not in the project
	Deleted []string    // Files in the project, not on disk
	Known   int         // Number of paths the project references
}

// HasChanges reports whether anything needs to be written.
func (cs *ChangeSet) HasChanges() bool {
	return len(cs.Added) > 0 || len(cs.Deleted) > 0
}

// ScanObserver receives progress while directories are listed.
type ScanObserver interface {
	OnScanStart(totalDirs int)
	OnDirScanned(dir string, relevantFiles int)
}

// ChangeDetector compares the files a project references with the files on disk.
type ChangeDetector interface {
	// DetectChanges returns the files to add (in layout order) and the
	// referenced files that no longer exist.
	DetectChanges(ctx context.Context, known []string) (*ChangeSet, error)
}

type changeDetector struct {
	discovery *FileDiscovery
	layout    []Mapping
	observer  ScanObserver
}

// NewChangeDetector creates a new change detector. observer may be nil.
func NewChangeDetector(discovery *FileDiscovery, layout []Mapping, observer ScanObserver) ChangeDetector {
	return &changeDetector{
		discovery: discovery,
		layout:    layout,
		observer:  observer,
	}
}

// DetectChanges implements the change detection algorithm.
//
// Algorithm:
//  1. For each layout entry in order, list its directory and keep relevant
//     files that are neither referenced nor already proposed. A directory
//     listed by several entries therefore contributes each file once, under
//     the first entry's filter.
//  2. Every referenced path that is missing on disk is Deleted.
func (cd *changeDetector) DetectChanges(ctx context.Context, known []string) (*ChangeSet, error) {
	changes := &ChangeSet{
		Added:   []AddedFile{},
		Deleted: []string{},
		Known:   len(known),
	}

	seen := make(map[string]bool, len(known))
	for _, p := range known {
		seen[p] = true
	}

	if cd.observer != nil {
		cd.observer.OnScanStart(len(cd.layout))
	}

	for _, m := range cd.layout {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := cd.discovery.ListDir(m.Dir)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			seen[file] = true
			changes.Added = append(changes.Added, AddedFile{Path: file, Filter: slices.Clone(m.Filter)})
		}

		if cd.observer != nil {
			cd.observer.OnDirScanned(m.Dir, len(files))
		}
	}

	for _, p := range known {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		exists, err := cd.discovery.Exists(p)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", p, err)
		}
		if !exists {
			changes.Deleted = append(changes.Deleted, p)
		}
	}

	return changes, nil
}
