package project

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"

	"github.com/kepazon/my-sumatrapdf/internal/config"
	"github.com/kepazon/my-sumatrapdf/internal/discovery"
	"github.com/kepazon/my-sumatrapdf/internal/vcproj"
)

// ProgressReporter receives progress of a sync run.
type ProgressReporter interface {
	discovery.ScanObserver
	OnComplete(result *Result)
}

// Options configures a Syncer.
type Options struct {
	Root     string         // top of the source tree
	Config   *config.Config // layout, extensions, exclusions, project path
	Fs       afero.Fs       // defaults to the OS filesystem
	DryRun   bool           // compute the result without writing
	Progress ProgressReporter
}

// Result describes one sync run.
type Result struct {
	Project  string // absolute path of the project file
	Known    int    // files the project referenced before the sync
	Added    []vcproj.Addition
	Removed  []string
	Unplaced []vcproj.Addition
	Changed  bool // the rewritten text differs from the original
	Written  bool // the project file was written back

	// Before and After are the LF-normalized texts.
	Before string
	After  string
}

// Diff renders a unified diff between the original and the rewritten text.
func (r *Result) Diff() (string, error) {
	if !r.Changed {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Before),
		B:        difflib.SplitLines(r.After),
		FromFile: r.Project,
		ToFile:   r.Project,
		Context:  3,
	})
}

// Syncer keeps a project file in step with the directories of its layout.
type Syncer struct {
	fs        afero.Fs
	root      string
	project   string
	dryRun    bool
	progress  ProgressReporter
	discovery *discovery.FileDiscovery
	detector  discovery.ChangeDetector
}

// NewSyncer creates a Syncer for opts.
func NewSyncer(opts Options) (*Syncer, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	fd, err := discovery.NewFileDiscovery(fs, opts.Root, opts.Config.Extensions, opts.Config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}

	var observer discovery.ScanObserver
	if opts.Progress != nil {
		observer = opts.Progress
	}

	return &Syncer{
		fs:        fs,
		root:      opts.Root,
		project:   filepath.Join(opts.Root, filepath.FromSlash(opts.Config.Project)),
		dryRun:    opts.DryRun,
		progress:  opts.Progress,
		discovery: fd,
		detector:  discovery.NewChangeDetector(fd, opts.Config.ToLayout(), observer),
	}, nil
}

// Sync reads the project file, adds the source files it is missing, drops
// references to files that no longer exist and writes the file back with
// CRLF line endings if anything changed. A project file with an unexpected
// structure is never written.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	raw, err := afero.ReadFile(s.fs, s.project)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	before := ToLF(string(raw))

	files, err := vcproj.FilesNode(before)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.project, err)
	}
	nodes, err := vcproj.ParseTree(files)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.project, err)
	}

	changes, err := s.detector.DetectChanges(ctx, vcproj.ExtractPaths(nodes))
	if err != nil {
		return nil, fmt.Errorf("failed to detect changes: %w", err)
	}

	result := &Result{
		Project: s.project,
		Known:   changes.Known,
		Before:  before,
		After:   before,
	}

	if changes.HasChanges() {
		added := make([]vcproj.Addition, 0, len(changes.Added))
		for _, a := range changes.Added {
			added = append(added, vcproj.Addition{Path: a.Path, Filter: a.Filter})
		}

		rewritten, err := vcproj.Rewrite(before, nodes, added, changes.Deleted)
		if err != nil {
			return nil, fmt.Errorf("failed to rewrite project: %w", err)
		}
		for _, u := range rewritten.Unplaced {
			log.Printf("Warning: no filter %q in %s for %s", strings.Join(u.Filter, "/"), filepath.Base(s.project), u.Path)
		}

		result.Added = rewritten.Inserted
		result.Removed = rewritten.Removed
		result.Unplaced = rewritten.Unplaced
		result.After = rewritten.Text
		result.Changed = rewritten.Text != before
	}

	if result.Changed && !s.dryRun {
		if err := s.write(result.After); err != nil {
			return nil, err
		}
		result.Written = true
	}

	if s.progress != nil {
		s.progress.OnComplete(result)
	}

	return result, nil
}

// write replaces the project file in one piece, keeping its permissions.
func (s *Syncer) write(text string) error {
	mode := os.FileMode(0644)
	if info, err := s.fs.Stat(s.project); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(s.fs, s.project, []byte(ToCRLF(text)), mode); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// ToLF converts CRLF line endings to LF.
func ToLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// ToCRLF converts LF line endings to CRLF.
func ToCRLF(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}
