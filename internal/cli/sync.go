package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kepazon/my-sumatrapdf/internal/config"
	"github.com/kepazon/my-sumatrapdf/internal/project"
	"github.com/kepazon/my-sumatrapdf/internal/watcher"
)

var (
	rootFlag    string
	projectFlag string
	dryRunFlag  bool
	diffFlag    bool
	watchFlag   bool
	quietFlag   bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Add new source files to the project and drop deleted ones",
	Long: `Sync reads the project file, compares the files it references with the
files present in every configured directory and rewrites the project:

  - files on disk but not in the project are added under their filter
  - files in the project but gone from disk are removed
  - everything else is left byte-for-byte untouched

The project is written back with CRLF line endings, and only if it changed.

The top directory is the first ancestor of the working directory that
contains the project file, unless --root is given.

Examples:
  # Sync the default project
  vcproj-sync

  # Show what would change without writing
  vcproj-sync sync --dry-run --diff

  # Keep syncing as files are created and deleted
  vcproj-sync sync --watch
`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	addSyncFlags(syncCmd.Flags())
}

func addSyncFlags(flags *pflag.FlagSet) {
	flags.StringVar(&rootFlag, "root", "", "Top directory of the source tree (default: search upwards for the project)")
	flags.StringVar(&projectFlag, "project", "", "Project file relative to the top directory (overrides config)")
	flags.BoolVarP(&dryRunFlag, "dry-run", "n", false, "Report changes without writing the project file")
	flags.BoolVar(&diffFlag, "diff", false, "Print a unified diff of the project changes")
	flags.BoolVarP(&watchFlag, "watch", "w", false, "Watch source directories and re-sync on changes")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

// syncOptions carries the command line of a sync run.
type syncOptions struct {
	root       string
	project    string
	configFile string
	dryRun     bool
	diff       bool
	watch      bool
	quiet      bool
	verbose    bool
}

func runSync(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nInterrupted! Stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return executeSync(ctx, syncOptions{
		root:       rootFlag,
		project:    projectFlag,
		configFile: cfgFile,
		dryRun:     dryRunFlag,
		diff:       diffFlag,
		watch:      watchFlag,
		quiet:      quietFlag,
		verbose:    verbose,
	}, cmd.OutOrStdout())
}

// executeSync runs one sync and, with --watch, keeps re-syncing until ctx is cancelled.
func executeSync(ctx context.Context, opts syncOptions, out io.Writer) error {
	root, cfg, err := resolveProject(opts)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Top directory: %s", root)
	}

	progress := NewCLIProgressReporter(opts.quiet, opts.verbose)
	syncer, err := project.NewSyncer(project.Options{
		Root:     root,
		Config:   cfg,
		DryRun:   opts.dryRun,
		Progress: progress,
	})
	if err != nil {
		return fmt.Errorf("failed to create syncer: %w", err)
	}

	result, err := syncer.Sync(ctx)
	if err != nil {
		progress.Clear()
		if ctx.Err() != nil {
			return errors.New("sync cancelled")
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	printResult(out, root, result, opts)
	if opts.diff {
		if err := printDiff(out, result); err != nil {
			return err
		}
	}

	if !opts.watch {
		return nil
	}
	return watchProject(ctx, root, cfg, opts, out)
}

// resolveProject finds the top directory and loads the configuration for it.
func resolveProject(opts syncOptions) (string, *config.Config, error) {
	var cfg *config.Config
	if opts.configFile != "" {
		loaded, err := config.NewFileLoader(opts.configFile).Load()
		if err != nil {
			return "", nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	root := opts.root
	if root == "" {
		projectRel := opts.project
		if projectRel == "" && cfg != nil {
			projectRel = cfg.Project
		}
		if projectRel == "" {
			projectRel = config.Default().Project
		}

		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root, err = project.FindTop(afero.NewOsFs(), wd, filepath.ToSlash(projectRel))
		if err != nil {
			return "", nil, err
		}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", opts.root, err)
	}

	if cfg == nil {
		cfg, err = config.LoadConfigFromDir(root)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if opts.project != "" {
		cfg.Project = filepath.ToSlash(opts.project)
		if err := config.Validate(cfg); err != nil {
			return "", nil, fmt.Errorf("invalid --project: %w", err)
		}
	}

	return root, cfg, nil
}

// watchProject re-syncs the project whenever a source file is created,
// deleted or renamed in one of the configured directories.
func watchProject(ctx context.Context, root string, cfg *config.Config, opts syncOptions, out io.Writer) error {
	syncer, err := project.NewSyncer(project.Options{
		Root:   root,
		Config: cfg,
		DryRun: opts.dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to create syncer: %w", err)
	}

	dirs := make([]string, 0, len(cfg.Layout))
	for _, dir := range cfg.Dirs() {
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(dir)))
	}

	files, err := watcher.NewFileWatcher(dirs, cfg.Extensions, cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to watch source directories: %w", err)
	}

	coord := watcher.NewSyncCoordinator(files, syncer)
	coord.OnSynced = func(result *project.Result) {
		printResult(out, root, result, opts)
		if opts.diff {
			if err := printDiff(out, result); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	if !opts.quiet {
		log.Printf("Watching %d directories for changes (Ctrl+C to stop)...", len(dirs))
	}

	if err := coord.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}

	if !opts.quiet {
		log.Println("Watch mode stopped")
	}
	return nil
}

// printResult lists the entries a sync added and removed.
func printResult(out io.Writer, root string, result *project.Result, opts syncOptions) {
	if opts.quiet {
		return
	}

	name := result.Project
	if rel, err := filepath.Rel(root, result.Project); err == nil {
		name = filepath.ToSlash(rel)
	}

	for _, a := range result.Added {
		fmt.Fprintf(out, "  + %s (%s)\n", a.Path, filterLabel(a.Filter))
	}
	for _, p := range result.Removed {
		fmt.Fprintf(out, "  - %s\n", p)
	}

	switch {
	case !result.Changed:
		fmt.Fprintf(out, "✓ %s is up to date\n", name)
	case result.Written:
		fmt.Fprintf(out, "✓ Updated %s: %d added, %d removed\n", name, len(result.Added), len(result.Removed))
	default:
		fmt.Fprintf(out, "%s is out of date: %d to add, %d to remove (dry run, not written)\n", name, len(result.Added), len(result.Removed))
	}
}

func printDiff(out io.Writer, result *project.Result) error {
	diff, err := result.Diff()
	if err != nil {
		return fmt.Errorf("failed to render diff: %w", err)
	}
	fmt.Fprint(out, diff)
	return nil
}

// filterLabel renders a filter path the way the IDE shows it.
func filterLabel(filter []string) string {
	if len(filter) == 0 {
		return "Files"
	}
	return strings.Join(filter, "/")
}
