package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kepazon/my-sumatrapdf/internal/project"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet        bool
	verbose      bool
	dirBar       *progressbar.ProgressBar
	startTime    time.Time
	totalDirs    int
	scannedDirs  int
	scannedFiles int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		verbose:   verbose,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnScanStart(totalDirs int) {
	c.totalDirs = totalDirs
	c.scannedDirs = 0
	c.scannedFiles = 0
	c.startTime = time.Now()

	// Per-directory log lines replace the bar in verbose mode
	if c.quiet || c.verbose {
		return
	}

	c.dirBar = progressbar.NewOptions(totalDirs,
		progressbar.OptionSetDescription("Scanning directories"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnDirScanned(dir string, relevantFiles int) {
	c.scannedDirs++
	c.scannedFiles += relevantFiles

	if c.quiet {
		return
	}
	if c.verbose {
		log.Printf("Scanned %s: %d source files", dir, relevantFiles)
		return
	}
	if c.dirBar != nil {
		c.dirBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(result *project.Result) {
	if c.dirBar != nil {
		c.dirBar.Finish()
		c.dirBar = nil
	}
	if c.quiet || !c.verbose {
		return
	}

	elapsed := time.Since(c.startTime)
	log.Printf("Scanned %s in %s; project referenced %d files", c, elapsed.Round(time.Millisecond), result.Known)
	if len(result.Unplaced) > 0 {
		log.Printf("%d files could not be placed in %s", len(result.Unplaced), result.Project)
	}
}

// Clear erases a bar left behind by a scan that never completed.
func (c *CLIProgressReporter) Clear() {
	if c.dirBar == nil {
		return
	}
	if err := c.dirBar.Clear(); err != nil {
		log.Printf("Warning: failed to clear progress bar: %v", err)
	}
	c.dirBar = nil
}

// String summarizes the last scan.
func (c *CLIProgressReporter) String() string {
	return fmt.Sprintf("%d/%d directories, %d files", c.scannedDirs, c.totalDirs, c.scannedFiles)
}
