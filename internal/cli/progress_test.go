package cli

// Test Plan for CLIProgressReporter:
// - Quiet reporter counts directories and files without drawing a bar
// - Verbose reporter logs per directory instead of drawing a bar
// - A new scan resets the counters
// - OnComplete tolerates a scan without a bar
// - Clear removes the bar of a scan that failed before completing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kepazon/my-sumatrapdf/internal/project"
	"github.com/kepazon/my-sumatrapdf/internal/vcproj"
)

func TestCLIProgressReporter_Quiet(t *testing.T) {
	t.Parallel()

	p := NewCLIProgressReporter(true, false)
	p.OnScanStart(3)
	p.OnDirScanned("src", 12)
	p.OnDirScanned("src/utils", 30)
	p.OnDirScanned("src/mui", 4)

	assert.Nil(t, p.dirBar)
	assert.Equal(t, "3/3 directories, 46 files", p.String())

	p.OnComplete(&project.Result{Project: "vs/test.vcproj"})
}

func TestCLIProgressReporter_Verbose(t *testing.T) {
	t.Parallel()

	p := NewCLIProgressReporter(false, true)
	p.OnScanStart(2)
	assert.Nil(t, p.dirBar, "verbose output logs instead of drawing a bar")

	p.OnDirScanned("src", 1)
	p.OnComplete(&project.Result{
		Project:  "vs/test.vcproj",
		Unplaced: []vcproj.Addition{{Path: "src/wingui/Layout.cpp", Filter: []string{"baseutils", "wingui"}}},
	})
	assert.Equal(t, "1/2 directories, 1 files", p.String())
}

func TestCLIProgressReporter_ResetsBetweenScans(t *testing.T) {
	t.Parallel()

	p := NewCLIProgressReporter(true, false)
	p.OnScanStart(1)
	p.OnDirScanned("src", 5)
	p.OnComplete(&project.Result{})

	p.OnScanStart(2)
	assert.Equal(t, "0/2 directories, 0 files", p.String())
}

func TestCLIProgressReporter_Bar(t *testing.T) {
	t.Parallel()

	p := NewCLIProgressReporter(false, false)
	p.OnScanStart(2)
	assert.NotNil(t, p.dirBar)

	p.OnDirScanned("src", 2)
	p.OnDirScanned("src/utils", 3)
	p.OnComplete(&project.Result{})

	assert.Nil(t, p.dirBar)
	assert.Equal(t, "2/2 directories, 5 files", p.String())
}

func TestCLIProgressReporter_ClearAfterFailedScan(t *testing.T) {
	t.Parallel()

	p := NewCLIProgressReporter(false, false)
	p.OnScanStart(3)
	p.OnDirScanned("src", 2)
	require.NotNil(t, p.dirBar)

	// The scan stops before OnComplete
	p.Clear()
	assert.Nil(t, p.dirBar)

	// Clearing twice, or without a bar, is harmless
	p.Clear()
	NewCLIProgressReporter(true, false).Clear()
}
