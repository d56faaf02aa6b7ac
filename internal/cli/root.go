package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vcproj-sync",
	Short: "Keep a Visual Studio 2008 project in step with the source tree",
	Long: `vcproj-sync adds source files that exist on disk but are missing from a
VS2008 .vcproj project file and removes references to files that no longer
exist. Files are placed under the filter configured for their directory.

Running vcproj-sync without a subcommand is the same as 'vcproj-sync sync'.`,
	SilenceUsage: true,
	RunE:         runSync,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <top>/.vcproj-sync/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// The bare command syncs, so it accepts the sync flags too
	addSyncFlags(rootCmd.Flags())
}

// initLogging drops timestamps unless verbose output was requested.
func initLogging() {
	if !verbose {
		log.SetFlags(0)
	}
}
