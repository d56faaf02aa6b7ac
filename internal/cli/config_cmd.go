package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configRootFlag string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the configuration a sync would use, after defaults, the
config file and VCPROJ_SYNC_* environment variables have been merged.

The output is valid YAML and can be saved as .vcproj-sync/config.yml to
start a custom layout.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configRootFlag, "root", "", "Top directory of the source tree (default: search upwards for the project)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	return executeConfig(syncOptions{
		root:       configRootFlag,
		configFile: cfgFile,
	}, cmd.OutOrStdout())
}

func executeConfig(opts syncOptions, out io.Writer) error {
	_, cfg, err := resolveProject(opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}
