package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piyush168713/parcel/internal/config"
)

var configPath string

// configCmd prints the resolved bundler configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved bundler configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if jsonOutput {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "minBundles:          %d\n", cfg.MinBundles)
		fmt.Fprintf(cmd.OutOrStdout(), "minBundleSize:       %d\n", cfg.MinBundleSize)
		fmt.Fprintf(cmd.OutOrStdout(), "maxParallelRequests: %d\n", cfg.MaxParallelRequests)
		return nil
	},
}

func init() {
	configCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the bundler config file")
	rootCmd.AddCommand(configCmd)
}
