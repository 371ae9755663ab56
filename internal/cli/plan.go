package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/piyush168713/parcel/internal/config"
	"github.com/piyush168713/parcel/internal/engine"
	"github.com/piyush168713/parcel/internal/graphio"
	"github.com/piyush168713/parcel/internal/plancache"
)

var (
	planGraphPath  string
	planConfigPath string
)

// planCmd plans an asset graph and prints the resulting bundles.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the ideal bundle plan for an asset graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphio.Load(planGraphPath)
		if err != nil {
			return err
		}
		cfg, err := config.Load(planConfigPath)
		if err != nil {
			return err
		}

		cache, err := plancache.New(plancache.DefaultSize)
		if err != nil {
			return err
		}
		eng := engine.New(cache, log.Logger)
		result, err := eng.Plan(engine.PlanRequest{Graph: g, Config: cfg})
		if err != nil {
			return err
		}

		if jsonOutput {
			return printPlanJSON(cmd.OutOrStdout(), result.Plan)
		}
		printPlanTable(cmd.OutOrStdout(), result.Plan)
		stats := result.Plan.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d bundles (%d shared), %d bytes total\n",
			stats.BundleCount, stats.SharedCount, stats.TotalSize)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planGraphPath, "graph", "g", "", "path to the asset graph YAML (required)")
	planCmd.Flags().StringVarP(&planConfigPath, "config", "c", "", "path to the bundler config file")
	_ = planCmd.MarkFlagRequired("graph")
	rootCmd.AddCommand(planCmd)
}
