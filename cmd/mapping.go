// =============================================================================
// Invoice Automator - Mapping Command
// =============================================================================
//
// This file defines the 'mapping' command group for inspecting and resetting
// the persisted column mapping schema used by export:
//
//   invoicectl mapping show   - Print the current schema, one column per line
//   invoicectl mapping reset  - Replace the persisted schema with the default
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/config"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/mapping"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Inspect or reset the export column mapping schema",
}

var mappingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current mapping schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fields, err := mapping.Load(cfg.MappingPath())
		if err != nil {
			return fmt.Errorf("failed to load mapping schema: %w", err)
		}

		fmt.Printf("Mapping schema (%d columns):\n", len(fields))
		for i, f := range fields {
			fmt.Printf("  %2d. %-20s %s\n", i+1, f.Header, describeSource(f))
		}
		return nil
	},
}

var mappingResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the persisted schema with the default",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fields := mapping.Default()
		if err := mapping.Save(cfg.MappingPath(), fields); err != nil {
			return fmt.Errorf("failed to save mapping schema: %w", err)
		}

		fmt.Printf("Mapping schema reset to %d default columns.\n", len(fields))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mappingCmd)
	mappingCmd.AddCommand(mappingShowCmd)
	mappingCmd.AddCommand(mappingResetCmd)
}

func describeSource(f types.MappingField) string {
	switch f.Source {
	case types.SourceInvoice:
		return fmt.Sprintf("invoice.%s", f.Value)
	case types.SourceItem:
		return fmt.Sprintf("item.%s", f.Value)
	case types.SourceStatic:
		return fmt.Sprintf("static %q", f.Value)
	default:
		return string(f.Source)
	}
}
