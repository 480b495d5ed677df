// =============================================================================
// Invoice Automator - Export Command
// =============================================================================
//
// This file defines the 'export' command, which flattens the session's
// processed invoices per the mapping schema and writes the download:
// one xlsx for a single invoice, a date-stamped zip of per-invoice xlsx
// files for a batch.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/config"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/export"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/mapping"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/pipeline"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/pkg/files"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Flatten processed invoices and write the download",
	Long: `The export command reads the invoices produced by the last 'process'
run, flattens them into spreadsheet rows according to the mapping schema
(one row per invoice line item), and writes the result to the output
directory.

A single invoice becomes one .xlsx named after its reference number.
Several invoices become one .xlsx each, bundled into a zip archive named
with today's date. Reference numbers are sanitized for use as filenames
and name collisions within a batch get a counter suffix.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := pipeline.LoadSession(cfg.SessionPath())
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	invoices := store.Invoices()
	if len(invoices) == 0 {
		fmt.Println("No processed invoices to export. Run 'invoicectl process' first.")
		return nil
	}

	schema, err := mapping.Load(cfg.MappingPath())
	if err != nil {
		return fmt.Errorf("failed to load mapping schema: %w", err)
	}

	download, err := export.BuildDownload(invoices, schema, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build download: %w", err)
	}

	written, err := files.WriteUnique(cfg.OutputDir, download.Filename, download.Data)
	if err != nil {
		return err
	}

	fmt.Printf("Export written to %s (%d invoice(s))\n", written, len(invoices))
	if download.Archive {
		for _, entry := range download.Entries {
			fmt.Printf("  - %s\n", entry)
		}
	}

	return nil
}
