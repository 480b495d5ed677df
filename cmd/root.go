// =============================================================================
// Invoice Automator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (process, export, customers, mapping, version) hang off it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (invoicectl)
//   ├── processCmd   (invoicectl process)
//   ├── exportCmd    (invoicectl export)
//   ├── customersCmd (invoicectl customers import|list|add|remove|lookup)
//   ├── mappingCmd   (invoicectl mapping show|reset)
//   └── versionCmd   (invoicectl version)
//
// The root command owns the global flags (--config, --verbose), the .env
// seeding of the environment, and logger construction.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Invoice Automator - Turn invoice documents into clean spreadsheet exports",
	Long: `Invoice Automator ingests invoice images and PDFs, sends them to a
document-extraction model, normalizes the results (SKU/batch cleanup,
quantity reconciliation, customer code resolution), and exports them as
spreadsheets according to a user-editable column mapping.

Key Features:
  - Per-customer-profile sanitization of extracted line items
  - Quantity repair when quantity * unit price disagrees with the total
  - Customer name-to-code resolution with spreadsheet merge-import
  - Configuration-driven column mapping with a sensible default schema
  - Single-file or zip-archive downloads with collision-free names

Example Usage:
  invoicectl process                   # Extract and normalize everything in the input directory
  invoicectl process --export          # ...and write the download immediately
  invoicectl customers import master.xlsx
  invoicectl export`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Seed the environment from a .env file when present. Secrets such as
	// OPENAI_API_KEY live there, never in config.yaml.
	cobra.OnInitialize(func() {
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// newLogger builds the application logger. Verbose runs get the
// development config (debug level, human-readable output).
func newLogger() (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}
