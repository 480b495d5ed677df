// =============================================================================
// Invoice Automator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Invoice Automator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   invoicectl process       - Extract and normalize invoice documents from the input directory
//   invoicectl export        - Build the output workbook(s) from the last processed session
//   invoicectl customers     - Maintain the customer name-to-code directory
//   invoicectl mapping       - Inspect or reset the export column mapping schema
//   invoicectl version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/nadungimhanalk/invoice2csv-automator-V2/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
