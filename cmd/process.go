// =============================================================================
// Invoice Automator - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the extraction and
// normalization pipeline over the input directory.
//
// COMMAND USAGE:
//   invoicectl process [flags]
//
// FLAGS:
//   --file      : Process a single document instead of scanning the input directory
//   --profile   : Override the configured customer profile (standard|combined)
//   --export    : Write the export download immediately after processing
//
// PROCESSING PIPELINE:
//   1. Load configuration, customer directory and (if exporting) the
//      mapping schema
//   2. Discover documents in the input directory
//   3. For each document (concurrently, bounded by max_concurrency):
//      a. Call the extraction collaborator
//      b. Normalize the raw record
//      c. Run the review checks
//   4. Record per-document outcomes; one failure never affects siblings
//   5. Persist the session and print a summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/config"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/directory"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/export"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/extractor"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/mapping"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/pipeline"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/pkg/files"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// singleDocument is a path to one document to process instead of scanning
// the input directory.
var singleDocument string

// profileOverride overrides the configured customer profile.
var profileOverride string

// exportAfter writes the export download immediately after processing.
var exportAfter bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract and normalize invoice documents",
	Long: `The process command scans the input directory for invoice documents
(pdf, png, jpg, jpeg, webp), submits each one to the extraction model,
and normalizes the results: SKU and batch cleanup per the customer
profile, quantity reconciliation, and customer code resolution against
the directory.

Documents are processed concurrently. Each document is independent: a
failed extraction is reported for that document only and never aborts
the others. There is no automatic retry; rerun process to resubmit.

Processed invoices are saved to the session file so a later 'export'
run can package them.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&singleDocument,
		"file",
		"",
		"Process a single document instead of scanning the input directory",
	)

	processCmd.Flags().StringVar(
		&profileOverride,
		"profile",
		"",
		"Override the configured customer profile (standard|combined)",
	)

	processCmd.Flags().BoolVar(
		&exportAfter,
		"export",
		false,
		"Write the export download immediately after processing",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess() error {
	startTime := time.Now()

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION AND PERSISTED STATE
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir, err := directory.Load(cfg.CustomersPath())
	if err != nil {
		return fmt.Errorf("failed to load customer directory: %w", err)
	}

	profile := types.ParseProfile(cfg.CustomerProfile)
	if profileOverride != "" {
		profile = types.ParseProfile(profileOverride)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; add it to the environment or a .env file")
	}

	log.Infow("configuration loaded",
		"profile", profile,
		"customers", dir.Len(),
		"model", cfg.Model,
	)

	// =========================================================================
	// STEP 2: DISCOVER INPUT DOCUMENTS
	// =========================================================================

	var documents []string
	if singleDocument != "" {
		documents = []string{singleDocument}
	} else {
		documents, err = files.Discover(cfg.InputDir, pipeline.SupportedDocument)
		if err != nil {
			return fmt.Errorf("failed to discover documents: %w", err)
		}
	}

	if len(documents) == 0 {
		fmt.Println("No invoice documents found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d document(s) to process\n", len(documents))

	// =========================================================================
	// STEP 3: PROCESS DOCUMENTS CONCURRENTLY
	// =========================================================================
	// Each document runs in its own goroutine, bounded by a semaphore.
	// Results flow through a buffered channel; completions are collected
	// independently, so a slow or failing document never blocks the rest.

	processor := pipeline.NewProcessor(
		extractor.New(apiKey, cfg.Model, log),
		profile,
		dir,
		log,
	)
	store := pipeline.NewStore()

	ctx := context.Background()
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	var wg sync.WaitGroup
	results := make(chan pipeline.Result, len(documents))
	semaphore := make(chan struct{}, cfg.MaxConcurrency)

	for _, doc := range documents {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			docCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			result := processor.Process(docCtx, path)
			if result.Err != nil {
				store.Begin(result.ID, result.Document)
				store.Fail(result.ID, result.Err.Error())
			} else {
				store.Begin(result.ID, result.Document)
				store.Complete(result.ID, result.Invoice)
			}
			results <- result
		}(doc)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	var successCount, errorCount int

	for result := range results {
		if result.Err != nil {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", result.Document, result.Err)
			continue
		}

		successCount++
		fmt.Printf("  ✓ %s -> %s (%d line items)\n",
			result.Document, result.Invoice.ReferenceNo, len(result.Invoice.LineItems))

		for _, finding := range result.Findings {
			fmt.Printf("      %s\n", finding)
		}

		// Help the operator spot near-miss customer names when the
		// directory lookup found nothing.
		if profile == types.ProfileCombined && result.Invoice.CustomerCode == "" {
			if suggestion := dir.Suggest(result.Invoice.CustomerName); suggestion != "" {
				fmt.Printf("      customer %q not in directory; closest entry: %q\n",
					result.Invoice.CustomerName, suggestion)
			}
		}
	}

	// =========================================================================
	// STEP 5: PERSIST SESSION AND PRINT SUMMARY
	// =========================================================================

	if err := store.Save(cfg.SessionPath()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total documents: %d\n", len(documents))
	fmt.Printf("Successful:      %d\n", successCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if !exportAfter {
		return nil
	}

	// =========================================================================
	// OPTIONAL: WRITE THE EXPORT DOWNLOAD
	// =========================================================================

	invoices := store.Invoices()
	if len(invoices) == 0 {
		fmt.Println("\nNothing to export.")
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

	fmt.Printf("\nExport written to %s\n", written)
	if download.Archive {
		for _, entry := range download.Entries {
			fmt.Printf("  - %s\n", entry)
		}
	}
	return nil
}
