// =============================================================================
// Invoice Automator - Document Pipeline
// =============================================================================
//
// This module processes one submitted document end to end:
//
//   1. Read the document bytes and detect the media type.
//   2. Call the extraction collaborator.
//   3. Normalize the raw record (sanitize, reconcile, resolve customer).
//   4. Run the non-fatal review checks.
//
// Each document is independent: documents in a batch are dispatched
// concurrently by the caller, a failure is converted into an error Result
// at this boundary, and nothing here cancels or affects sibling
// documents. There is no automatic retry; a failed document is simply
// reported and can be resubmitted.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/directory"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/extractor"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/normalize"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/validate"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of processing a single document.
type Result struct {
	// ID is the processing id assigned when the document was accepted.
	ID string

	// Document is the source file name.
	Document string

	// Invoice is the normalized record. Nil when processing failed.
	Invoice *types.InvoiceData

	// Findings are the non-fatal review checks for the invoice.
	Findings []validate.Finding

	// Err is the failure, if any. A set Err means no Invoice.
	Err error

	// Elapsed is the time taken end to end.
	Elapsed time.Duration
}

// =============================================================================
// MEDIA TYPES
// =============================================================================

// mimeByExt maps the accepted document extensions onto media types.
// Anything else is rejected before reaching the collaborator.
var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// SupportedDocument reports whether the file extension is one the
// pipeline accepts.
func SupportedDocument(path string) bool {
	_, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs the per-document pipeline. It is safe for concurrent use
// by multiple goroutines; all mutable session state lives in the Store.
type Processor struct {
	extractor extractor.Extractor
	profile   types.CustomerProfile
	dir       *directory.Directory
	log       *zap.SugaredLogger
}

// NewProcessor assembles a processor. dir may be nil when no customer
// directory is configured.
func NewProcessor(ex extractor.Extractor, profile types.CustomerProfile, dir *directory.Directory, log *zap.SugaredLogger) *Processor {
	return &Processor{
		extractor: ex,
		profile:   profile,
		dir:       dir,
		log:       log,
	}
}

// Process runs the pipeline for one document on disk. Failures come back
// inside the Result, never as a panic or a propagated error: the document
// boundary is where errors become status records.
func (p *Processor) Process(ctx context.Context, path string) Result {
	start := time.Now()
	result := Result{
		ID:       uuid.New().String(),
		Document: filepath.Base(path),
	}

	mime, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		result.Err = fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
		result.Elapsed = time.Since(start)
		return result
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to read document: %w", err)
		result.Elapsed = time.Since(start)
		return result
	}

	raw, err := p.extractor.Extract(ctx, extractor.Document{
		Name:     result.Document,
		Data:     data,
		MIMEType: mime,
	}, p.profile)
	if err != nil {
		result.Err = err
		result.Elapsed = time.Since(start)
		return result
	}

	inv, err := normalize.Record(raw, p.profile, p.dir)
	if err != nil {
		result.Err = &extractor.ExtractionError{Document: result.Document, Err: err}
		result.Elapsed = time.Since(start)
		return result
	}

	result.Invoice = inv
	result.Findings = validate.Invoice(inv)
	result.Elapsed = time.Since(start)

	p.log.Infow("document processed",
		"document", result.Document,
		"reference", inv.ReferenceNo,
		"lineItems", len(inv.LineItems),
		"findings", len(result.Findings),
		"elapsed", result.Elapsed,
	)
	return result
}
