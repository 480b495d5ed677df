// =============================================================================
// Invoice Automator - Record Normalizer
// =============================================================================
//
// This module turns a raw extracted record into a validated invoice
// record. It is the orchestration point for the three cleanup concerns:
//
//   1. Per-item sanitization of SKU and batch id (sanitize package).
//   2. Quantity reconciliation against unit price and total (reconcile).
//   3. Customer code resolution against the directory.
//
// The normalizer is lenient by design: the extraction collaborator's
// output is best-effort, so missing optional fields coerce to empty
// strings and zeros rather than failing. The only error path is a raw
// record with no usable shape at all.
//
// =============================================================================

package normalize

import (
	"fmt"
	"strings"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/directory"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/reconcile"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/sanitize"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// Record normalizes one raw extracted record under the given profile.
//
// For every raw line item the SKU/batch pair is sanitized and the quantity
// reconciled; description, unit price and total pass through unchanged.
// For ProfileCombined, a directory match on the extracted customer name
// overwrites the customer code; the directory takes precedence over the
// extractor for that profile. Other profiles keep the extractor-supplied
// code as-is.
//
// dir may be nil when no directory is loaded; lookup is then skipped.
func Record(raw *types.RawInvoice, profile types.CustomerProfile, dir *directory.Directory) (*types.InvoiceData, error) {
	if raw == nil {
		return nil, fmt.Errorf("extraction returned no record")
	}

	inv := &types.InvoiceData{
		ReferenceNo:  strings.TrimSpace(raw.ReferenceNo),
		CustomerName: strings.TrimSpace(raw.CustomerName),
		CustomerCode: strings.TrimSpace(raw.CustomerCode),
		Date:         strings.TrimSpace(raw.Date),
	}

	for _, it := range raw.LineItems {
		cleaned := sanitize.Clean(it.SKU, it.BatchID, profile)
		inv.LineItems = append(inv.LineItems, types.LineItem{
			SKU:         cleaned.SKU,
			Description: strings.TrimSpace(it.Description),
			BatchID:     cleaned.BatchID,
			Quantity:    reconcile.Quantity(it.Quantity, it.UnitPrice, it.Total),
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}

	if profile == types.ProfileCombined && inv.CustomerName != "" && dir != nil {
		if code, ok := dir.Lookup(inv.CustomerName); ok {
			inv.CustomerCode = code
		}
	}

	return inv, nil
}
