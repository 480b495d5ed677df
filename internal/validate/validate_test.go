package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

func TestInvoiceFlagsNonAlphanumericBatch(t *testing.T) {
	inv := &types.InvoiceData{
		LineItems: []types.LineItem{
			{SKU: "A1", BatchID: "LOT9"},
			{SKU: "A2", BatchID: "LOT-9"},
			{SKU: "A3", BatchID: ""},
		},
	}

	findings := Invoice(inv)
	require.Len(t, findings, 1)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Equal(t, 2, findings[0].Item)
	assert.Equal(t, "batchId", findings[0].Field)
	assert.Equal(t, "LOT-9", findings[0].Value)
}

func TestInvoiceCleanInvoiceHasNoFindings(t *testing.T) {
	inv := &types.InvoiceData{
		LineItems: []types.LineItem{{SKU: "A1", BatchID: "B1"}},
	}
	assert.Empty(t, Invoice(inv))
}
