package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/directory"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

func TestRecordEndToEndStandardProfile(t *testing.T) {
	raw := &types.RawInvoice{
		CustomerName: "Acme",
		LineItems: []types.RawLineItem{
			{SKU: "A1-X", BatchID: "b 1", Quantity: 3, UnitPrice: 10, Total: 30},
		},
	}

	inv, err := Record(raw, types.ProfileStandard, nil)
	require.NoError(t, err)
	require.Len(t, inv.LineItems, 1)

	item := inv.LineItems[0]
	assert.Equal(t, "A1", item.SKU)
	assert.Equal(t, "b1", item.BatchID)
	assert.Equal(t, 3.0, item.Quantity, "consistent total leaves quantity unchanged")
	assert.Equal(t, 10.0, item.UnitPrice)
	assert.Equal(t, 30.0, item.Total)
}

func TestRecordRepairsInconsistentQuantity(t *testing.T) {
	raw := &types.RawInvoice{
		LineItems: []types.RawLineItem{
			{SKU: "A1", Quantity: 5, UnitPrice: 10, Total: 1000},
		},
	}

	inv, err := Record(raw, types.ProfileStandard, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, inv.LineItems[0].Quantity)
}

func TestRecordCombinedProfileDirectoryOverwritesCode(t *testing.T) {
	dir := directory.New([]types.CustomerMasterEntry{
		{CustomerName: "Acme Pharma", CustomerCode: "C-DIR"},
	})
	raw := &types.RawInvoice{
		CustomerName: " acme pharma ",
		CustomerCode: "C-EXTRACTED",
	}

	inv, err := Record(raw, types.ProfileCombined, dir)
	require.NoError(t, err)
	assert.Equal(t, "C-DIR", inv.CustomerCode)
}

func TestRecordCombinedProfileNoMatchKeepsExtractorCode(t *testing.T) {
	dir := directory.New([]types.CustomerMasterEntry{
		{CustomerName: "Someone Else", CustomerCode: "C9"},
	})
	raw := &types.RawInvoice{CustomerName: "Acme", CustomerCode: "C-EXTRACTED"}

	inv, err := Record(raw, types.ProfileCombined, dir)
	require.NoError(t, err)
	assert.Equal(t, "C-EXTRACTED", inv.CustomerCode)
}

func TestRecordStandardProfileSkipsDirectory(t *testing.T) {
	dir := directory.New([]types.CustomerMasterEntry{
		{CustomerName: "Acme", CustomerCode: "C-DIR"},
	})
	raw := &types.RawInvoice{CustomerName: "Acme", CustomerCode: "C-EXTRACTED"}

	inv, err := Record(raw, types.ProfileStandard, dir)
	require.NoError(t, err)
	assert.Equal(t, "C-EXTRACTED", inv.CustomerCode)
}

func TestRecordCombinedProfileSplitsStockColumn(t *testing.T) {
	raw := &types.RawInvoice{
		LineItems: []types.RawLineItem{
			{SKU: "ABC123*LOT9", Quantity: 1, UnitPrice: 5, Total: 5},
		},
	}

	inv, err := Record(raw, types.ProfileCombined, nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", inv.LineItems[0].SKU)
	assert.Equal(t, "LOT9", inv.LineItems[0].BatchID)
}

func TestRecordCoercesMissingFields(t *testing.T) {
	raw := &types.RawInvoice{
		LineItems: []types.RawLineItem{{}},
	}

	inv, err := Record(raw, types.ProfileStandard, nil)
	require.NoError(t, err)
	assert.Equal(t, "", inv.ReferenceNo)
	assert.Equal(t, "", inv.CustomerName)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "", inv.LineItems[0].SKU)
	assert.Equal(t, 0.0, inv.LineItems[0].Quantity)
}

func TestRecordNilRawFails(t *testing.T) {
	_, err := Record(nil, types.ProfileStandard, nil)
	assert.Error(t, err)
}
