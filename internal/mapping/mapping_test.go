package mapping

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

var testInvoice = types.InvoiceData{
	ReferenceNo:  "INV-42",
	CustomerName: "Acme",
	CustomerCode: "C100",
	Date:         "2026-08-01",
}

var testItem = types.LineItem{
	SKU:       "THC010",
	BatchID:   "LOT9",
	Quantity:  2.5,
	UnitPrice: 10,
	Total:     25,
}

func TestResolveInvoiceFields(t *testing.T) {
	f := types.MappingField{Source: types.SourceInvoice, Value: "referenceNo"}
	assert.Equal(t, "INV-42", Resolve(f, &testInvoice, &testItem))

	f.Value = "customerCode"
	assert.Equal(t, "C100", Resolve(f, &testInvoice, &testItem))
}

func TestResolveItemFields(t *testing.T) {
	f := types.MappingField{Source: types.SourceItem, Value: "sku"}
	assert.Equal(t, "THC010", Resolve(f, &testInvoice, &testItem))

	f.Value = "quantity"
	assert.Equal(t, "2.5", Resolve(f, &testInvoice, &testItem))

	f.Value = "unitPrice"
	assert.Equal(t, "10", Resolve(f, &testInvoice, &testItem))
}

func TestResolveStaticLiteral(t *testing.T) {
	f := types.MappingField{Source: types.SourceStatic, Value: "LKR"}
	assert.Equal(t, "LKR", Resolve(f, nil, nil))
}

func TestResolveUnknownKeyIsEmpty(t *testing.T) {
	f := types.MappingField{Source: types.SourceInvoice, Value: "nope"}
	assert.Equal(t, "", Resolve(f, &testInvoice, &testItem))

	f = types.MappingField{Source: types.SourceItem, Value: "nope"}
	assert.Equal(t, "", Resolve(f, &testInvoice, &testItem))

	f = types.MappingField{Source: "other", Value: "sku"}
	assert.Equal(t, "", Resolve(f, &testInvoice, &testItem))
}

func TestDefaultSchemaShape(t *testing.T) {
	fields := Default()
	require.Len(t, fields, 12)

	assert.Equal(t, "Order no", fields[0].Header)
	assert.Equal(t, types.SourceInvoice, fields[0].Source)
	assert.Equal(t, "Lot no.", fields[10].Header)
	assert.Equal(t, "Quantity2", fields[11].Header)
	assert.Equal(t, "quantity", fields[11].Value)

	for _, f := range fields {
		assert.NotEmpty(t, f.ID)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")

	fields := []types.MappingField{
		{ID: "a", Header: "Ref", Source: types.SourceInvoice, Value: "referenceNo"},
		{ID: "b", Header: "Fixed", Source: types.SourceStatic, Value: "X"},
	}
	require.NoError(t, Save(path, fields))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, fields, loaded)
}

func TestLoadMissingFileYieldsDefault(t *testing.T) {
	loaded, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Len(t, loaded, 12)
}

func TestLoadBackfillsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, Save(path, []types.MappingField{
		{Header: "Ref", Source: types.SourceInvoice, Value: "referenceNo"},
	}))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.NotEmpty(t, loaded[0].ID)
}
