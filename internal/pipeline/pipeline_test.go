package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/extractor"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// fakeExtractor returns a canned record, or an error for documents whose
// name it is told to fail.
type fakeExtractor struct {
	fail map[string]bool
}

func (f *fakeExtractor) Extract(_ context.Context, doc extractor.Document, _ types.CustomerProfile) (*types.RawInvoice, error) {
	if f.fail[doc.Name] {
		return nil, &extractor.ExtractionError{Document: doc.Name, Err: fmt.Errorf("upstream unavailable")}
	}
	return &types.RawInvoice{
		ReferenceNo:  "INV-" + doc.Name,
		CustomerName: "Acme",
		LineItems: []types.RawLineItem{
			{SKU: "A1-X", BatchID: "b 1", Quantity: 3, UnitPrice: 10, Total: 30},
		},
	}, nil
}

func writeDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("doc bytes"), 0644))
	return path
}

func newProcessor(ex extractor.Extractor) *Processor {
	return NewProcessor(ex, types.ProfileStandard, nil, zap.NewNop().Sugar())
}

func TestProcessSuccess(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "inv.pdf")
	p := newProcessor(&fakeExtractor{})

	result := p.Process(context.Background(), path)
	require.NoError(t, result.Err)
	require.NotNil(t, result.Invoice)
	assert.Equal(t, "inv.pdf", result.Document)
	assert.Equal(t, "A1", result.Invoice.LineItems[0].SKU)
	assert.Empty(t, result.Findings)
	assert.NotEmpty(t, result.ID)
}

func TestProcessExtractionFailure(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "bad.pdf")
	p := newProcessor(&fakeExtractor{fail: map[string]bool{"bad.pdf": true}})

	result := p.Process(context.Background(), path)
	require.Error(t, result.Err)
	assert.Nil(t, result.Invoice)

	var exErr *extractor.ExtractionError
	assert.ErrorAs(t, result.Err, &exErr)
}

func TestProcessUnsupportedExtension(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "notes.txt")
	p := newProcessor(&fakeExtractor{})

	result := p.Process(context.Background(), path)
	assert.Error(t, result.Err)
}

func TestProcessMissingFile(t *testing.T) {
	p := newProcessor(&fakeExtractor{})
	result := p.Process(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, result.Err)
}

func TestSupportedDocument(t *testing.T) {
	assert.True(t, SupportedDocument("a.PDF"))
	assert.True(t, SupportedDocument("b.jpeg"))
	assert.False(t, SupportedDocument("c.txt"))
	assert.False(t, SupportedDocument("d"))
}

func TestStoreRecordsOutcomesIndependently(t *testing.T) {
	s := NewStore()
	s.Begin("1", "a.pdf")
	s.Begin("2", "b.pdf")

	inv := &types.InvoiceData{ReferenceNo: "INV-A"}
	s.Complete("1", inv)
	s.Fail("2", "upstream unavailable")

	statuses := s.Statuses()
	require.Len(t, statuses, 2)
	assert.Equal(t, types.StatusCompleted, statuses[0].Status)
	assert.Equal(t, types.StatusError, statuses[1].Status)
	assert.Equal(t, "upstream unavailable", statuses[1].Message)

	invoices := s.Invoices()
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-A", invoices[0].ReferenceNo)
}

func TestStoreConcurrentCompletions(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("%d", i)
		s.Begin(id, id+".pdf")
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Complete(id, &types.InvoiceData{ReferenceNo: id})
		}(id)
	}
	wg.Wait()

	assert.Len(t, s.Invoices(), 50)
	for _, st := range s.Statuses() {
		assert.Equal(t, types.StatusCompleted, st.Status)
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	s := NewStore()
	s.Begin("1", "a.pdf")
	s.Complete("1", &types.InvoiceData{
		ReferenceNo: "INV-A",
		LineItems:   []types.LineItem{{SKU: "A1", Quantity: 2, UnitPrice: 5, Total: 10}},
	})
	require.NoError(t, s.Save(path))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	require.Len(t, loaded.Invoices(), 1)
	assert.Equal(t, "INV-A", loaded.Invoices()[0].ReferenceNo)
}

func TestLoadSessionMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.Invoices())
}
