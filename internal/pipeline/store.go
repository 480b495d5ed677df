// =============================================================================
// Invoice Automator - Session Store
// =============================================================================
//
// The Store holds the mutable session state: the invoice collection and
// the per-document status list. Documents complete concurrently and in
// arbitrary order, so every mutation goes through the store's single
// mutex: appends and by-id status updates are atomic, and no caller ever
// read-modify-writes across documents. Readers get copies.
//
// The store persists to a YAML session file so that a later `export` run
// can pick up what `process` produced.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// Store is the single writer for session state.
type Store struct {
	mu       sync.Mutex
	invoices []types.InvoiceData
	statuses []types.FileStatus
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Begin registers a document as accepted for processing and returns its
// status id.
func (s *Store) Begin(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses = append(s.statuses, types.FileStatus{
		ID:     id,
		Name:   name,
		Status: types.StatusProcessing,
	})
}

// Complete records a successful result: the invoice joins the session
// collection and the document's status flips to completed.
func (s *Store) Complete(id string, inv *types.InvoiceData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, *inv)
	for i := range s.statuses {
		if s.statuses[i].ID == id {
			s.statuses[i].Status = types.StatusCompleted
			s.statuses[i].Result = inv
			return
		}
	}
}

// Fail records a per-document failure. Sibling documents are unaffected.
func (s *Store) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.statuses {
		if s.statuses[i].ID == id {
			s.statuses[i].Status = types.StatusError
			s.statuses[i].Message = message
			return
		}
	}
}

// Invoices returns a copy of the session's invoice collection, in
// completion order.
func (s *Store) Invoices() []types.InvoiceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.InvoiceData(nil), s.invoices...)
}

// Statuses returns a copy of the per-document status list, in submission
// order.
func (s *Store) Statuses() []types.FileStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.FileStatus(nil), s.statuses...)
}

// =============================================================================
// SESSION PERSISTENCE
// =============================================================================

// sessionFile is the on-disk YAML shape.
type sessionFile struct {
	Invoices []types.InvoiceData `yaml:"invoices"`
}

// Save writes the session's invoices to path via temp file and rename.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	invoices := append([]types.InvoiceData(nil), s.invoices...)
	s.mu.Unlock()

	data, err := yaml.Marshal(sessionFile{Invoices: invoices})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// LoadSession reads previously processed invoices from path. A missing
// file yields an empty store.
func LoadSession(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var file sessionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &Store{invoices: file.Invoices}, nil
}
