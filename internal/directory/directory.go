// =============================================================================
// Invoice Automator - Customer Directory
// =============================================================================
//
// This module maintains the mapping from customer name to customer code.
// The directory is consulted during normalization (to resolve a code from
// the extracted customer name) and maintained by the user through manual
// add/remove and merge-import from a customer master spreadsheet.
//
// MATCHING:
//   Names are keyed case-insensitively after trimming. The directory holds
//   at most one active code per distinct name; imports merge, never
//   duplicate.
//
// PERSISTENCE:
//   The directory is one of the two persisted configuration blobs. It is
//   stored as YAML in the data directory, read at startup (an absent file
//   yields an empty directory) and rewritten on every explicit save.
//
// =============================================================================

package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/closestmatch"
	"gopkg.in/yaml.v3"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// =============================================================================
// DIRECTORY
// =============================================================================

// Directory is the in-memory customer-name-to-code lookup table.
// Entry order is user-visible (list output, persisted file) and is
// preserved across merges: untouched entries keep their position, new
// entries are appended in import order.
type Directory struct {
	entries []types.CustomerMasterEntry
}

// New creates a directory from the given entries.
func New(entries []types.CustomerMasterEntry) *Directory {
	return &Directory{entries: append([]types.CustomerMasterEntry(nil), entries...)}
}

// Entries returns a copy of the directory's entries in order.
func (d *Directory) Entries() []types.CustomerMasterEntry {
	return append([]types.CustomerMasterEntry(nil), d.entries...)
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// key normalizes a customer name for matching.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup resolves a customer name to its code. The match is exact on the
// trimmed, case-folded name.
func (d *Directory) Lookup(name string) (string, bool) {
	k := key(name)
	if k == "" {
		return "", false
	}
	for _, e := range d.entries {
		if key(e.CustomerName) == k {
			return e.CustomerCode, true
		}
	}
	return "", false
}

// Add inserts or updates a single entry. It follows merge semantics: an
// existing entry with the same name gets its code overwritten in place.
func (d *Directory) Add(name, code string) {
	result := Merge(d.entries, []types.CustomerMasterEntry{{
		CustomerName: strings.TrimSpace(name),
		CustomerCode: strings.TrimSpace(code),
	}})
	d.entries = result.Merged
}

// Remove deletes the entry matching the given name. It reports whether an
// entry was removed.
func (d *Directory) Remove(name string) bool {
	k := key(name)
	for i, e := range d.entries {
		if key(e.CustomerName) == k {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return true
		}
	}
	return false
}

// =============================================================================
// MERGE IMPORT
// =============================================================================

// MergeResult reports the outcome of a merge-import.
type MergeResult struct {
	// Merged is the resulting entry list.
	Merged []types.CustomerMasterEntry

	// Added is the number of imported entries that were new.
	Added int

	// Updated is the number of existing entries whose code changed.
	Updated int
}

// Merge reconciles an imported name/code table with an existing entry list
// without data loss.
//
// For each imported entry:
//   - a case-insensitive name match with a differing code overwrites the
//     code in place and counts as updated;
//   - a match with an identical code is a no-op;
//   - no match appends the entry and counts as added.
func Merge(existing, imported []types.CustomerMasterEntry) MergeResult {
	merged := append([]types.CustomerMasterEntry(nil), existing...)
	result := MergeResult{}

	for _, in := range imported {
		found := false
		for i := range merged {
			if key(merged[i].CustomerName) == key(in.CustomerName) {
				found = true
				if merged[i].CustomerCode != in.CustomerCode {
					merged[i].CustomerCode = in.CustomerCode
					result.Updated++
				}
				break
			}
		}
		if !found {
			merged = append(merged, in)
			result.Added++
		}
	}

	result.Merged = merged
	return result
}

// MergeImport merges imported entries into the directory and reports
// added/updated counts.
func (d *Directory) MergeImport(imported []types.CustomerMasterEntry) MergeResult {
	result := Merge(d.entries, imported)
	d.entries = result.Merged
	return result
}

// =============================================================================
// NAME SUGGESTION
// =============================================================================

// Suggest returns the directory name closest to the given one. It is an
// advisory helper for review output when an exact lookup misses; it is
// never used to resolve a customer code. Returns "" for an empty
// directory or a blank name.
func (d *Directory) Suggest(name string) string {
	if len(d.entries) == 0 || key(name) == "" {
		return ""
	}

	byKey := make(map[string]string, len(d.entries))
	keys := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		k := key(e.CustomerName)
		if _, seen := byKey[k]; !seen {
			byKey[k] = e.CustomerName
			keys = append(keys, k)
		}
	}

	cm := closestmatch.New(keys, []int{2, 3, 4})
	closest := cm.Closest(key(name))
	return byKey[closest]
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// directoryFile is the on-disk YAML shape.
type directoryFile struct {
	Customers []types.CustomerMasterEntry `yaml:"customers"`
}

// Load reads a persisted directory from path. A missing file is not an
// error; it yields an empty directory.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("failed to read customer directory: %w", err)
	}

	var file directoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse customer directory: %w", err)
	}

	return New(file.Customers), nil
}

// Save writes the directory to path. The write goes through a temp file
// and rename so a crash mid-write cannot corrupt the persisted blob.
func (d *Directory) Save(path string) error {
	data, err := yaml.Marshal(directoryFile{Customers: d.entries})
	if err != nil {
		return fmt.Errorf("failed to encode customer directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write customer directory: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace customer directory: %w", err)
	}

	return nil
}
