// Package store defines the document index persistence types and the SQLite
// implementation behind them. The store owns document identity and all
// structured attributes; consumers (scanner, search engine, service layer)
// depend on its methods rather than on SQL.
package store

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested document, note, link or favorite
	// does not exist. Callers should check for this to distinguish missing
	// data from other errors.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned for uniqueness violations: duplicate scan
	// root, duplicate favorite name, duplicate link between the same pair.
	ErrAlreadyExists = errors.New("already exists")
)

// Document represents one indexed file and its metadata record. Identity is
// the filepath; the integer id is stable for the lifetime of that path in
// the index. All structured metadata fields are optional - indexing never
// requires them.
type Document struct {
	ID                      int64  // Database primary key
	Filename                string // Base name of the file
	Filepath                string // Absolute path, unique - the real identity
	Manufacturer            string
	DeviceModel             string
	DocumentType            string
	Keywords                string
	LastModified            int64 // Source filesystem mtime (unix seconds)
	RevisionNumber          string
	RevisionDate            string
	Status                  string
	ApplicableModels        string
	AssociatedTestEquipment string
}

// DocJSON is the API-friendly representation of a Document with empty
// optional fields omitted.
type DocJSON struct {
	ID                      int64  `json:"id"`
	Filename                string `json:"filename"`
	Filepath                string `json:"filepath"`
	Manufacturer            string `json:"manufacturer,omitempty"`
	DeviceModel             string `json:"device_model,omitempty"`
	DocumentType            string `json:"document_type,omitempty"`
	Keywords                string `json:"keywords,omitempty"`
	LastModified            string `json:"last_modified"`
	RevisionNumber          string `json:"revision_number,omitempty"`
	RevisionDate            string `json:"revision_date,omitempty"`
	Status                  string `json:"status,omitempty"`
	ApplicableModels        string `json:"applicable_models,omitempty"`
	AssociatedTestEquipment string `json:"associated_test_equipment,omitempty"`
}

// ToJSON converts a Document to its API representation with an RFC3339
// modification timestamp.
func (d *Document) ToJSON() DocJSON {
	return DocJSON{
		ID:                      d.ID,
		Filename:                d.Filename,
		Filepath:                d.Filepath,
		Manufacturer:            d.Manufacturer,
		DeviceModel:             d.DeviceModel,
		DocumentType:            d.DocumentType,
		Keywords:                d.Keywords,
		LastModified:            time.Unix(d.LastModified, 0).UTC().Format(time.RFC3339),
		RevisionNumber:          d.RevisionNumber,
		RevisionDate:            d.RevisionDate,
		Status:                  d.Status,
		ApplicableModels:        d.ApplicableModels,
		AssociatedTestEquipment: d.AssociatedTestEquipment,
	}
}

// Fields carries the observed filesystem state and heuristically extracted
// metadata for one file during a scan. Heuristic fields are merged with
// preserve-if-empty semantics: a rescan never erases curated metadata.
type Fields struct {
	Filepath     string
	Filename     string
	LastModified int64
	Manufacturer string
	DeviceModel  string
	DocumentType string
	Keywords     string
}

// FieldEdits is an explicit user edit of metadata fields. Nil pointers leave
// a field untouched; non-nil pointers overwrite, including to empty. This is
// the only path that may clear or replace a non-empty stored value.
type FieldEdits struct {
	Manufacturer            *string
	DeviceModel             *string
	DocumentType            *string
	Keywords                *string
	RevisionNumber          *string
	RevisionDate            *string
	Status                  *string
	ApplicableModels        *string
	AssociatedTestEquipment *string
}

// Empty reports whether the edit would change nothing.
func (e FieldEdits) Empty() bool {
	return e.Manufacturer == nil && e.DeviceModel == nil && e.DocumentType == nil &&
		e.Keywords == nil && e.RevisionNumber == nil && e.RevisionDate == nil &&
		e.Status == nil && e.ApplicableModels == nil && e.AssociatedTestEquipment == nil
}

// Page is one page-equivalent unit of extracted text. Paginated formats use
// their real 0-indexed page numbers; unpaginated formats use a single
// synthetic page 0.
type Page struct {
	Number int
	Text   string
}

// BaselineEntry is the diff baseline for one indexed path: what the scanner
// compares the filesystem against.
type BaselineEntry struct {
	ID           int64
	LastModified int64
}

// ScanRoot is a user-configured directory tree to be walked for indexing.
// DefaultManufacturer, when set, is applied to newly created documents whose
// heuristic extraction found no manufacturer.
type ScanRoot struct {
	ID                  int64  `json:"id"`
	Path                string `json:"path"`
	DefaultManufacturer string `json:"default_manufacturer,omitempty"`
}

// Link is a directed edge between two documents with an optional free-text
// description. The ordered pair is unique; self-links are rejected.
type Link struct {
	ID          int64  `json:"id"`
	SourceID    int64  `json:"source_id"`
	TargetID    int64  `json:"target_id"`
	Description string `json:"description,omitempty"`
}

// Note belongs to one document, optionally anchored to a page.
type Note struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"document_id"`
	PageNumber *int   `json:"page_number,omitempty"`
	Text       string `json:"text"`
	CreatedAt  int64  `json:"created_at"`
}

// Favorite is a named bookmark pointing at a document page.
type Favorite struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DocumentID int64  `json:"document_id"`
	PageNumber int    `json:"page_number"`
}

// Snippet is a short marked excerpt of matched text with the page it was
// taken from, produced by the full-text index for search result display.
type Snippet struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

// RankedMatch pairs a document id with its best full-text relevance rank.
// Lower rank means more relevant; the value is a relative ordering scalar
// from FTS5, not a normalised score.
type RankedMatch struct {
	DocID int64
	Rank  float64
}

// Stats provides aggregate index statistics for operational visibility.
type Stats struct {
	Documents int64 `json:"documents"`
	Pages     int64 `json:"pages"` // full-text entries
	ScanRoots int64 `json:"scan_roots"`
	Links     int64 `json:"links"`
	Notes     int64 `json:"notes"`
	Favorites int64 `json:"favorites"`
	OldestDoc int64 `json:"oldest_doc"` // unix mtime of least recently modified document
	NewestDoc int64 `json:"newest_doc"` // unix mtime of most recently modified document
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
