package docxconv

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Well-known canonical column names.
const (
	ColumnID         = "番号"
	ColumnName       = "名前"
	ColumnDepartment = "部署"
	ColumnProject    = "企画"
	ColumnDeadline   = "締切"
	ColumnCharLimit  = "文字制限"
	ColumnBody       = "原稿"
)

// Document represents a single input document in a batch. It holds the
// already-extracted plain text of the source file; reading the source
// binary format is a TextExtractor's responsibility.
type Document struct {
	// Zero-based position in the batch. The record identifier column is
	// seeded with Index+1.
	Index int

	// Plain text content of the document.
	Content string

	// Path of the source file, if any. Informational only.
	Path string
}

// ContentHash returns the xxHash of the document content as a hex string.
func (d *Document) ContentHash() string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(d.Content))
	return hex.EncodeToString(b)
}

// Record is an ordered mapping from canonical column name to extracted
// value. Column order follows first insertion.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores a value under a column. Setting an existing column replaces
// its value without changing column order.
func (r *Record) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value stored under a column.
func (r *Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Has reports whether a column is present in the record.
func (r *Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in insertion order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the record.
func (r *Record) Len() int {
	return len(r.columns)
}

// ErrorKind classifies a ProcessingError.
type ErrorKind string

// ErrorKind values.
const (
	// ErrorKindValidation marks an advisory rule violation. The record is
	// still emitted with the offending value intact.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindDocument marks a fatal per-document failure. The document
	// contributes no record; the batch continues.
	ErrorKindDocument ErrorKind = "document"
)

// ProcessingError describes a failure or rule violation observed while
// processing a single document. Errors are batch-scoped: each ProcessBatch
// call starts from an empty list.
type ProcessingError struct {
	DocumentIndex int       `json:"documentIndex"`
	Kind          ErrorKind `json:"kind"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Outcome is the result of processing one document: either a record
// (possibly accompanied by advisory validation errors) or a nil record
// with a single document-kind error.
type Outcome struct {
	Record *Record
	Errors []ProcessingError
}

// Processor runs the extraction pipeline over documents.
type Processor interface {
	// ProcessOne processes a single document against the given canonical
	// column list.
	ProcessOne(doc Document, columns []string) Outcome

	// ProcessBatch processes documents in input order and aggregates
	// records and errors. An empty input yields empty, non-nil slices.
	ProcessBatch(docs []Document, columns []string) ([]*Record, []ProcessingError)
}

// TextExtractor extracts plain text from a source document file.
type TextExtractor interface {
	// ExtractText reads the file at path and returns its plain text.
	// Table content is flattened to "|"-separated lines.
	ExtractText(path string) (string, error)
}

// RecordExporter renders a batch result for external consumption.
type RecordExporter interface {
	// Export renders records in the given column order. Rows whose
	// document produced errors are visually marked.
	Export(records []*Record, columns []string, errs []ProcessingError) ([]byte, error)
}

// Batch represents one persisted pipeline run.
type Batch struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Columns       []string  `json:"columns"`
	DocumentCount int       `json:"documentCount"`
	RecordCount   int       `json:"recordCount"`
	ErrorCount    int       `json:"errorCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate returns an error if the batch contains invalid fields.
func (b *Batch) Validate() error {
	if b.Name == "" {
		return Errorf(EINVALID, "batch name required")
	}
	if len(b.Columns) == 0 {
		return Errorf(EINVALID, "batch columns required")
	}
	return nil
}

// BatchRecord is one stored record of a persisted batch.
type BatchRecord struct {
	BatchID     string            `json:"batchId"`
	Position    int               `json:"position"`
	ContentHash string            `json:"contentHash"`
	Values      map[string]string `json:"values"`
}

// BatchFilter represents a filter for FindBatches.
type BatchFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BatchService persists batch runs so past results can be reloaded.
type BatchService interface {
	// CreateBatch stores a batch together with its records and errors.
	CreateBatch(ctx context.Context, batch *Batch, records []*Record, docs []Document, errs []ProcessingError) error

	// FindBatchByID retrieves a batch by ID.
	// Returns ENOTFOUND if the batch does not exist.
	FindBatchByID(ctx context.Context, id string) (*Batch, error)

	// FindBatches retrieves batches matching the filter, newest first.
	FindBatches(ctx context.Context, filter BatchFilter) ([]*Batch, error)

	// FindBatchRecords retrieves the stored records of a batch in position
	// order.
	FindBatchRecords(ctx context.Context, batchID string) ([]*BatchRecord, error)

	// FindBatchErrors retrieves the stored processing errors of a batch in
	// document order.
	FindBatchErrors(ctx context.Context, batchID string) ([]ProcessingError, error)

	// DeleteBatch permanently removes a batch and its records.
	// Returns ENOTFOUND if the batch does not exist.
	DeleteBatch(ctx context.Context, id string) error
}
