package docxconv

import (
	"strconv"
	"time"
)

// Compile-time interface verification.
var _ Processor = (*Pipeline)(nil)

// Pipeline orchestrates extraction and validation per document and across
// a batch. It carries no per-batch state: each ProcessBatch call starts
// from a fresh error accumulator, so a Pipeline value is safe to share.
type Pipeline struct {
	Body      BodyPolicy
	Validator *Validator
}

// NewPipeline returns a Pipeline with the default body policy and rules.
func NewPipeline() *Pipeline {
	policy := DefaultBodyPolicy()
	return &Pipeline{
		Body:      policy,
		Validator: NewValidator(policy),
	}
}

// ProcessOne runs transcoding, structure extraction, per-column content
// extraction, and validation for a single document. A failing stage
// yields a nil record and one document-kind error; validation violations
// accompany the record without suppressing it.
func (p *Pipeline) ProcessOne(doc Document, columns []string) Outcome {
	markup, err := ToMarkup(doc.Content)
	if err != nil {
		return Outcome{Errors: []ProcessingError{documentError(doc.Index, err)}}
	}
	tree, err := ParseStructure(markup)
	if err != nil {
		return Outcome{Errors: []ProcessingError{documentError(doc.Index, err)}}
	}

	rec := NewRecord()
	rec.Set(ColumnID, strconv.Itoa(doc.Index+1))

	for _, column := range columns {
		if rec.Has(column) {
			continue
		}
		// Extended spellings such as 企画名 need no special lookup: heading
		// texts are canonicalized before comparison.
		rec.Set(column, ExtractColumn(tree, column, p.Body))
	}

	var errs []ProcessingError
	for _, violation := range p.Validator.Validate(rec) {
		errs = append(errs, ProcessingError{
			DocumentIndex: doc.Index,
			Kind:          ErrorKindValidation,
			Message:       violation,
			Timestamp:     time.Now().UTC(),
		})
	}

	return Outcome{Record: rec, Errors: errs}
}

// ProcessBatch processes documents in input order. Records preserve input
// order; failed documents contribute an error entry and no record. Empty
// input yields empty, non-nil slices.
func (p *Pipeline) ProcessBatch(docs []Document, columns []string) ([]*Record, []ProcessingError) {
	records := []*Record{}
	errs := []ProcessingError{}

	for _, doc := range docs {
		outcome := p.ProcessOne(doc, columns)
		errs = append(errs, outcome.Errors...)
		if outcome.Record != nil {
			records = append(records, outcome.Record)
		}
	}

	return records, errs
}

func documentError(index int, err error) ProcessingError {
	return ProcessingError{
		DocumentIndex: index,
		Kind:          ErrorKindDocument,
		Message:       ErrorMessage(err),
		Details:       ErrorCode(err),
		Timestamp:     time.Now().UTC(),
	}
}
