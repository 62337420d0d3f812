// Package mock provides function-field mock implementations of docxconv
// interfaces for testing.
package mock

import (
	"context"

	docxconv "github.com/yshk0402/docx-converter"
)

var _ docxconv.Processor = (*Processor)(nil)

// Processor is a mock implementation of docxconv.Processor.
type Processor struct {
	ProcessOneFn   func(doc docxconv.Document, columns []string) docxconv.Outcome
	ProcessBatchFn func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError)
}

func (p *Processor) ProcessOne(doc docxconv.Document, columns []string) docxconv.Outcome {
	return p.ProcessOneFn(doc, columns)
}

func (p *Processor) ProcessBatch(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
	return p.ProcessBatchFn(docs, columns)
}

var _ docxconv.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of docxconv.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(path string) (string, error)
}

func (e *TextExtractor) ExtractText(path string) (string, error) {
	return e.ExtractTextFn(path)
}

var _ docxconv.RecordExporter = (*RecordExporter)(nil)

// RecordExporter is a mock implementation of docxconv.RecordExporter.
type RecordExporter struct {
	ExportFn func(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error)
}

func (e *RecordExporter) Export(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
	return e.ExportFn(records, columns, errs)
}

var _ docxconv.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a mock implementation of docxconv.ConfigStore.
type ConfigStore struct {
	LoadFn            func() (*docxconv.Config, error)
	SaveFn            func(cfg *docxconv.Config) error
	UpdateFavoritesFn func(columns []string) error
}

func (s *ConfigStore) Load() (*docxconv.Config, error) {
	return s.LoadFn()
}

func (s *ConfigStore) Save(cfg *docxconv.Config) error {
	return s.SaveFn(cfg)
}

func (s *ConfigStore) UpdateFavorites(columns []string) error {
	return s.UpdateFavoritesFn(columns)
}

var _ docxconv.BatchService = (*BatchService)(nil)

// BatchService is a mock implementation of docxconv.BatchService.
type BatchService struct {
	CreateBatchFn      func(ctx context.Context, batch *docxconv.Batch, records []*docxconv.Record, docs []docxconv.Document, errs []docxconv.ProcessingError) error
	FindBatchByIDFn    func(ctx context.Context, id string) (*docxconv.Batch, error)
	FindBatchesFn      func(ctx context.Context, filter docxconv.BatchFilter) ([]*docxconv.Batch, error)
	FindBatchRecordsFn func(ctx context.Context, batchID string) ([]*docxconv.BatchRecord, error)
	FindBatchErrorsFn  func(ctx context.Context, batchID string) ([]docxconv.ProcessingError, error)
	DeleteBatchFn      func(ctx context.Context, id string) error
}

func (s *BatchService) CreateBatch(ctx context.Context, batch *docxconv.Batch, records []*docxconv.Record, docs []docxconv.Document, errs []docxconv.ProcessingError) error {
	return s.CreateBatchFn(ctx, batch, records, docs, errs)
}

func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*docxconv.Batch, error) {
	return s.FindBatchByIDFn(ctx, id)
}

func (s *BatchService) FindBatches(ctx context.Context, filter docxconv.BatchFilter) ([]*docxconv.Batch, error) {
	return s.FindBatchesFn(ctx, filter)
}

func (s *BatchService) FindBatchRecords(ctx context.Context, batchID string) ([]*docxconv.BatchRecord, error) {
	return s.FindBatchRecordsFn(ctx, batchID)
}

func (s *BatchService) FindBatchErrors(ctx context.Context, batchID string) ([]docxconv.ProcessingError, error) {
	return s.FindBatchErrorsFn(ctx, batchID)
}

func (s *BatchService) DeleteBatch(ctx context.Context, id string) error {
	return s.DeleteBatchFn(ctx, id)
}
