// Package slog provides logging decorators for docxconv interfaces.
package slog

import (
	"log/slog"
	"time"

	docxconv "github.com/yshk0402/docx-converter"
)

// Ensure LoggingProcessor implements docxconv.Processor.
var _ docxconv.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor with structured logging of batch runs.
type LoggingProcessor struct {
	next   docxconv.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next docxconv.Processor, logger *slog.Logger) *LoggingProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProcessor{next: next, logger: logger}
}

// ProcessOne delegates to the wrapped processor, logging failures.
func (p *LoggingProcessor) ProcessOne(doc docxconv.Document, columns []string) docxconv.Outcome {
	outcome := p.next.ProcessOne(doc, columns)
	if outcome.Record == nil && len(outcome.Errors) > 0 {
		p.logger.Warn("document skipped",
			"index", doc.Index,
			"path", doc.Path,
			"reason", outcome.Errors[0].Message,
		)
	}
	return outcome
}

// ProcessBatch delegates to the wrapped processor, logging a batch summary.
func (p *LoggingProcessor) ProcessBatch(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
	begin := time.Now()
	records, errs := p.next.ProcessBatch(docs, columns)
	p.logger.Info("batch processed",
		"documents", len(docs),
		"records", len(records),
		"errors", len(errs),
		"duration", time.Since(begin),
	)
	return records, errs
}
