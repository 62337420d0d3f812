package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	docxconv "github.com/yshk0402/docx-converter"
	"github.com/yshk0402/docx-converter/mock"
	"github.com/yshk0402/docx-converter/slog"
)

func TestLoggingProcessor_ProcessBatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Processor{
		ProcessBatchFn: func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
			return []*docxconv.Record{docxconv.NewRecord()}, nil
		},
	}

	records, errs := slog.NewLoggingProcessor(next, logger).ProcessBatch(
		[]docxconv.Document{{Index: 0, Content: "x"}}, []string{"名前"})

	assert.Len(t, records, 1)
	assert.Empty(t, errs)
	assert.Contains(t, buf.String(), "batch processed")
	assert.Contains(t, buf.String(), "documents=1")
}

func TestLoggingProcessor_ProcessOne_LogsSkips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	next := &mock.Processor{
		ProcessOneFn: func(doc docxconv.Document, columns []string) docxconv.Outcome {
			return docxconv.Outcome{Errors: []docxconv.ProcessingError{
				{DocumentIndex: doc.Index, Kind: docxconv.ErrorKindDocument, Message: "bad input"},
			}}
		},
	}

	outcome := slog.NewLoggingProcessor(next, logger).ProcessOne(docxconv.Document{Index: 2}, nil)

	assert.Nil(t, outcome.Record)
	assert.Contains(t, buf.String(), "document skipped")
	assert.Contains(t, buf.String(), "index=2")
}
