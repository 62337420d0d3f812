package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docxconv "github.com/yshk0402/docx-converter"
	main "github.com/yshk0402/docx-converter/cmd/docxconv"
	"github.com/yshk0402/docx-converter/mock"
)

func TestConvertCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("converts files and writes spreadsheet", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				return "【名前】 田中太郎", nil
			},
		}

		var processedDocs []docxconv.Document
		var processedColumns []string
		processor := &mock.Processor{
			ProcessBatchFn: func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
				processedDocs = docs
				processedColumns = columns
				rec := docxconv.NewRecord()
				rec.Set(docxconv.ColumnID, "1")
				rec.Set(docxconv.ColumnName, "田中太郎")
				return []*docxconv.Record{rec}, []docxconv.ProcessingError{}
			},
		}

		exporter := &mock.RecordExporter{
			ExportFn: func(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
				return []byte("xlsx-bytes"), nil
			},
		}

		output := filepath.Join(t.TempDir(), "out.xlsx")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: processor,
			Extractor: extractor,
			Exporter:  exporter,
		}

		cmd := &main.ConvertCmd{
			Files:       []string{"one.docx", "two.docx"},
			Output:      output,
			Columns:     []string{docxconv.ColumnID, docxconv.ColumnName},
			Concurrency: 2,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote 1 records")

		require.Len(t, processedDocs, 2)
		assert.Equal(t, 0, processedDocs[0].Index)
		assert.Equal(t, "one.docx", processedDocs[0].Path)
		assert.Equal(t, 1, processedDocs[1].Index)
		assert.Equal(t, "two.docx", processedDocs[1].Path)
		assert.Equal(t, []string{docxconv.ColumnID, docxconv.ColumnName}, processedColumns)

		data, readErr := os.ReadFile(output)
		require.NoError(t, readErr)
		assert.Equal(t, []byte("xlsx-bytes"), data)
	})

	t.Run("detects columns from first document when none given", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				return "【名前】\n田中太郎\n\n締切日：4/1", nil
			},
		}

		var processedColumns []string
		processor := &mock.Processor{
			ProcessBatchFn: func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
				processedColumns = columns
				return []*docxconv.Record{}, []docxconv.ProcessingError{}
			},
		}

		exporter := &mock.RecordExporter{
			ExportFn: func(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
				return []byte{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: processor,
			Extractor: extractor,
			Exporter:  exporter,
		}

		cmd := &main.ConvertCmd{
			Files:       []string{"one.docx"},
			Output:      filepath.Join(t.TempDir(), "out.xlsx"),
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Detected columns:")
		assert.Contains(t, processedColumns, docxconv.ColumnName)
		assert.Contains(t, processedColumns, docxconv.ColumnDeadline)
	})

	t.Run("reports processing errors on stderr", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				return "content", nil
			},
		}

		processor := &mock.Processor{
			ProcessBatchFn: func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
				return []*docxconv.Record{}, []docxconv.ProcessingError{
					{DocumentIndex: 0, Kind: docxconv.ErrorKindDocument, Message: "文書の変換に失敗しました"},
				}
			},
		}

		exporter := &mock.RecordExporter{
			ExportFn: func(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
				return []byte{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: processor,
			Extractor: extractor,
			Exporter:  exporter,
		}

		cmd := &main.ConvertCmd{
			Files:       []string{"one.docx"},
			Output:      filepath.Join(t.TempDir(), "out.xlsx"),
			Columns:     []string{docxconv.ColumnID},
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "doc 1")
		assert.Contains(t, stderr.String(), "文書の変換に失敗しました")
		assert.Contains(t, stdout.String(), "1 errors")
	})

	t.Run("saves run when --save is set", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				return "content", nil
			},
		}

		processor := &mock.Processor{
			ProcessBatchFn: func(docs []docxconv.Document, columns []string) ([]*docxconv.Record, []docxconv.ProcessingError) {
				rec := docxconv.NewRecord()
				rec.Set(docxconv.ColumnID, "1")
				return []*docxconv.Record{rec}, []docxconv.ProcessingError{}
			},
		}

		exporter := &mock.RecordExporter{
			ExportFn: func(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
				return []byte{}, nil
			},
		}

		var savedBatch *docxconv.Batch
		batches := &mock.BatchService{
			CreateBatchFn: func(_ context.Context, batch *docxconv.Batch, records []*docxconv.Record, docs []docxconv.Document, errs []docxconv.ProcessingError) error {
				batch.ID = "run-123"
				savedBatch = batch
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: processor,
			Extractor: extractor,
			Exporter:  exporter,
			Batches:   batches,
		}

		cmd := &main.ConvertCmd{
			Files:       []string{"one.docx"},
			Output:      filepath.Join(t.TempDir(), "march.xlsx"),
			Columns:     []string{docxconv.ColumnID},
			Save:        true,
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, savedBatch)
		assert.Equal(t, "march", savedBatch.Name)
		assert.Equal(t, []string{docxconv.ColumnID}, savedBatch.Columns)
		assert.Contains(t, stdout.String(), "Saved run")
		assert.Contains(t, stdout.String(), "run-123")
	})

	t.Run("returns error when no files given", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.ConvertCmd{Output: "out.xlsx"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docxconv.EINVALID, docxconv.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error when a file cannot be read", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				return "", docxconv.Errorf(docxconv.EINVALID, "not a docx file")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Extractor: extractor,
		}

		cmd := &main.ConvertCmd{
			Files:       []string{"broken.docx"},
			Output:      "out.xlsx",
			Concurrency: 1,
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.docx")
		assert.Contains(t, stderr.String(), "error:")
	})
}
