package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docxconv "github.com/yshk0402/docx-converter"
	main "github.com/yshk0402/docx-converter/cmd/docxconv"
	"github.com/yshk0402/docx-converter/mock"
)

func TestColumnsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints detected columns one per line", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractTextFn: func(path string) (string, error) {
				assert.Equal(t, "form.docx", path)
				return "【名前】\n田中太郎\n\n■ 部署：営業部\n\n締切日：4/1", nil
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

		cmd := &main.ColumnsCmd{File: "form.docx"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, docxconv.ColumnID)
		assert.Contains(t, output, docxconv.ColumnName)
		assert.Contains(t, output, docxconv.ColumnDepartment)
		assert.Contains(t, output, docxconv.ColumnDeadline)
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error when extraction fails", func(t *testing.T) {
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

		cmd := &main.ColumnsCmd{File: "broken.docx"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}
