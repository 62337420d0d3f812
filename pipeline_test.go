package docxconv_test

import (
	"testing"

	docxconv "github.com/yshk0402/docx-converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ProcessOne(t *testing.T) {
	t.Parallel()

	pipeline := docxconv.NewPipeline()

	t.Run("extracts selected columns and records advisory violations", func(t *testing.T) {
		t.Parallel()

		doc := docxconv.Document{
			Index:   0,
			Content: "【名前】\n田中太郎\n【原稿】\nこれは短い本文です。",
		}

		outcome := pipeline.ProcessOne(doc, []string{"名前", "原稿"})

		require.NotNil(t, outcome.Record)
		assert.Equal(t, []string{"番号", "名前", "原稿"}, outcome.Record.Columns())

		id, _ := outcome.Record.Get("番号")
		assert.Equal(t, "1", id)
		name, _ := outcome.Record.Get("名前")
		assert.Equal(t, "田中太郎", name)
		body, _ := outcome.Record.Get("原稿")
		assert.Equal(t, "これは短い本文です。（要追記）", body)

		// The short body is advisory only: the record survives with one
		// validation entry.
		require.Len(t, outcome.Errors, 1)
		assert.Equal(t, docxconv.ErrorKindValidation, outcome.Errors[0].Kind)
		assert.Equal(t, 0, outcome.Errors[0].DocumentIndex)
		assert.False(t, outcome.Errors[0].Timestamp.IsZero())
	})

	t.Run("project column matches its extended heading spelling", func(t *testing.T) {
		t.Parallel()

		doc := docxconv.Document{Content: "【企画名】\n夏祭り特集"}

		outcome := pipeline.ProcessOne(doc, []string{"企画"})

		require.NotNil(t, outcome.Record)
		v, _ := outcome.Record.Get("企画")
		assert.Equal(t, "夏祭り特集", v)
	})

	t.Run("a stray colon-led line does not lose the record", func(t *testing.T) {
		t.Parallel()

		doc := docxconv.Document{Content: "【名前】\n田中太郎\n：補足事項"}

		outcome := pipeline.ProcessOne(doc, []string{"名前"})

		require.NotNil(t, outcome.Record)
		for _, pe := range outcome.Errors {
			assert.NotEqual(t, docxconv.ErrorKindDocument, pe.Kind)
		}
		v, _ := outcome.Record.Get("名前")
		assert.Equal(t, "田中太郎", v)
	})

	t.Run("failed transcoding yields no record and one document error", func(t *testing.T) {
		t.Parallel()

		doc := docxconv.Document{Index: 4, Content: "broken \xff input"}

		outcome := pipeline.ProcessOne(doc, []string{"名前"})

		assert.Nil(t, outcome.Record)
		require.Len(t, outcome.Errors, 1)
		assert.Equal(t, docxconv.ErrorKindDocument, outcome.Errors[0].Kind)
		assert.Equal(t, 4, outcome.Errors[0].DocumentIndex)
		assert.Equal(t, docxconv.ETRANSCODE, outcome.Errors[0].Details)
	})
}

func TestPipeline_ProcessBatch(t *testing.T) {
	t.Parallel()

	pipeline := docxconv.NewPipeline()

	t.Run("empty batch yields empty results", func(t *testing.T) {
		t.Parallel()

		records, errs := pipeline.ProcessBatch(nil, []string{"名前"})

		assert.NotNil(t, records)
		assert.NotNil(t, errs)
		assert.Empty(t, records)
		assert.Empty(t, errs)
	})

	t.Run("a failing document is skipped without aborting the batch", func(t *testing.T) {
		t.Parallel()

		body := "これは応募フォームの本文です。内容は短いですが記録されます。"
		docs := []docxconv.Document{
			{Index: 0, Content: "【名前】\n田中\n【原稿】\n" + body},
			{Index: 1, Content: "broken \xff input"},
			{Index: 2, Content: "【名前】\n鈴木\n【原稿】\n" + body},
		}

		records, errs := pipeline.ProcessBatch(docs, []string{"名前", "原稿"})

		require.Len(t, records, 2)
		id0, _ := records[0].Get("番号")
		id1, _ := records[1].Get("番号")
		assert.Equal(t, "1", id0)
		assert.Equal(t, "3", id1)

		var documentErrs []docxconv.ProcessingError
		for _, e := range errs {
			if e.Kind == docxconv.ErrorKindDocument {
				documentErrs = append(documentErrs, e)
			}
		}
		require.Len(t, documentErrs, 1)
		assert.Equal(t, 1, documentErrs[0].DocumentIndex)
	})

	t.Run("records preserve input order", func(t *testing.T) {
		t.Parallel()

		docs := []docxconv.Document{
			{Index: 0, Content: "【名前】\n一人目"},
			{Index: 1, Content: "【名前】\n二人目"},
		}

		records, _ := pipeline.ProcessBatch(docs, []string{"名前"})

		require.Len(t, records, 2)
		first, _ := records[0].Get("名前")
		second, _ := records[1].Get("名前")
		assert.Equal(t, "一人目", first)
		assert.Equal(t, "二人目", second)
	})
}
