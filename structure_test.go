package docxconv_test

import (
	"testing"

	docxconv "github.com/yshk0402/docx-converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructure(t *testing.T) {
	t.Parallel()

	t.Run("attaches paragraphs to the most recently opened heading", func(t *testing.T) {
		t.Parallel()

		tree, err := docxconv.ParseStructure("### 名前\n\n田中太郎\n\n### 原稿\n\n本文です")

		require.NoError(t, err)
		require.Len(t, tree.H3, 2)
		assert.Equal(t, "名前", tree.H3[0].Text)
		assert.Equal(t, []string{"田中太郎"}, tree.H3[0].Content)
		assert.Equal(t, "原稿", tree.H3[1].Text)
		assert.Equal(t, []string{"本文です"}, tree.H3[1].Content)
	})

	t.Run("collects paragraphs before any heading at the top level", func(t *testing.T) {
		t.Parallel()

		tree, err := docxconv.ParseStructure("前書き\n\n### 名前\n\n田中")

		require.NoError(t, err)
		assert.Equal(t, []string{"前書き"}, tree.Text)
		require.Len(t, tree.H3, 1)
		assert.Equal(t, []string{"田中"}, tree.H3[0].Content)
	})

	t.Run("tracks headings across levels", func(t *testing.T) {
		t.Parallel()

		tree, err := docxconv.ParseStructure("# 文書\n\n## 応募要項\n\n要項本文\n\n### 締切\n\n4/1")

		require.NoError(t, err)
		require.Len(t, tree.H1, 1)
		assert.Empty(t, tree.H1[0].Content)
		require.Len(t, tree.H2, 1)
		assert.Equal(t, []string{"要項本文"}, tree.H2[0].Content)
		require.Len(t, tree.H3, 1)
		assert.Equal(t, []string{"4/1"}, tree.H3[0].Content)
	})

	t.Run("heading directly followed by value line", func(t *testing.T) {
		t.Parallel()

		// The transcoder emits key/value pairs as a single block.
		tree, err := docxconv.ParseStructure("### 締切日\n4/1")

		require.NoError(t, err)
		require.Len(t, tree.H3, 1)
		assert.Equal(t, []string{"4/1"}, tree.H3[0].Content)
	})

	t.Run("joins consecutive lines into one paragraph", func(t *testing.T) {
		t.Parallel()

		tree, err := docxconv.ParseStructure("### 原稿\n一行目\n二行目")

		require.NoError(t, err)
		require.Len(t, tree.H3, 1)
		assert.Equal(t, []string{"一行目 二行目"}, tree.H3[0].Content)
	})

	t.Run("rejects malformed heading lines", func(t *testing.T) {
		t.Parallel()

		_, err := docxconv.ParseStructure("####\n\n本文")

		require.Error(t, err)
		assert.Equal(t, docxconv.ESTRUCTURE, docxconv.ErrorCode(err))
	})

	t.Run("empty markup yields an empty tree", func(t *testing.T) {
		t.Parallel()

		tree, err := docxconv.ParseStructure("")

		require.NoError(t, err)
		assert.Empty(t, tree.H1)
		assert.Empty(t, tree.H2)
		assert.Empty(t, tree.H3)
		assert.Empty(t, tree.Text)
	})
}
