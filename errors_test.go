package docxconv_test

import (
	"errors"
	"testing"

	docxconv "github.com/yshk0402/docx-converter"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docxconv.Errorf(docxconv.ENOTFOUND, "batch %q not found", "test")

	assert.Equal(t, docxconv.ENOTFOUND, docxconv.ErrorCode(err))
	assert.Equal(t, "batch \"test\" not found", docxconv.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docxconv.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docxconv.EINTERNAL, docxconv.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docxconv.ErrorMessage(nil))
}
