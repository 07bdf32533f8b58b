package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := NotFound("dataset file Dataset.xlsx")
	wrapped := Wrap(fmt.Errorf("loading: %w", base), "overview failed")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, "overview failed: loading: dataset file Dataset.xlsx not found", wrapped.Error())
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(fs.ErrPermission, "reading %s", "Dataset.xlsx")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrPermission))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WithCode(CodeIOError, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad sheet"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Contains(t, err.Error(), "bad sheet")
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("disk gone")

	assert.Equal(t, CodeIOError, GetCode(IOFailure("a.xlsx", cause)))
	assert.True(t, stderrors.Is(IOFailure("a.xlsx", cause), cause))
	assert.Equal(t, CodeRenderError, GetCode(RenderFailure("p-values", cause)))
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("x")))
	assert.Equal(t, "UNKNOWN", GetCode(cause))
	assert.False(t, IsAppError(cause))
}
