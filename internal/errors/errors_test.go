package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageComposition(t *testing.T) {
	err := NewSourceError(CodeSourceInvalid, "parsing template source", stderrors.New("unexpected token")).
		WithPath("templates/page.json")

	assert.Equal(t, "[WEFT_SOURCE_INVALID] templates/page.json parsing template source: unexpected token", err.Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewIOError(CodeWriteFailed, "writing artifact", cause)

	assert.True(t, stderrors.Is(err, cause))
}

func TestIsMatchesTypeAndCode(t *testing.T) {
	err := NewConfigError(CodeUnknownExtension, "extension not registered", nil)

	assert.True(t, stderrors.Is(err, NewConfigError(CodeUnknownExtension, "other text", nil)))
	assert.False(t, stderrors.Is(err, NewConfigError(CodeBadStyleFormat, "", nil)))
	assert.False(t, stderrors.Is(err, NewSourceError(CodeUnknownExtension, "", nil)))
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("rendering: %w", NewHookError("bem", "node", stderrors.New("boom")))

	assert.True(t, IsType(err, ErrorTypeHook))
	assert.False(t, IsType(err, ErrorTypeConfig))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeHook))
}

func TestHookErrorRecordsContext(t *testing.T) {
	err := NewHookError("react", "root", stderrors.New("boom"))

	require.NotNil(t, err.Context)
	assert.Equal(t, "react", err.Context["extension"])
	assert.Equal(t, "root", err.Context["hook"])
	assert.Equal(t, CodeHookFailed, err.Code)
}
