package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_KeepsExistingAppError(t *testing.T) {
	inner := New(CodeUnsupportedConstraint, "unsupported TimeRange constraint")

	wrapped := Wrap(fmt.Errorf("context: %w", inner), CodeInternal, "outer")

	assert.Equal(t, CodeUnsupportedConstraint, wrapped.Code)
	assert.Same(t, inner, wrapped)
}

func TestWrapAs_Recodes(t *testing.T) {
	inner := New(CodeDocumentParseError, "invalid JSON document")

	wrapped := WrapAs(inner, CodeRuleSetParseError, "rule set is not valid JSON")

	assert.True(t, Is(wrapped, CodeRuleSetParseError))
	assert.True(t, errors.Is(wrapped, inner))
	assert.Equal(t, inner.StackTrace, wrapped.StackTrace)
	assert.Nil(t, WrapAs(nil, CodeInternal, "x"))
}

func TestWrap_ForeignError(t *testing.T) {
	base := errors.New("boom")

	wrapped := Wrap(base, CodeTransportError, "request failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, "[TRANSPORT_ERROR] request failed: boom", wrapped.Error())
	assert.Equal(t, CodeTransportError, GetCode(wrapped))
	assert.Equal(t, CodeUnknown, GetCode(base))
	assert.Nil(t, Wrap(nil, CodeInternal, "x"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "date mismatch", Message(Newf(CodeConstraintViolation, "date %s", "mismatch")))
}

func TestGetUserFacingMessage(t *testing.T) {
	inner := NewUserFacing(CodeSuiteNotFound, "suite not found", "Check the --suite flag.")
	outer := Wrap(fmt.Errorf("load: %w", inner), CodeInternal, "ignored")

	msg, suggestion, ok := GetUserFacingMessage(outer)
	assert.True(t, ok)
	assert.Equal(t, "suite not found", msg)
	assert.Equal(t, "Check the --suite flag.", suggestion)

	_, _, ok = GetUserFacingMessage(New(CodeInternal, "hidden"))
	assert.False(t, ok)
}
