package log

import (
	"bytes"
	"context"
	"encoding/json"
	stderrs "errors"
	"testing"

	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONWithErrorCode(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(Config{Level: LevelDebug, Format: FormatJSON}, &buf)
	require.NoError(t, err)

	cause := stderrs.New("connection refused")
	logger.WithFields(map[string]any{"case_id": "TC-1"}).
		Errorf(context.Background(), apperrors.Wrap(cause, apperrors.CodeTransportError, "send failed"), "Case %s failed", "TC-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Case TC-1 failed", entry["msg"])
	assert.Equal(t, "TC-1", entry["case_id"])
	assert.Equal(t, "TRANSPORT_ERROR", entry["error_code"])
	assert.Equal(t, "connection refused", entry["error_wrapped"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLoggerWithWriter(Config{Level: LevelWarn, Format: FormatText}, &buf)
	require.NoError(t, err)

	logger.Infof(context.Background(), "hidden")
	logger.Warnf(context.Background(), "shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestNewLoggerWithWriter_NilWriter(t *testing.T) {
	_, err := NewLoggerWithWriter(DefaultConfig(), nil)
	assert.True(t, apperrors.Is(err, apperrors.CodeInternal))
}
