package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestSource_Load(t *testing.T) {
	p := writeFile(t, "suite.yaml", "cases:\n  - {id: TC-1, api_name: getUser, request: 'query { x }'}\n")
	src := NewSource(log.NewNopLogger())

	st, err := src.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, st.Cases, 1)
	assert.Equal(t, Scheme, src.Scheme())

	st, err = src.Load(context.Background(), "file://"+p)
	require.NoError(t, err)
	assert.Equal(t, "TC-1", st.Cases[0].ID)
}

func TestSource_LoadErrors(t *testing.T) {
	src := NewSource(log.NewNopLogger())

	_, err := src.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, errors.CodeSuiteNotFound))

	_, err = src.Load(context.Background(), writeFile(t, "suite.xlsx", "binary"))
	assert.True(t, errors.Is(err, errors.CodeSuiteReadError))

	_, err = src.Load(context.Background(), writeFile(t, "bad.yaml", "cases: ["))
	assert.True(t, errors.Is(err, errors.CodeSuiteParseError))
}
