package json

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/mocks"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []domain.CaseResult {
	return []domain.CaseResult{
		{
			CaseID: "TC-1", APIName: "addUser", Status: domain.CaseStatusPassed, Duration: 12 * time.Millisecond,
			Outcome: &domain.Outcome{Valid: true, MismatchedFields: []string{}, FailedValidations: []string{}},
		},
		{
			CaseID: "TC-2", APIName: "getUser", Name: "fetch profile", Status: domain.CaseStatusFailed, Duration: 1500 * time.Millisecond,
			Outcome: &domain.Outcome{
				MismatchedFields:  []string{"name"},
				FailedValidations: []string{"age:MinLimit"},
				Diagnostics:       []string{`name: expected "Ada", got "Bob"`},
			},
			Expected: map[string]any{"name": "Ada"},
		},
		{CaseID: "TC-3", APIName: "getUser", Status: domain.CaseStatusError, Error: "send request: connection refused"},
	}
}

func TestReporter_Golden(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewReporter(Config{}, mocks.NewTestLogger(), WithWriter(&buf))
	require.NoError(t, err)

	require.NoError(t, r.Report(context.Background(), sampleResults()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report", buf.Bytes())
}

func TestReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	r, _ := NewReporter(Config{Compact: true}, mocks.NewTestLogger(), WithWriter(&buf))

	require.NoError(t, r.Report(context.Background(), nil))

	assert.Equal(t, `{"summary":{"total":0,"passed":0,"failed":0,"errors":0},"results":[]}`+"\n", buf.String())
}
