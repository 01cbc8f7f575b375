package suite

import (
	"context"
	"testing"

	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSuite = `
variables:
  region: eu
cases:
  - id: TC-1
    api_name: getUser
    name: fetch user
    request: 'query { getUser(id: "${user_id}") { status user { name } } }'
    expected: '{"data":{"getUser":{"user":{"name":"Ada"}}}}'
    expected_status:
      status: 200
      statusMessage: OK
      responseRootPath: user
    rules: NA
    extract:
      user_name: data.getUser.user.name
  - id: TC-2
    api_name: addUser
    request: mutation { addUser { status } }
`

func TestDecode_YAML(t *testing.T) {
	s, err := Decode(context.Background(), []byte(yamlSuite), "suite.yaml")
	require.NoError(t, err)

	require.Len(t, s.Cases, 2)
	assert.Equal(t, map[string]string{"region": "eu"}, s.Variables)

	first := s.Cases[0]
	assert.Equal(t, "TC-1", first.ID)
	assert.Equal(t, "NA", first.Rules)
	assert.Equal(t, map[string]string{"user_name": "data.getUser.user.name"}, first.Extract)

	status, err := document.ParseString(first.ExpectedStatus)
	require.NoError(t, err)
	assert.Equal(t, "user", status.(map[string]any)["responseRootPath"])

	assert.Equal(t, 1, s.Cases[1].Order)
	assert.Empty(t, s.Cases[1].Expected)
}

func TestDecode_JSON(t *testing.T) {
	data := `{"cases":[{"id":"TC-1","api_name":"getUser","request":"query { x }","expected":{"data":{"x":1}}}]}`

	s, err := Decode(context.Background(), []byte(data), "suite.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"x":1}}`, s.Cases[0].Expected)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        "cases: [",
		"no cases":      "variables: {}",
		"missing id":    "cases:\n  - api_name: x\n    request: q",
		"duplicate ids": "cases:\n  - {id: a, api_name: x, request: q}\n  - {id: a, api_name: y, request: q}",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(context.Background(), []byte(input), "bad.yaml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeSuiteParseError), "got %v", err)
			_, _, userFacing := errors.GetUserFacingMessage(err)
			assert.True(t, userFacing)
		})
	}
}

func TestIsSuiteFile(t *testing.T) {
	assert.True(t, IsSuiteFile("a/b/suite.YML"))
	assert.True(t, IsSuiteFile("s3://bucket/suite.json"))
	assert.False(t, IsSuiteFile("suite.xlsx"))
}
