package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const suiteYAML = "cases:\n  - {id: TC-1, api_name: getUser, request: 'query { x }'}\n"

func newTestSource(t *testing.T, client *mocks.MockS3Client) *Source {
	t.Helper()
	src, err := NewSource(context.Background(), Config{}, mocks.NewTestLogger(), WithClient(client))
	require.NoError(t, err)
	return src
}

func TestSource_Load(t *testing.T) {
	// Arrange
	client := new(mocks.MockS3Client)
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *awss3.GetObjectInput) bool {
		return *in.Bucket == "suites" && *in.Key == "smoke/suite.yaml"
	})).Return(&awss3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(suiteYAML))}, nil)
	src := newTestSource(t, client)

	// Act
	st, err := src.Load(context.Background(), "s3://suites/smoke/suite.yaml")

	// Assert
	require.NoError(t, err)
	assert.Len(t, st.Cases, 1)
	assert.Equal(t, Scheme, src.Scheme())
	client.AssertExpectations(t)
}

func TestSource_LoadClassifiesErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode errors.Code
	}{
		{"typed no such key", &types.NoSuchKey{}, errors.CodeSuiteNotFound},
		{"api no such bucket", &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "gone"}, errors.CodeSuiteNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}, errors.CodeStorageAuthError},
		{"wrapped expired token", fmt.Errorf("op: %w", &smithy.GenericAPIError{Code: "ExpiredToken"}), errors.CodeStorageAuthError},
		{"deadline", context.DeadlineExceeded, errors.CodeTimeout},
		{"other", fmt.Errorf("connection reset"), errors.CodeSuiteReadError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockS3Client)
			client.On("GetObject", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := newTestSource(t, client).Load(context.Background(), "s3://suites/suite.yaml")

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, errors.GetCode(err))
		})
	}
}

func TestParseLocation(t *testing.T) {
	bucket, key, err := ParseLocation("s3://my-bucket/a/b/suite.json")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "a/b/suite.json", key)

	for _, bad := range []string{"my-bucket/suite.yaml", "s3://my-bucket", "s3:///suite.yaml", "s3://b/"} {
		_, _, err := ParseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestSource_RejectsUnsupportedObject(t *testing.T) {
	client := new(mocks.MockS3Client)
	_, err := newTestSource(t, client).Load(context.Background(), "s3://suites/suite.xlsx")

	assert.True(t, errors.Is(err, errors.CodeSuiteReadError))
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
}
