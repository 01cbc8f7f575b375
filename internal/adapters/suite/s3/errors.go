package s3

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

var notFoundCodes = []string{"NoSuchKey", "NoSuchBucket", "NotFound"}

var authCodes = []string{
	"AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch",
	"ExpiredToken", "InvalidToken", "AuthFailure",
}

// classifyError maps an S3 error to an application error code.
func classifyError(ctx context.Context, bucket, key string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, "unexpected nil error in S3 error handler")
	}
	object := fmt.Sprintf("s3://%s/%s", bucket, key)

	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeTimeout, "context done while reading "+object)
	}

	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	if stderrs.As(err, &noSuchKey) || stderrs.As(err, &noSuchBucket) {
		return suiteNotFound(err, object)
	}

	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case matchesAny(code, notFoundCodes):
			return suiteNotFound(err, object)
		case matchesAny(code, authCodes):
			return errors.WrapUserFacing(err, errors.CodeStorageAuthError,
				"access denied reading "+object, "Check the AWS credentials and bucket policy.")
		}
	}

	if strings.Contains(err.Error(), "AccessDenied") {
		return errors.WrapUserFacing(err, errors.CodeStorageAuthError,
			"access denied reading "+object, "Check the AWS credentials and bucket policy.")
	}
	return errors.Wrap(err, errors.CodeSuiteReadError, "failed to read "+object)
}

func suiteNotFound(err error, object string) error {
	return errors.WrapUserFacing(err, errors.CodeSuiteNotFound,
		"suite "+object+" not found", "Check the bucket and key in the suite location.")
}

func matchesAny(code string, codes []string) bool {
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}
