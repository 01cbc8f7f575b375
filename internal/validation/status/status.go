// Package status finds and checks the status block of a response.
package status

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
)

const (
	statusKey  = "status"
	messageKey = "statusMessage"
)

// Status is the status block found in a response.
type Status struct {
	Code       string
	Message    string
	HasMessage bool
	// Path is the dotted location of the object holding the status key.
	Path string
}

func candidatePaths(apiName string) [][]string {
	if apiName == "" {
		return [][]string{{"data"}}
	}
	return [][]string{{"data", apiName}, {"data"}, {apiName}}
}

// Locate returns the first status block found under data.<api>, data or
// <api>. A status key holding null does not count.
func Locate(response any, apiName string) (Status, error) {
	for _, segments := range candidatePaths(apiName) {
		holder, ok := document.Lookup(response, segments...)
		if !ok {
			continue
		}
		obj, ok := holder.(map[string]any)
		if !ok {
			continue
		}
		code, ok := obj[statusKey]
		if !ok || code == nil {
			continue
		}
		st := Status{Code: document.Text(code), Path: strings.Join(segments, ".")}
		if msg, ok := obj[messageKey]; ok && msg != nil {
			st.Message = document.Text(msg)
			st.HasMessage = true
		}
		return st, nil
	}
	return Status{}, apperrors.Newf(apperrors.CodeStatusPathNotFound,
		"status not found in response for API %q", apiName)
}

// Check compares the located status against the expectation.
func Check(response any, exp domain.StatusExpectation, apiName string) domain.Outcome {
	b := domain.NewOutcomeBuilder()

	st, err := Locate(response, apiName)
	if err != nil {
		b.AddFailure(statusKey+":"+domain.CheckStatusPath, apperrors.Message(err))
		return b.Build()
	}

	codePath := document.Child(st.Path, statusKey)
	if st.Code != exp.Status {
		b.AddMismatch(codePath, "")
		b.AddFailure(codePath+":"+domain.CheckStatusCode,
			fmt.Sprintf("status code mismatch at %s: expected %q, got %q", codePath, exp.Status, st.Code))
	}

	if st.HasMessage && st.Message != exp.StatusMessage {
		msgPath := document.Child(st.Path, messageKey)
		b.AddMismatch(msgPath, "")
		b.AddFailure(msgPath+":"+domain.CheckStatusMessage,
			fmt.Sprintf("status message mismatch at %s: expected %q, got %q", msgPath, exp.StatusMessage, st.Message))
	}
	return b.Build()
}

type expectationCell struct {
	Status           string  `mapstructure:"status"`
	StatusMessage    string  `mapstructure:"statusMessage"`
	ResponseRootPath *string `mapstructure:"responseRootPath"`
}

// ParseExpectation decodes an expected_status cell. An empty or "NA" cell
// yields nil.
func ParseExpectation(cell string) (*domain.StatusExpectation, error) {
	text := strings.TrimSpace(cell)
	if text == "" || domain.IsNA(text) {
		return nil, nil
	}
	doc, err := document.ParseString(text)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.CodeSuiteParseError, "expected status is not valid JSON")
	}

	var raw expectationCell
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build status decoder")
	}
	if err := dec.Decode(doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSuiteParseError, "expected status has an invalid shape")
	}
	if raw.ResponseRootPath == nil {
		return nil, apperrors.New(apperrors.CodeSuiteParseError, "expected status is missing responseRootPath")
	}

	return &domain.StatusExpectation{
		Status:           raw.Status,
		StatusMessage:    raw.StatusMessage,
		ResponseRootPath: strings.TrimSpace(*raw.ResponseRootPath),
	}, nil
}
