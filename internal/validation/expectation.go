package validation

import (
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/internal/validation/rules"
	"github.com/olusolaa/api-contract-oracle/internal/validation/status"
)

// BuildExpectation decodes the document cells of a test case.
func BuildExpectation(tc domain.TestCase) (domain.CaseExpectation, error) {
	var exp domain.CaseExpectation

	if text := strings.TrimSpace(tc.Expected); text != "" && !domain.IsNA(text) {
		doc, err := document.ParseString(text)
		if err != nil {
			return exp, apperrors.WrapAs(err, apperrors.CodeSuiteParseError,
				"expected response of case "+tc.ID+" is not valid JSON")
		}
		exp.Expected = doc
	} else {
		exp.Expected = map[string]any{}
	}

	set, err := rules.ParseRuleSet([]byte(tc.Rules))
	if err != nil {
		return exp, err
	}
	exp.Rules = set

	st, err := status.ParseExpectation(tc.ExpectedStatus)
	if err != nil {
		return exp, err
	}
	exp.Status = st

	return exp, nil
}
