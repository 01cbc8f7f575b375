// Package validation decides whether an API response satisfies the
// expectation of one test case.
package validation

import (
	"fmt"
	"strings"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/validation/comparator"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/internal/validation/status"
)

const dataKey = "data"

// Oracle is safe for concurrent use; every Evaluate call builds its own
// comparator bound to the case's now.
type Oracle struct {
	opts []comparator.Option
}

func New(opts ...comparator.Option) *Oracle {
	return &Oracle{opts: opts}
}

// WithUnruledFieldHook returns a copy of the oracle that reports fields
// accepted without a rule to fn.
func (o *Oracle) WithUnruledFieldHook(fn func(path string)) ports.Evaluator {
	opts := append(append([]comparator.Option(nil), o.opts...), comparator.WithUnruledFieldHook(fn))
	return &Oracle{opts: opts}
}

// Evaluate checks the status block, narrows both documents to the response
// root and compares them.
func (o *Oracle) Evaluate(tc domain.TestCaseContext, exp domain.CaseExpectation, actual any) domain.Outcome {
	statusOutcome := domain.ValidOutcome()
	rootPath := domain.NASentinel
	if exp.Status != nil {
		statusOutcome = status.Check(actual, *exp.Status, tc.APIName)
		if isStatusPathMissing(statusOutcome) {
			return statusOutcome
		}
		rootPath = exp.Status.ResponseRootPath
	}

	segments := rootSegments(exp.Expected, tc.APIName, rootPath)
	expected, actualRoot, failure := narrow(exp.Expected, actual, segments)
	if failure != nil {
		return statusOutcome.Merge(*failure)
	}

	cmp := comparator.New(tc.Now, o.opts...)
	return statusOutcome.Merge(cmp.Compare(expected, actualRoot, "", exp.Rules, tc.APIName))
}

func isStatusPathMissing(o domain.Outcome) bool {
	for _, f := range o.FailedValidations {
		if strings.HasSuffix(f, ":"+domain.CheckStatusPath) {
			return true
		}
	}
	return false
}

// rootSegments picks the data root from the expected document and appends
// the dotted responseRootPath unless it is NA.
func rootSegments(expected any, apiName, rootPath string) []string {
	var segments []string
	switch {
	case apiName != "" && has(expected, dataKey, apiName):
		segments = []string{dataKey, apiName}
	case apiName != "" && has(expected, apiName):
		segments = []string{apiName}
	case has(expected, dataKey):
		segments = []string{dataKey}
	}

	if rootPath == "" || domain.IsNA(rootPath) {
		return segments
	}
	for _, part := range strings.Split(rootPath, ".") {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func has(doc any, segments ...string) bool {
	_, ok := document.Lookup(doc, segments...)
	return ok
}

// narrow walks both documents down segments. A segment missing from either
// side ends the comparison with a ResponseRootPath failure.
func narrow(expected, actual any, segments []string) (any, any, *domain.Outcome) {
	path := ""
	for _, seg := range segments {
		path = document.Child(path, seg)

		nextActual, ok := document.Lookup(actual, seg)
		if !ok {
			return nil, nil, rootFailure(path, "actual")
		}
		nextExpected, ok := document.Lookup(expected, seg)
		if !ok {
			return nil, nil, rootFailure(path, "expected")
		}
		expected, actual = nextExpected, nextActual
	}
	return expected, actual, nil
}

func rootFailure(path, side string) *domain.Outcome {
	b := domain.NewOutcomeBuilder()
	b.AddFailure(path+":"+domain.CheckResponseRootPath,
		fmt.Sprintf("response root path %s not found in %s document", path, side))
	out := b.Build()
	return &out
}
