package ports

import (
	"context"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
)

type SuiteRunner interface {
	Run(ctx context.Context) (domain.RunSummary, error)
}

// Evaluator decides whether an actual response satisfies a case expectation.
type Evaluator interface {
	Evaluate(tc domain.TestCaseContext, expectation domain.CaseExpectation, actual any) domain.Outcome
}

type Metrics interface {
	Observe(result domain.CaseResult)
}
