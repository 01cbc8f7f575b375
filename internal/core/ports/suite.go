package ports

import (
	"context"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
)

// SuiteSource loads a suite from a location it understands.
type SuiteSource interface {
	Scheme() string
	Load(ctx context.Context, location string) (domain.Suite, error)
}

// Transport sends a rendered request body for one case.
type Transport interface {
	Send(ctx context.Context, tc domain.TestCaseContext, body string) (domain.Response, error)
}
