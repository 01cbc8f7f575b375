package ports

import (
	"context"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, results []domain.CaseResult) error
}
