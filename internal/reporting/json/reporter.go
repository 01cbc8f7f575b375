package json

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
)

const ReporterTypeJSON = "json"

type Config struct {
	Compact bool `mapstructure:"compact" yaml:"compact"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

type Option func(*Reporter)

func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type jsonReport struct {
	Summary domain.RunSummary `json:"summary"`
	Results []jsonResultItem  `json:"results"`
}

type jsonResultItem struct {
	CaseID     string            `json:"caseId"`
	APIName    string            `json:"apiName"`
	Name       string            `json:"name,omitempty"`
	Status     domain.CaseStatus `json:"status"`
	DurationMs int64             `json:"durationMs"`
	Outcome    *domain.Outcome   `json:"outcome,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.CaseResult) error {
	report := jsonReport{
		Summary: domain.Summarize(results),
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}
		report.Results = append(report.Results, jsonResultItem{
			CaseID:     res.CaseID,
			APIName:    res.APIName,
			Name:       res.Name,
			Status:     res.Status,
			DurationMs: res.Duration.Milliseconds(),
			Outcome:    res.Outcome,
			Error:      res.Error,
		})
	}

	encoder := json.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return apperrors.Wrap(err, apperrors.CodeReportError, "failed to encode JSON report")
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
