// Package metrics records per-case counters and latencies for a run.
package metrics

import (
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contract_oracle"

// Recorder implements ports.Metrics on a private registry so that several
// runs in one process do not share counters.
type Recorder struct {
	registry *prometheus.Registry
	cases    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		cases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cases_total",
				Help:      "Total number of executed test cases by result status",
			},
			[]string{"api", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "case_duration_seconds",
				Help:      "Wall time of one test case including the request",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"api"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failed_checks_total",
				Help:      "Mismatched fields and failed validations reported by the oracle",
			},
			[]string{"api", "kind"},
		),
	}
}

func (r *Recorder) Observe(result domain.CaseResult) {
	r.cases.WithLabelValues(result.APIName, string(result.Status)).Inc()
	r.duration.WithLabelValues(result.APIName).Observe(result.Duration.Seconds())
	if result.Outcome == nil {
		return
	}
	if n := len(result.Outcome.MismatchedFields); n > 0 {
		r.failures.WithLabelValues(result.APIName, "mismatch").Add(float64(n))
	}
	if n := len(result.Outcome.FailedValidations); n > 0 {
		r.failures.WithLabelValues(result.APIName, "validation").Add(float64(n))
	}
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return apperrors.Wrap(err, apperrors.CodeReportError, "failed to write metrics textfile "+path)
	}
	return nil
}
