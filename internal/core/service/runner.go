package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/internal/validation/template"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 10

type RunnerConfig struct {
	SuiteLocation string
	Concurrency   int
	// Variables seed the session before the first case; they override suite
	// variables of the same name.
	Variables map[string]string
	// FieldLayouts selects the forward-mode layout per template field.
	FieldLayouts map[string]string
	// TemplateFields replaces the default placeholder allow-list when set.
	TemplateFields []string
}

// unruledFieldObserver is implemented by evaluators that can report fields
// accepted without a rule.
type unruledFieldObserver interface {
	WithUnruledFieldHook(fn func(path string)) ports.Evaluator
}

type SuiteRunner struct {
	registry  *ComponentRegistry
	transport ports.Transport
	evaluator ports.Evaluator
	reporter  ports.Reporter
	metrics   ports.Metrics
	logger    ports.Logger
	cfg       RunnerConfig
	clock     func() time.Time
	session   *Session
}

type RunnerOption func(*SuiteRunner)

func WithClock(clock func() time.Time) RunnerOption {
	return func(r *SuiteRunner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func WithMetrics(m ports.Metrics) RunnerOption {
	return func(r *SuiteRunner) {
		if m != nil {
			r.metrics = m
		}
	}
}

func NewSuiteRunner(
	registry *ComponentRegistry,
	transport ports.Transport,
	evaluator ports.Evaluator,
	reporter ports.Reporter,
	logger ports.Logger,
	cfg RunnerConfig,
	opts ...RunnerOption,
) (*SuiteRunner, error) {
	if registry == nil || transport == nil || evaluator == nil || reporter == nil || logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "suite runner requires registry, transport, evaluator, reporter and logger")
	}
	if cfg.SuiteLocation == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "no suite location configured", "Pass --suite or set suite.location.")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	r := &SuiteRunner{
		registry:  registry,
		transport: transport,
		evaluator: evaluator,
		reporter:  reporter,
		logger:    logger,
		cfg:       cfg,
		clock:     time.Now,
		session:   NewSession(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Session exposes the values collected during the run.
func (r *SuiteRunner) Session() *Session {
	return r.session
}

// Run loads the suite, executes every case and hands the ordered results to
// the reporter. A failing case is not an error; the summary carries it.
func (r *SuiteRunner) Run(ctx context.Context) (domain.RunSummary, error) {
	source, err := r.registry.ResolveSuiteSource(r.cfg.SuiteLocation)
	if err != nil {
		return domain.RunSummary{}, err
	}
	suite, err := source.Load(ctx, r.cfg.SuiteLocation)
	if err != nil {
		return domain.RunSummary{}, err
	}
	r.seedSession(suite.Variables)

	runID := uuid.NewString()
	r.logger.Infof(ctx, "Starting run %s: %d cases from %s (concurrency %d)",
		runID, len(suite.Cases), r.cfg.SuiteLocation, r.cfg.Concurrency)

	for i := range suite.Cases {
		suite.Cases[i].Order = i
	}
	results := make([]domain.CaseResult, len(suite.Cases))
	for _, batch := range batches(suite.Cases) {
		if err := r.runBatch(ctx, runID, batch, results); err != nil {
			return domain.RunSummary{}, err
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Order < results[j].Order })
	summary := domain.Summarize(results)
	r.logger.Infof(ctx, "Run %s finished: %d passed, %d failed, %d errors",
		runID, summary.Passed, summary.Failed, summary.Errors)

	if err := r.reporter.Report(ctx, results); err != nil {
		return summary, errors.Wrap(err, errors.CodeReportError, "failed to generate report")
	}
	return summary, nil
}

func (r *SuiteRunner) seedSession(suiteVars map[string]string) {
	for k, v := range suiteVars {
		r.session.Set(k, v)
	}
	for k, v := range r.cfg.Variables {
		r.session.Set(k, v)
	}
}

// batches cuts the suite after every case that extracts values, so cases
// that follow it see the extracted values.
func batches(cases []domain.TestCase) [][]domain.TestCase {
	var out [][]domain.TestCase
	start := 0
	for i, tc := range cases {
		if len(tc.Extract) > 0 {
			out = append(out, cases[start:i+1])
			start = i + 1
		}
	}
	if start < len(cases) {
		out = append(out, cases[start:])
	}
	return out
}

func (r *SuiteRunner) runBatch(ctx context.Context, runID string, batch []domain.TestCase, results []domain.CaseResult) error {
	g, childCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for _, tc := range batch {
		tc := tc
		g.Go(func() error {
			if childCtx.Err() != nil {
				return childCtx.Err()
			}
			results[tc.Order] = r.RunCase(childCtx, runID, tc)
			return nil
		})
	}
	return g.Wait()
}

// RunCase executes one case end to end. Failures of any step are recorded in
// the result, never returned.
func (r *SuiteRunner) RunCase(ctx context.Context, runID string, tc domain.TestCase) domain.CaseResult {
	began := time.Now()
	caseCtx := domain.TestCaseContext{
		RunID:   runID,
		CaseID:  tc.ID,
		APIName: tc.APIName,
		Now:     r.clock(),
		Values:  r.session.Snapshot(),
	}
	logger := r.logger.WithFields(map[string]any{"case_id": tc.ID, "api_name": tc.APIName})
	result := domain.CaseResult{CaseID: tc.ID, APIName: tc.APIName, Name: tc.Name, Order: tc.Order}

	fail := func(err error, step string) domain.CaseResult {
		logger.Errorf(ctx, err, "Case %s failed during %s", tc.ID, step)
		result.Status = domain.CaseStatusError
		result.Error = fmt.Sprintf("%s: %s", step, err.Error())
		result.Duration = time.Since(began)
		r.observe(result)
		return result
	}

	exp, err := validation.BuildExpectation(tc)
	if err != nil {
		return fail(err, "decode expectation")
	}
	result.Expected = exp.Expected

	var parseOpts []template.Option
	if len(r.cfg.TemplateFields) > 0 {
		parseOpts = append(parseOpts, template.WithFields(r.cfg.TemplateFields...))
	}
	tpl, err := template.Parse(tc.Request, parseOpts...)
	if err != nil {
		return fail(err, "parse request")
	}
	body, err := tpl.RenderForCase(caseCtx, r.cfg.FieldLayouts)
	if err != nil {
		return fail(err, "render request")
	}
	logger.Debugf(ctx, "Rendered request: %s", body)

	resp, err := r.transport.Send(ctx, caseCtx, body)
	if err != nil {
		return fail(err, "send request")
	}
	actual, err := document.Parse(resp.Body)
	if err != nil {
		return fail(errors.WrapAs(err, errors.CodeResponseParseError,
			fmt.Sprintf("HTTP %d response is not valid JSON", resp.StatusCode)), "parse response")
	}
	result.Actual = actual

	evaluator := r.evaluator
	if obs, ok := evaluator.(unruledFieldObserver); ok {
		evaluator = obs.WithUnruledFieldHook(func(path string) {
			logger.Debugf(ctx, "Accepted field without rule: %s", path)
		})
	}
	outcome := evaluator.Evaluate(caseCtx, exp, actual)
	result.Outcome = &outcome
	result.Status = domain.CaseStatusPassed
	if !outcome.Valid {
		result.Status = domain.CaseStatusFailed
		logger.Warnf(ctx, "Case %s failed: %d mismatched fields, %d failed validations",
			tc.ID, len(outcome.MismatchedFields), len(outcome.FailedValidations))
	}
	for _, w := range outcome.Warnings {
		logger.Warnf(ctx, "%s", w)
	}

	r.extract(ctx, logger, tc, actual)
	result.Duration = time.Since(began)
	r.observe(result)
	return result
}

func (r *SuiteRunner) extract(ctx context.Context, logger ports.Logger, tc domain.TestCase, actual any) {
	for name, path := range tc.Extract {
		v, ok := document.LookupPath(actual, path)
		if !ok || document.IsContainer(v) {
			logger.Warnf(ctx, "Cannot extract %s: no scalar at %s", name, path)
			continue
		}
		r.session.Set(name, v)
		logger.Debugf(ctx, "Extracted %s from %s", name, path)
	}
}

func (r *SuiteRunner) observe(result domain.CaseResult) {
	if r.metrics != nil {
		r.metrics.Observe(result)
	}
}
