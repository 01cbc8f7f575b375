package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/api-contract-oracle/internal/adapters/suite/file"
	"github.com/olusolaa/api-contract-oracle/internal/adapters/suite/s3"
	"github.com/olusolaa/api-contract-oracle/internal/adapters/transport/graphql"
	"github.com/olusolaa/api-contract-oracle/internal/config"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/core/service"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/log"
	"github.com/olusolaa/api-contract-oracle/internal/metrics"
	"github.com/olusolaa/api-contract-oracle/internal/reporting/json"
	"github.com/olusolaa/api-contract-oracle/internal/reporting/text"
	"github.com/olusolaa/api-contract-oracle/internal/validation"
	"github.com/olusolaa/api-contract-oracle/internal/validation/comparator"
)

// Viper keys read next to the configuration tree.
const (
	KeyVariables = "vars"
	KeySkip      = "skip"
)

type Application struct {
	Runner  *service.SuiteRunner
	Metrics *metrics.Recorder
	Logger  ports.Logger
	Config  *config.Config
}

type buildOptions struct {
	transport    ports.Transport
	reportWriter io.Writer
	logWriter    io.Writer
}

type Option func(*buildOptions)

// WithTransport replaces the GraphQL client.
func WithTransport(t ports.Transport) Option {
	return func(o *buildOptions) { o.transport = t }
}

// WithReportWriter sends the report somewhere other than stdout.
func WithReportWriter(w io.Writer) Option {
	return func(o *buildOptions) { o.reportWriter = w }
}

func WithLogWriter(w io.Writer) Option {
	return func(o *buildOptions) { o.logWriter = w }
}

// LoadConfig unmarshals and validates the configuration, applies command
// line overrides and builds the logger.
func LoadConfig(ctx context.Context, v *viper.Viper, opts ...Option) (*config.Config, ports.Logger, error) {
	o := collect(opts)
	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logger, err := newLogger(cfg.LogConfig(), o.logWriter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if skips := parseSkipOverride(v.GetString(KeySkip)); len(skips) > 0 {
		logger.Debugf(ctx, "Applying %d skip rule overrides from command line", len(skips))
		cfg.Oracle.SkipRules = append(cfg.Oracle.SkipRules, skips...)
	}

	if err := cfg.Validate(ctx); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")
	return cfg, logger, nil
}

func collect(opts []Option) buildOptions {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newLogger(cfg log.Config, w io.Writer) (ports.Logger, error) {
	if w != nil {
		return log.NewLoggerWithWriter(cfg, w)
	}
	return log.NewLogger(cfg)
}

// NewOracle builds the evaluator with the configured field tables.
func NewOracle(cfg *config.Config) *validation.Oracle {
	var opts []comparator.Option
	if len(cfg.Oracle.VolatileFields) > 0 {
		opts = append(opts, comparator.WithVolatileFields(cfg.Oracle.VolatileFields...))
	}
	if len(cfg.Oracle.TemporalFields) > 0 {
		opts = append(opts, comparator.WithTemporalFields(cfg.Oracle.TemporalFields...))
	}
	if len(cfg.Oracle.SkipRules) > 0 {
		opts = append(opts, comparator.WithSkipRules(cfg.Oracle.SkipRules...))
	}
	return validation.New(opts...)
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...Option) (*Application, error) {
	o := collect(opts)
	cfg, logger, err := LoadConfig(ctx, v, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireRunnable(); err != nil {
		return nil, err
	}

	registry, err := buildRegistry(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	transport := o.transport
	if transport == nil {
		tLog := logger.WithFields(map[string]any{"component": "transport"})
		transport, err = graphql.NewClient(graphql.Config{
			Endpoint: cfg.Transport.Endpoint,
			Token:    cfg.Transport.Token,
			Timeout:  cfg.Transport.Timeout,
			RPS:      cfg.Transport.RPS,
			Headers:  cfg.Transport.Headers,
		}, tLog)
		if err != nil {
			return nil, err
		}
		tLog.Infof(ctx, "Using GraphQL endpoint: %s", cfg.Transport.Endpoint)
	}

	reporter, err := buildReporter(ctx, cfg, logger, o.reportWriter)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	runner, err := service.NewSuiteRunner(
		registry, transport, NewOracle(cfg), reporter,
		logger.WithFields(map[string]any{"component": "runner"}),
		service.RunnerConfig{
			SuiteLocation:  cfg.Suite.Location,
			Concurrency:    cfg.Settings.Concurrency,
			Variables:      Variables(v),
			FieldLayouts:   cfg.Template.FieldLayouts,
			TemplateFields: cfg.Template.Fields,
		},
		service.WithMetrics(recorder),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize suite runner")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return &Application{Runner: runner, Metrics: recorder, Logger: logger, Config: cfg}, nil
}

// buildRegistry always registers the file source; the S3 source is only
// created when the suite lives in S3 so local runs need no AWS setup.
func buildRegistry(ctx context.Context, cfg *config.Config, logger ports.Logger) (*service.ComponentRegistry, error) {
	registry := service.NewComponentRegistry()
	srcLog := logger.WithFields(map[string]any{"component": "suite_source"})
	if err := registry.RegisterSuiteSource(file.NewSource(srcLog)); err != nil {
		return nil, err
	}

	if service.SchemeOf(cfg.Suite.Location) == s3.Scheme {
		source, err := s3.NewSource(ctx, s3.Config{Region: cfg.Suite.Region, RPS: cfg.Suite.RPS}, srcLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize S3 suite source")
		}
		if err := registry.RegisterSuiteSource(source); err != nil {
			return nil, err
		}
		srcLog.Infof(ctx, "Using S3 suite source (Region: %s)", cfg.Suite.Region)
	}
	return registry, nil
}

func buildReporter(ctx context.Context, cfg *config.Config, logger ports.Logger, w io.Writer) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": cfg.Settings.ReporterType})
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		if cfg.Settings.Reporter.Text == nil {
			cfg.Settings.Reporter.Text = &text.Config{}
		}
		reporter, err := text.NewReporter(*cfg.Settings.Reporter.Text, reportLog, text.WithWriter(w))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		reportLog.Debugf(ctx, "Using Text reporter (Color: %t)", !cfg.Settings.Reporter.Text.NoColor)
		return reporter, nil
	case json.ReporterTypeJSON:
		if cfg.Settings.Reporter.JSON == nil {
			cfg.Settings.Reporter.JSON = &json.Config{}
		}
		reporter, err := json.NewReporter(*cfg.Settings.Reporter.JSON, reportLog, json.WithWriter(w))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
		return reporter, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
}

// Run executes the suite. Failing or erroring cases yield a CASES_FAILED
// error after the report has been written.
func (a *Application) Run(ctx context.Context) (domain.RunSummary, error) {
	a.Logger.Infof(ctx, "Starting contract test run...")

	summary, err := a.Runner.Run(ctx)
	if path := a.Config.Metrics.TextfilePath; path != "" {
		if mErr := a.Metrics.WriteTextfile(path); mErr != nil {
			a.Logger.Warnf(ctx, "Could not write metrics: %v", mErr)
		}
	}
	if err != nil {
		a.Logger.Errorf(ctx, err, "Contract test run failed")
		return summary, err
	}

	if !summary.Succeeded() {
		return summary, errors.NewUserFacing(errors.CodeCasesFailed,
			fmt.Sprintf("%d of %d cases failed, %d errored", summary.Failed, summary.Total, summary.Errors),
			"See the report above for mismatched fields and failed validations.")
	}
	a.Logger.Infof(ctx, "Contract test run completed successfully")
	return summary, nil
}
