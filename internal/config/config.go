package config

import (
	"context"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/log"
	"github.com/olusolaa/api-contract-oracle/internal/reporting/json"
	"github.com/olusolaa/api-contract-oracle/internal/reporting/text"
)

type Config struct {
	Settings  SettingsConfig  `mapstructure:"settings"`
	Suite     SuiteConfig     `mapstructure:"suite"`
	Transport TransportConfig `mapstructure:"transport"`
	Oracle    OracleConfig    `mapstructure:"oracle"`
	Template  TemplateConfig  `mapstructure:"template"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat    log.Format      `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Concurrency  int             `mapstructure:"concurrency" validate:"gte=1,lte=256"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text"`
	JSON *json.Config `mapstructure:"json"`
}

// SuiteConfig locates the suite file: a local path or s3://bucket/key.
type SuiteConfig struct {
	Location string `mapstructure:"location"`
	// Region and RPS apply to S3 locations only.
	Region string `mapstructure:"region"`
	RPS    int    `mapstructure:"rps" validate:"gte=0,lte=100"`
}

type TransportConfig struct {
	Endpoint string            `mapstructure:"endpoint" validate:"omitempty,url"`
	Token    string            `mapstructure:"token"`
	Timeout  time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	RPS      int               `mapstructure:"rps" validate:"gte=0,lte=100"`
	Headers  map[string]string `mapstructure:"headers"`
}

// OracleConfig extends the built-in field tables of the comparator.
type OracleConfig struct {
	VolatileFields []string          `mapstructure:"volatile_fields"`
	TemporalFields []string          `mapstructure:"temporal_fields"`
	SkipRules      []domain.SkipRule `mapstructure:"skip_rules" validate:"dive"`
}

type TemplateConfig struct {
	// Fields replaces the default placeholder allow-list when non-empty.
	Fields []string `mapstructure:"fields"`
	// FieldLayouts renders the named fields with a custom Go time layout.
	FieldLayouts map[string]string `mapstructure:"field_layouts"`
}

type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"`
}

func (c *Config) LogConfig() log.Config {
	return log.Config{Level: c.Settings.LogLevel, Format: c.Settings.LogFormat}
}

// Validate checks the struct tags of the whole configuration.
func (c *Config) Validate(ctx context.Context) error {
	return ValidateStruct(ctx, c, errors.CodeConfigValidation, "Configuration",
		"Please check your configuration file or flags.")
}

// RequireRunnable checks the settings only the run command needs.
func (c *Config) RequireRunnable() error {
	if c.Suite.Location == "" {
		return errors.NewUserFacing(errors.CodeConfigValidation, "no suite location configured",
			"Pass --suite or set suite.location.")
	}
	if c.Transport.Endpoint == "" {
		return errors.NewUserFacing(errors.CodeConfigValidation, "no transport endpoint configured",
			"Pass --endpoint or set transport.endpoint.")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  10,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
				JSON: &json.Config{},
			},
		},
		Suite: SuiteConfig{
			RPS: 20,
		},
		Transport: TransportConfig{
			Timeout: 30 * time.Second,
			RPS:     20,
		},
	}
}
