package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/pkg/compare"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor  bool `mapstructure:"no_color" yaml:"no_color"`
	ShowDiff bool `mapstructure:"show_diff" yaml:"show_diff"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

type Option func(*Reporter)

// WithWriter sends the report somewhere other than stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		if w != nil {
			r.writer = w
		}
	}
}

func NewReporter(cfg Config, logger ports.Logger, opts ...Option) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

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

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, results []domain.CaseResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No test cases executed.")
		return nil
	}

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Contract Test Report")
	fmt.Fprintln(tw, "====================")
	fmt.Fprintln(tw, "Status\tCase\tAPI\tDuration\tDetails")
	fmt.Fprintln(tw, "------\t----\t---\t--------\t-------")

	var failed []domain.CaseResult
	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var statusStr, details string
		switch res.Status {
		case domain.CaseStatusPassed:
			statusStr = green("[PASS]")
			details = "All checks passed."
		case domain.CaseStatusFailed:
			statusStr = red("[FAIL]")
			details = summarizeOutcome(res.Outcome)
			failed = append(failed, res)
		case domain.CaseStatusError:
			statusStr = magenta("[ERROR]")
			details = truncate(res.Error)
		default:
			statusStr = "[UNKNOWN]"
			details = "Unknown case status."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", statusStr, res.CaseID, res.APIName,
			res.Duration.Round(time.Millisecond), details)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, res := range failed {
		r.writeFailure(res)
	}

	summary := domain.Summarize(results)
	tw = tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Cases:\t%d\n", summary.Total)
	fmt.Fprintf(tw, "Passed:\t%s\n", green(summary.Passed))
	fmt.Fprintf(tw, "Failed:\t%s\n", red(summary.Failed))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(summary.Errors))
	return tw.Flush()
}

func (r *Reporter) writeFailure(res domain.CaseResult) {
	fmt.Fprintf(r.writer, "\n%s %s (%s)\n", color.New(color.Bold).Sprint("Case"), res.CaseID, res.APIName)
	if res.Outcome != nil {
		writeList(r.writer, "Mismatched fields", res.Outcome.MismatchedFields)
		writeList(r.writer, "Failed validations", res.Outcome.FailedValidations)
		writeList(r.writer, "Reasons", res.Outcome.Diagnostics)
		writeList(r.writer, "Warnings", res.Outcome.Warnings)
	}
	if r.config.ShowDiff && (res.Expected != nil || res.Actual != nil) {
		if diff := compare.Diff(res.Expected, res.Actual); diff != "" {
			fmt.Fprintf(r.writer, "  Diff (-expected +actual):\n%s", indent(diff, "    "))
		}
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}

func summarizeOutcome(o *domain.Outcome) string {
	if o == nil {
		return "Failed without an outcome."
	}
	parts := make([]string, 0, 2)
	if n := len(o.MismatchedFields); n > 0 {
		parts = append(parts, fmt.Sprintf("%d mismatched %s", n, plural(n, "field", "fields")))
	}
	if n := len(o.FailedValidations); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed %s", n, plural(n, "validation", "validations")))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func truncate(s string) string {
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
	}
	return sb.String()
}
