package app

import (
	"context"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/config"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/internal/validation/template"
)

// CheckInput holds the documents of an offline check as JSON text. Empty
// Rules and Status mean "no rules" and "no status check".
type CheckInput struct {
	APIName  string
	Expected string
	Actual   string
	Rules    string
	Status   string
	Now      time.Time
}

// Check evaluates an actual document against an expectation without sending
// a request.
func Check(ctx context.Context, cfg *config.Config, in CheckInput) (domain.Outcome, error) {
	tc := domain.TestCase{
		ID:             "check",
		APIName:        in.APIName,
		Expected:       in.Expected,
		ExpectedStatus: in.Status,
		Rules:          in.Rules,
	}
	exp, err := validation.BuildExpectation(tc)
	if err != nil {
		return domain.Outcome{}, err
	}
	actual, err := document.ParseString(in.Actual)
	if err != nil {
		return domain.Outcome{}, errors.WrapAs(err, errors.CodeResponseParseError, "actual document is not valid JSON")
	}
	if ctx.Err() != nil {
		return domain.Outcome{}, ctx.Err()
	}

	caseCtx := domain.TestCaseContext{CaseID: tc.ID, APIName: in.APIName, Now: in.Now}
	return NewOracle(cfg).Evaluate(caseCtx, exp, actual), nil
}

// Render expands the placeholders and variables of a request template at now.
func Render(cfg *config.Config, src string, now time.Time, vars map[string]string) (string, error) {
	var opts []template.Option
	if len(cfg.Template.Fields) > 0 {
		opts = append(opts, template.WithFields(cfg.Template.Fields...))
	}
	tpl, err := template.Parse(src, opts...)
	if err != nil {
		return "", err
	}
	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values[k] = v
	}
	return tpl.Render(template.Bindings{Now: now, Values: values, Layouts: cfg.Template.FieldLayouts})
}
