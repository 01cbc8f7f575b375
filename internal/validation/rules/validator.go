// Package rules evaluates field-level rule specifications.
package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
)

// Failure is one rule that did not hold for a field.
type Failure struct {
	Path   string
	Rule   string
	Reason string
}

// Label renders the failure as "path:Rule".
func (f Failure) Label() string {
	return labelFor(f.Path, f.Rule)
}

// Report is the result of validating one field against its rule spec.
type Report struct {
	Failures []Failure
	Warnings []string
}

func (r Report) Passed() bool {
	return len(r.Failures) == 0
}

// Apply records the report into an outcome builder.
func (r Report) Apply(b *domain.OutcomeBuilder) {
	for _, f := range r.Failures {
		b.AddFailure(f.Label(), f.Reason)
	}
	for _, w := range r.Warnings {
		b.AddWarning(w)
	}
}

type check struct {
	value any
	param any
	spec  domain.RuleSpec
	path  string
	now   time.Time
}

// predicate returns an empty string on success and the failure reason
// otherwise.
type predicate func(c check) string

var dispatch = map[string]predicate{
	domain.RuleDatatype:       checkDatatype,
	domain.RuleMinLimit:       checkMinLimit,
	domain.RuleMaxLimit:       checkMaxLimit,
	domain.RuleLength:         checkLength,
	domain.RuleRegex:          checkRegex,
	domain.RuleTimeConstraint: checkTimeConstraint,
	domain.RuleDateConstraint: checkDateConstraint,
}

var canonicalOrder = []string{
	domain.RuleDatatype,
	domain.RuleMinLimit,
	domain.RuleMaxLimit,
	domain.RuleLength,
	domain.RuleRegex,
	domain.RuleTimeConstraint,
	domain.RuleDateConstraint,
}

// Validator applies rule specs to values. It is bound to the now of one test
// case and holds no other state.
type Validator struct {
	now time.Time
}

func NewValidator(now time.Time) *Validator {
	return &Validator{now: now}
}

// Validate runs every rule of spec against value. The NA spec passes.
func (v *Validator) Validate(value any, spec domain.RuleSpec, path string) Report {
	var report Report
	if spec.NA {
		return report
	}

	for _, keyword := range orderedKeywords(spec) {
		param := spec.Rules[keyword]
		if domain.IsNA(param) {
			continue
		}
		pred, known := dispatch[keyword]
		if !known {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("unknown validation rule %q for field %s", keyword, labelPath(path)))
			continue
		}
		reason := pred(check{value: value, param: param, spec: spec, path: path, now: v.now})
		if reason != "" {
			report.Failures = append(report.Failures, Failure{
				Path:   path,
				Rule:   keyword,
				Reason: fmt.Sprintf("%s: %s", labelFor(path, keyword), reason),
			})
		}
	}
	return report
}

func orderedKeywords(spec domain.RuleSpec) []string {
	out := make([]string, 0, len(spec.Rules))
	for _, k := range canonicalOrder {
		if _, ok := spec.Rules[k]; ok {
			out = append(out, k)
		}
	}
	var unknown []string
	for k := range spec.Rules {
		if _, ok := dispatch[k]; ok || domain.IsCompanionKeyword(k) {
			continue
		}
		unknown = append(unknown, k)
	}
	sort.Strings(unknown)
	return append(out, unknown...)
}

// ValidateTemporal checks value against only the time or date pair of spec.
// Failures are labelled TimeRange or DateRange. The boolean is false when
// spec carries neither pair.
func (v *Validator) ValidateTemporal(value any, spec domain.RuleSpec, path string) (Report, bool) {
	var (
		report Report
		label  string
		pred   predicate
		param  any
	)
	switch {
	case spec.HasTimePair():
		label, pred = domain.CheckTimeRange, checkTimeConstraint
		param, _ = spec.Param(domain.RuleTimeConstraint)
	case spec.HasDatePair():
		label, pred = domain.CheckDateRange, checkDateConstraint
		param, _ = spec.Param(domain.RuleDateConstraint)
	default:
		return report, false
	}

	if reason := pred(check{value: value, param: param, spec: spec, path: path, now: v.now}); reason != "" {
		report.Failures = append(report.Failures, Failure{
			Path:   path,
			Rule:   label,
			Reason: fmt.Sprintf("%s: %s", labelFor(path, label), reason),
		})
	}
	return report, true
}
