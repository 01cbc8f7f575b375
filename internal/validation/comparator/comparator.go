// Package comparator walks an expected and an actual document side by side
// and records every divergence into an Outcome.
package comparator

import (
	"fmt"
	"sort"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/internal/validation/rules"
)

type Option func(*Comparator)

// WithVolatileFields adds names to the default volatile set.
func WithVolatileFields(names ...string) Option {
	return func(c *Comparator) {
		c.volatile.add(names...)
	}
}

// WithTemporalFields adds names to the default temporal set.
func WithTemporalFields(names ...string) Option {
	return func(c *Comparator) {
		c.temporal.add(names...)
	}
}

// WithSkipRules adds per-API fields whose value and rules are not checked.
func WithSkipRules(skips ...domain.SkipRule) Option {
	return func(c *Comparator) {
		c.skips.add(skips...)
	}
}

// WithUnruledFieldHook is called for every field present only in the actual
// document and carrying no rule. Such fields are accepted.
func WithUnruledFieldHook(fn func(path string)) Option {
	return func(c *Comparator) {
		c.onUnruled = fn
	}
}

// Comparator is bound to the now of one test case.
type Comparator struct {
	validator *rules.Validator
	volatile  fieldSet
	temporal  fieldSet
	skips     skipTable
	onUnruled func(path string)
}

func New(now time.Time, opts ...Option) *Comparator {
	c := &Comparator{
		validator: rules.NewValidator(now),
		volatile:  newFieldSet(domain.DefaultVolatileFields...),
		temporal:  newFieldSet(domain.TemporalFields...),
		skips:     skipTable{},
	}
	c.skips.add(domain.DefaultSkipRules...)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare walks expected against actual starting at path.
func (c *Comparator) Compare(expected, actual any, path string, ruleSet domain.RuleSet, apiName string) domain.Outcome {
	b := domain.NewOutcomeBuilder()
	w := walker{Comparator: c, b: b, rules: ruleSet, apiName: apiName}
	w.compare(expected, actual, path)
	return b.Build()
}

type walker struct {
	*Comparator
	b       *domain.OutcomeBuilder
	rules   domain.RuleSet
	apiName string
}

func (w walker) compare(expected, actual any, path string) {
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			w.shapeMismatch(path, expected, actual)
			return
		}
		w.compareObjects(exp, act, path)
	case []any:
		act, ok := actual.([]any)
		if !ok {
			w.shapeMismatch(path, expected, actual)
			return
		}
		w.compareArrays(exp, act, path)
	default:
		if document.IsContainer(actual) {
			w.shapeMismatch(path, expected, actual)
			return
		}
		w.compareScalars(expected, actual, path)
	}
}

func (w walker) compareObjects(expected, actual map[string]any, path string) {
	for _, key := range sortedKeys(expected) {
		child := document.Child(path, key)
		spec, hasRule := w.rules.Lookup(key)
		if hasRule && spec.NA {
			continue
		}

		actValue, present := actual[key]
		if !present {
			w.b.AddMismatch(child, fmt.Sprintf("%s: field missing in actual response", child))
			continue
		}
		if w.skips.skips(w.apiName, key) {
			continue
		}

		expValue := expected[key]
		if document.IsContainer(expValue) {
			w.compare(expValue, actValue, child)
			continue
		}

		if document.IsContainer(actValue) {
			w.shapeMismatch(child, expValue, actValue)
		} else if !(hasRule && w.isVolatile(key)) {
			w.compare(expValue, actValue, child)
		}
		if hasRule {
			w.validator.Validate(actValue, spec, child).Apply(w.b)
		}
	}

	for _, key := range sortedKeys(actual) {
		if _, ok := expected[key]; ok {
			continue
		}
		child := document.Child(path, key)
		spec, hasRule := w.rules.Lookup(key)
		if !hasRule {
			if w.onUnruled != nil {
				w.onUnruled(child)
			}
			continue
		}
		if spec.NA || w.skips.skips(w.apiName, key) {
			continue
		}
		if w.isTemporal(key) {
			if report, handled := w.validator.ValidateTemporal(actual[key], spec, child); handled {
				report.Apply(w.b)
				continue
			}
		}
		w.validator.Validate(actual[key], spec, child).Apply(w.b)
	}
}

func (w walker) compareArrays(expected, actual []any, path string) {
	if len(expected) != len(actual) {
		label := document.Label(path) + " (Array size mismatch)"
		w.b.AddMismatch(label, fmt.Sprintf("%s: expected %d elements, got %d", document.Label(path), len(expected), len(actual)))
		return
	}
	for i := range expected {
		w.compare(expected[i], actual[i], document.Index(path, i))
	}
}

func (w walker) compareScalars(expected, actual any, path string) {
	exp, act := document.Text(expected), document.Text(actual)
	if exp != act {
		w.b.AddMismatch(document.Label(path),
			fmt.Sprintf("%s: expected %q, got %q", document.Label(path), exp, act))
	}
}

func (w walker) shapeMismatch(path string, expected, actual any) {
	label := document.Label(path) + " (Shape mismatch)"
	w.b.AddMismatch(label, fmt.Sprintf("%s: expected %s, got %s",
		document.Label(path), document.KindOf(expected), document.KindOf(actual)))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
