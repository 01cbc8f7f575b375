package rules

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000500, 0)

func spec(rules map[string]any) domain.RuleSpec {
	return domain.RuleSpec{Rules: rules}
}

func labels(r Report) []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Label())
	}
	return out
}

func TestValidator_Datatype(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		datatype string
		pass     bool
	}{
		{"string", "abc", "String", true},
		{"number is not string", json.Number("1"), "string", false},
		{"integer number", json.Number("42"), "int", true},
		{"integer text", "-42", "integer", true},
		{"decimal is not int", json.Number("4.2"), "int", false},
		{"double number", json.Number("4.2"), "double", true},
		{"double text", "4.20", "float", true},
		{"bad double text", "4.", "double", false},
		{"boolean", true, "boolean", true},
		{"boolean text", "true", "boolean", false},
		{"unknown datatype", "abc", "uuid", false},
	}

	v := NewValidator(fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.Validate(tt.value, spec(map[string]any{domain.RuleDatatype: tt.datatype}), "field")
			assert.Equal(t, tt.pass, r.Passed(), "failures: %v", r.Failures)
			if !tt.pass {
				assert.Equal(t, []string{"field:Datatype"}, labels(r))
			}
		})
	}
}

func TestValidator_Limits(t *testing.T) {
	v := NewValidator(fixedNow)
	limits := spec(map[string]any{domain.RuleMinLimit: json.Number("18"), domain.RuleMaxLimit: json.Number("65")})

	r := v.Validate(json.Number("10"), limits, "age")
	assert.Equal(t, []string{"age:MinLimit"}, labels(r))

	r = v.Validate(json.Number("70"), limits, "age")
	assert.Equal(t, []string{"age:MaxLimit"}, labels(r))

	assert.True(t, v.Validate("18", limits, "age").Passed())
	assert.True(t, v.Validate(json.Number("65"), limits, "age").Passed())

	r = v.Validate("old", limits, "age")
	assert.Equal(t, []string{"age:MinLimit", "age:MaxLimit"}, labels(r))
	assert.Contains(t, r.Failures[0].Reason, "not numeric")

	r = v.Validate(json.Number("20"), spec(map[string]any{domain.RuleMinLimit: "eighteen"}), "age")
	assert.Equal(t, []string{"age:MinLimit"}, labels(r))
}

func TestValidator_NAParameterPasses(t *testing.T) {
	v := NewValidator(fixedNow)
	for _, value := range []any{"abc", json.Number("-1"), nil, map[string]any{}} {
		r := v.Validate(value, spec(map[string]any{domain.RuleMinLimit: "NA"}), "x")
		assert.True(t, r.Passed())
	}
	assert.True(t, v.Validate("anything", domain.NARule(), "x").Passed())
}

func TestValidator_LengthAndRegex(t *testing.T) {
	v := NewValidator(fixedNow)

	assert.True(t, v.Validate("héllo", spec(map[string]any{domain.RuleLength: json.Number("5")}), "name").Passed())
	assert.Equal(t, []string{"name:Length"},
		labels(v.Validate("hello!", spec(map[string]any{domain.RuleLength: json.Number("5")}), "name")))

	assert.True(t, v.Validate("AB-123", spec(map[string]any{domain.RuleRegex: `[A-Z]{2}-\d+`}), "code").Passed())
	assert.Equal(t, []string{"code:Regex"},
		labels(v.Validate("xAB-123", spec(map[string]any{domain.RuleRegex: `[A-Z]{2}-\d+`}), "code")))

	r := v.Validate("x", spec(map[string]any{domain.RuleRegex: `(`}), "code")
	require.Len(t, r.Failures, 1)
	assert.Contains(t, r.Failures[0].Reason, "invalid pattern")
}

func TestValidator_TimeConstraint(t *testing.T) {
	v := NewValidator(fixedNow)
	window := spec(map[string]any{
		domain.RuleTimeConstraint: "current",
		domain.RuleOffsetSeconds:  json.Number("-900"),
	})

	assert.True(t, v.Validate(json.Number("1699999600"), window, "created_at").Passed())
	assert.Equal(t, []string{"created_at:TimeConstraint"},
		labels(v.Validate(json.Number("1699999599"), window, "created_at")))

	r := v.Validate("1700000000", spec(map[string]any{domain.RuleTimeConstraint: "current"}), "created_at")
	assert.Equal(t, []string{"created_at:TimeConstraint"}, labels(r))
	assert.Contains(t, r.Failures[0].Reason, "OffsetSeconds is required")
}

func TestValidator_DateConstraint(t *testing.T) {
	v := NewValidator(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	day := spec(map[string]any{
		domain.RuleDateConstraint: "today",
		domain.RuleOffsetDays:     json.Number("2"),
	})

	assert.True(t, v.Validate("2024-01-03", day, "due").Passed())
	assert.Equal(t, []string{"due:DateConstraint"}, labels(v.Validate("2024-01-02", day, "due")))
}

func TestValidator_UnknownRuleWarns(t *testing.T) {
	v := NewValidator(fixedNow)
	r := v.Validate("abc", spec(map[string]any{"Checksum": "crc32", domain.RuleLength: json.Number("3")}), "")

	assert.True(t, r.Passed())
	assert.Equal(t, []string{`unknown validation rule "Checksum" for field $`}, r.Warnings)
}

func TestValidator_CanonicalOrder(t *testing.T) {
	v := NewValidator(fixedNow)
	r := v.Validate("toolong", spec(map[string]any{
		domain.RuleRegex:    `\d+`,
		domain.RuleLength:   json.Number("2"),
		domain.RuleDatatype: "int",
	}), "n")

	assert.Equal(t, []string{"n:Datatype", "n:Length", "n:Regex"}, labels(r))
}

func TestValidator_ValidateTemporal(t *testing.T) {
	v := NewValidator(fixedNow)

	r, ok := v.ValidateTemporal("1699999599", spec(map[string]any{
		domain.RuleTimeConstraint: "current",
		domain.RuleOffsetSeconds:  json.Number("-900"),
	}), "data.last_sync")
	require.True(t, ok)
	assert.Equal(t, []string{"data.last_sync:TimeRange"}, labels(r))

	r, ok = v.ValidateTemporal("2023-11-14", spec(map[string]any{
		domain.RuleDateConstraint: "today",
		domain.RuleOffsetDays:     json.Number("0"),
	}), "toDate")
	require.True(t, ok)
	assert.True(t, r.Passed())

	_, ok = v.ValidateTemporal("x", spec(map[string]any{domain.RuleTimeConstraint: "current"}), "x")
	assert.False(t, ok)
}

func TestReport_Apply(t *testing.T) {
	b := domain.NewOutcomeBuilder()
	Report{
		Failures: []Failure{{Path: "age", Rule: domain.RuleMinLimit, Reason: "too small"}},
		Warnings: []string{"w"},
	}.Apply(b)

	out := b.Build()
	assert.False(t, out.Valid)
	assert.Equal(t, []string{"age:MinLimit"}, out.FailedValidations)
	assert.Equal(t, []string{"too small"}, out.Diagnostics)
	assert.Equal(t, []string{"w"}, out.Warnings)
}
