package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalRuleKeyword(t *testing.T) {
	assert.Equal(t, RuleMinLimit, CanonicalRuleKeyword("minlimit"))
	assert.Equal(t, RuleOffsetSeconds, CanonicalRuleKeyword(" OFFSETSECONDS "))
	assert.Equal(t, "Checksum", CanonicalRuleKeyword("Checksum"))
}

func TestIsNA(t *testing.T) {
	assert.True(t, IsNA("NA"))
	assert.True(t, IsNA("na"))
	assert.False(t, IsNA("N/A"))
	assert.False(t, IsNA(nil))
	assert.False(t, IsNA(map[string]any{"Datatype": "NA"}))
}

func TestRuleSpec(t *testing.T) {
	spec := RuleSpec{Rules: map[string]any{
		RuleTimeConstraint: "current",
		RuleOffsetSeconds:  -900,
	}}

	assert.True(t, spec.HasTimePair())
	assert.False(t, spec.HasDatePair())

	na := NARule()
	assert.False(t, na.Has(RuleTimeConstraint))

	set := RuleSet{"id": na, "created_at": spec}
	assert.True(t, set.IsNA("id"))
	assert.False(t, set.IsNA("created_at"))
	_, ok := RuleSet(nil).Lookup("id")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]CaseResult{
		{Status: CaseStatusPassed},
		{Status: CaseStatusFailed},
		{Status: CaseStatusError},
		{Status: CaseStatusPassed},
	})

	assert.Equal(t, RunSummary{Total: 4, Passed: 2, Failed: 1, Errors: 1}, s)
	assert.False(t, s.Succeeded())
}
