package domain

import "strings"

// Rule keywords accepted in a rule specification.
const (
	RuleDatatype       = "Datatype"
	RuleMinLimit       = "MinLimit"
	RuleMaxLimit       = "MaxLimit"
	RuleLength         = "Length"
	RuleRegex          = "Regex"
	RuleTimeConstraint = "TimeConstraint"
	RuleDateConstraint = "DateConstraint"

	// Companion keys are parameters of another rule and never evaluated alone.
	RuleOffsetSeconds  = "OffsetSeconds"
	RuleOffsetDays     = "OffsetDays"
	RuleValidationType = "ValidationType"

	// Labels used for checks that are not a single rule keyword.
	CheckTimeRange        = "TimeRange"
	CheckDateRange        = "DateRange"
	CheckStatusCode       = "StatusCode"
	CheckStatusMessage    = "StatusMessage"
	CheckStatusPath       = "StatusPathNotFound"
	CheckResponseRootPath = "ResponseRootPath"

	// NASentinel disables every check it is attached to.
	NASentinel = "NA"
)

var knownRuleKeywords = []string{
	RuleDatatype, RuleMinLimit, RuleMaxLimit, RuleLength, RuleRegex,
	RuleTimeConstraint, RuleDateConstraint,
	RuleOffsetSeconds, RuleOffsetDays, RuleValidationType,
}

// CanonicalRuleKeyword maps a keyword to its canonical spelling. Unknown
// keywords are returned unchanged.
func CanonicalRuleKeyword(keyword string) string {
	trimmed := strings.TrimSpace(keyword)
	for _, k := range knownRuleKeywords {
		if strings.EqualFold(k, trimmed) {
			return k
		}
	}
	return trimmed
}

// IsCompanionKeyword reports keys that only parameterize another rule.
func IsCompanionKeyword(keyword string) bool {
	switch keyword {
	case RuleOffsetSeconds, RuleOffsetDays, RuleValidationType:
		return true
	}
	return false
}

// IsNA reports whether v is the NA sentinel string (case-insensitive).
func IsNA(v any) bool {
	s, ok := v.(string)
	return ok && strings.EqualFold(strings.TrimSpace(s), NASentinel)
}

// RuleSpec holds the rules attached to one field name.
type RuleSpec struct {
	NA    bool
	Rules map[string]any
}

func NARule() RuleSpec {
	return RuleSpec{NA: true}
}

func (s RuleSpec) Param(keyword string) (any, bool) {
	if s.NA || s.Rules == nil {
		return nil, false
	}
	v, ok := s.Rules[keyword]
	return v, ok
}

func (s RuleSpec) Has(keyword string) bool {
	_, ok := s.Param(keyword)
	return ok
}

// HasTimePair reports a TimeConstraint rule together with its offset.
func (s RuleSpec) HasTimePair() bool {
	return s.Has(RuleTimeConstraint) && s.Has(RuleOffsetSeconds)
}

// HasDatePair reports a DateConstraint rule together with its offset.
func (s RuleSpec) HasDatePair() bool {
	return s.Has(RuleDateConstraint) && s.Has(RuleOffsetDays)
}

// RuleSet maps a local field name to its rules. The same set is consulted at
// every nesting level.
type RuleSet map[string]RuleSpec

func (rs RuleSet) Lookup(field string) (RuleSpec, bool) {
	if rs == nil {
		return RuleSpec{}, false
	}
	spec, ok := rs[field]
	return spec, ok
}

func (rs RuleSet) IsNA(field string) bool {
	spec, ok := rs.Lookup(field)
	return ok && spec.NA
}
