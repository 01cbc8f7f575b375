package domain

// Outcome is the verdict of one comparison. It is built by a single owner and
// handed out by value; callers combine outcomes with Merge.
type Outcome struct {
	Valid             bool     `json:"isValid"`
	MismatchedFields  []string `json:"mismatchedFields"`
	FailedValidations []string `json:"failedValidations"`
	Diagnostics       []string `json:"diagnostics,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}

// ValidOutcome is the outcome of a comparison that found nothing.
func ValidOutcome() Outcome {
	return NewOutcomeBuilder().Build()
}

// Merge returns the union of o and other, keeping o's entries first.
func (o Outcome) Merge(other Outcome) Outcome {
	b := NewOutcomeBuilder()
	b.Absorb(o)
	b.Absorb(other)
	return b.Build()
}

// OutcomeBuilder accumulates ordered, de-duplicated diagnostics.
type OutcomeBuilder struct {
	mismatched  orderedSet
	failed      orderedSet
	diagnostics []string
	warnings    orderedSet
}

func NewOutcomeBuilder() *OutcomeBuilder {
	return &OutcomeBuilder{}
}

func (b *OutcomeBuilder) AddMismatch(field, reason string) {
	b.mismatched.add(field)
	if reason != "" {
		b.diagnostics = append(b.diagnostics, reason)
	}
}

func (b *OutcomeBuilder) AddFailure(label, reason string) {
	b.failed.add(label)
	if reason != "" {
		b.diagnostics = append(b.diagnostics, reason)
	}
}

func (b *OutcomeBuilder) AddWarning(warning string) {
	b.warnings.add(warning)
}

func (b *OutcomeBuilder) Absorb(o Outcome) {
	for _, f := range o.MismatchedFields {
		b.mismatched.add(f)
	}
	for _, f := range o.FailedValidations {
		b.failed.add(f)
	}
	b.diagnostics = append(b.diagnostics, o.Diagnostics...)
	for _, w := range o.Warnings {
		b.warnings.add(w)
	}
}

func (b *OutcomeBuilder) Build() Outcome {
	out := Outcome{
		MismatchedFields:  b.mismatched.values(),
		FailedValidations: b.failed.values(),
		Warnings:          b.warnings.valuesOrNil(),
	}
	if len(b.diagnostics) > 0 {
		out.Diagnostics = append([]string(nil), b.diagnostics...)
	}
	out.Valid = len(out.MismatchedFields) == 0 && len(out.FailedValidations) == 0
	return out
}

type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *orderedSet) valuesOrNil() []string {
	if len(s.items) == 0 {
		return nil
	}
	return s.values()
}
