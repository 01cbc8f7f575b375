package domain

import "time"

// TestCaseContext is created once per dispatched case and passed explicitly
// to rendering, transport and evaluation.
type TestCaseContext struct {
	RunID   string
	CaseID  string
	APIName string
	Now     time.Time
	// Values is a snapshot of session values taken at dispatch time.
	Values map[string]any
}

func (c TestCaseContext) Value(name string) (any, bool) {
	if c.Values == nil {
		return nil, false
	}
	v, ok := c.Values[name]
	return v, ok
}
