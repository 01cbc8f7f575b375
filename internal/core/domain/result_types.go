package domain

import "time"

type CaseStatus string

const (
	CaseStatusPassed CaseStatus = "PASSED"
	CaseStatusFailed CaseStatus = "FAILED"
	CaseStatusError  CaseStatus = "ERROR"
)

// Response is what a transport returns for one request.
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// CaseResult is the harness record of one executed case.
type CaseResult struct {
	CaseID   string        `json:"caseId"`
	APIName  string        `json:"apiName"`
	Name     string        `json:"name,omitempty"`
	Order    int           `json:"-"`
	Status   CaseStatus    `json:"status"`
	Outcome  *Outcome      `json:"outcome,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"durationMs"`
	Expected any           `json:"-"`
	Actual   any           `json:"-"`
}

// RunSummary counts results by status.
type RunSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

func Summarize(results []CaseResult) RunSummary {
	s := RunSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case CaseStatusPassed:
			s.Passed++
		case CaseStatusFailed:
			s.Failed++
		default:
			s.Errors++
		}
	}
	return s
}

func (s RunSummary) Succeeded() bool {
	return s.Failed == 0 && s.Errors == 0
}
