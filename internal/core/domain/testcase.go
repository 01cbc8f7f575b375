package domain

// TestCase is one row of a suite. Document-valued cells hold JSON text; an
// empty or "NA" cell means the column is absent.
type TestCase struct {
	ID             string            `yaml:"id" json:"id" validate:"required"`
	APIName        string            `yaml:"api_name" json:"api_name" validate:"required"`
	Name           string            `yaml:"name" json:"name,omitempty"`
	Request        string            `yaml:"request" json:"request" validate:"required"`
	Expected       string            `yaml:"expected" json:"expected,omitempty"`
	ExpectedStatus string            `yaml:"expected_status" json:"expected_status,omitempty"`
	Rules          string            `yaml:"rules" json:"rules,omitempty"`
	Extract        map[string]string `yaml:"extract" json:"extract,omitempty" validate:"omitempty,dive,keys,required,endkeys,required"`

	// Order is the position of the case in its suite.
	Order int `yaml:"-" json:"-"`
}

// Suite is a decoded suite file.
type Suite struct {
	Variables map[string]string `yaml:"variables" json:"variables,omitempty"`
	Cases     []TestCase        `yaml:"cases" json:"cases" validate:"required,min=1,dive"`
}

// StatusExpectation is the decoded expected_status cell.
type StatusExpectation struct {
	Status           string
	StatusMessage    string
	ResponseRootPath string
}

// CaseExpectation bundles everything a case is checked against. A nil Status
// disables the status check and root narrowing falls back to the data root.
type CaseExpectation struct {
	Expected any
	Rules    RuleSet
	Status   *StatusExpectation
}
