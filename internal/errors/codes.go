package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeTimeout          Code = "TIMEOUT_ERROR"

	// Oracle error codes
	CodeUnsupportedConstraint Code = "UNSUPPORTED_CONSTRAINT"
	CodeUnparseableTimestamp  Code = "UNPARSEABLE_TIMESTAMP"
	CodeStatusPathNotFound    Code = "STATUS_PATH_NOT_FOUND"
	CodeRuleSetParseError     Code = "RULESET_PARSE_ERROR"
	CodeTemplateParseError    Code = "TEMPLATE_PARSE_ERROR"
	CodeDocumentParseError    Code = "DOCUMENT_PARSE_ERROR"
	CodeConstraintViolation   Code = "CONSTRAINT_VIOLATION"

	// Harness error codes
	CodeSuiteReadError     Code = "SUITE_READ_ERROR"
	CodeSuiteParseError    Code = "SUITE_PARSE_ERROR"
	CodeSuiteNotFound      Code = "SUITE_NOT_FOUND"
	CodeStorageAuthError   Code = "STORAGE_AUTH_ERROR"
	CodeTransportError     Code = "TRANSPORT_ERROR"
	CodeResponseParseError Code = "RESPONSE_PARSE_ERROR"
	CodeReportError        Code = "REPORT_ERROR"
	CodeCasesFailed        Code = "CASES_FAILED"
)

func (c Code) String() string {
	return string(c)
}
