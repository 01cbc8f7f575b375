package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/olusolaa/api-contract-oracle/internal/validation/constraint"
	"github.com/olusolaa/api-contract-oracle/internal/validation/document"
	"github.com/olusolaa/api-contract-oracle/pkg/convert"
)

var (
	integerText = regexp.MustCompile(`^-?\d+$`)
	decimalText = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

func checkDatatype(c check) string {
	want := strings.ToLower(strings.TrimSpace(document.Text(c.param)))
	kind := document.KindOf(c.value)

	var ok bool
	switch want {
	case "string":
		ok = kind == document.KindString
	case "int", "integer":
		ok = document.IsIntegral(c.value) ||
			(kind == document.KindString && integerText.MatchString(document.Text(c.value)))
	case "double", "float":
		ok = kind == document.KindNumber ||
			(kind == document.KindString && decimalText.MatchString(document.Text(c.value)))
	case "boolean":
		ok = kind == document.KindBool
	default:
		return fmt.Sprintf("unknown datatype %q", document.Text(c.param))
	}
	if !ok {
		return fmt.Sprintf("expected %s, got %s %q", want, kind, document.Text(c.value))
	}
	return ""
}

func checkMinLimit(c check) string {
	return checkLimit(c, "minimum", func(value, bound float64) bool { return value >= bound })
}

func checkMaxLimit(c check) string {
	return checkLimit(c, "maximum", func(value, bound float64) bool { return value <= bound })
}

func checkLimit(c check, name string, within func(value, bound float64) bool) string {
	bound, err := convert.ToFloat64(c.param)
	if err != nil {
		return fmt.Sprintf("%s limit %q is not numeric", name, document.Text(c.param))
	}
	value, err := numericValue(c.value)
	if err != nil {
		return fmt.Sprintf("value %q is not numeric", document.Text(c.value))
	}
	if !within(value, bound) {
		return fmt.Sprintf("value %v is outside the %s of %v", value, name, bound)
	}
	return ""
}

func numericValue(v any) (float64, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return convert.ToFloat64(v)
}

func checkLength(c check) string {
	want, err := convert.ToInt64(c.param)
	if err != nil {
		return fmt.Sprintf("length %q is not an integer", document.Text(c.param))
	}
	got := utf8.RuneCountInString(document.Text(c.value))
	if int64(got) != want {
		return fmt.Sprintf("expected length %d, got %d", want, got)
	}
	return ""
}

func checkRegex(c check) string {
	pattern := document.Text(c.param)
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return fmt.Sprintf("invalid pattern %q: %v", pattern, err)
	}
	if !re.MatchString(document.Text(c.value)) {
		return fmt.Sprintf("value %q does not match %q", document.Text(c.value), pattern)
	}
	return ""
}

func checkTimeConstraint(c check) string {
	raw, ok := c.spec.Param(domain.RuleOffsetSeconds)
	if !ok {
		return "OffsetSeconds is required with TimeConstraint"
	}
	offset, err := convert.ToInt64(raw)
	if err != nil {
		return fmt.Sprintf("OffsetSeconds %q is not an integer", document.Text(raw))
	}
	return reasonOf(constraint.CheckTime(document.Text(c.value), document.Text(c.param), offset, c.now))
}

func checkDateConstraint(c check) string {
	raw, ok := c.spec.Param(domain.RuleOffsetDays)
	if !ok {
		return "OffsetDays is required with DateConstraint"
	}
	offset, err := convert.ToInt64(raw)
	if err != nil {
		return fmt.Sprintf("OffsetDays %q is not an integer", document.Text(raw))
	}
	return reasonOf(constraint.CheckDate(document.Text(c.value), document.Text(c.param), offset, c.now))
}

func reasonOf(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.Message(err)
}

func labelPath(path string) string {
	return document.Label(path)
}

func labelFor(path, rule string) string {
	return document.Label(path) + ":" + rule
}
