// Package constraint expands symbolic temporal descriptors into literals for
// outbound requests and into acceptance windows for validation.
package constraint

import (
	"fmt"
	"strings"
	"time"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
)

type Kind string

const (
	KindTimeRange Kind = "TimeRange"
	KindDateRange Kind = "DateRange"
)

const (
	KeywordCurrent = "current"
	KeywordToday   = "today"

	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// ParseKind matches a ValidationType value case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(KindTimeRange)):
		return KindTimeRange, true
	case strings.EqualFold(strings.TrimSpace(s), string(KindDateRange)):
		return KindDateRange, true
	}
	return "", false
}

// Descriptor is a symbolic temporal value. Offset is in seconds for
// TimeRange and in days for DateRange.
type Descriptor struct {
	Kind       Kind
	Constraint string
	Offset     int64
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%s%+d)", d.Kind, d.Constraint, d.Offset)
}

// Window is an inclusive range of epoch seconds.
type Window struct {
	Min int64
	Max int64
}

func (w Window) Contains(epoch int64) bool {
	return epoch >= w.Min && epoch <= w.Max
}

// Distance is how far epoch lies outside the window, zero when inside.
func (w Window) Distance(epoch int64) int64 {
	switch {
	case epoch < w.Min:
		return w.Min - epoch
	case epoch > w.Max:
		return epoch - w.Max
	}
	return 0
}

func (w Window) String() string {
	return fmt.Sprintf("[%d to %d]", w.Min, w.Max)
}

func isKeyword(constraint, keyword string) bool {
	return strings.EqualFold(strings.TrimSpace(constraint), keyword)
}

func unsupported(d Descriptor) error {
	return apperrors.Newf(apperrors.CodeUnsupportedConstraint,
		"unsupported %s constraint %q", d.Kind, d.Constraint)
}

// ResolveForward renders the literal a descriptor stands for in a request.
func ResolveForward(d Descriptor, now time.Time) (string, error) {
	switch d.Kind {
	case KindTimeRange:
		return ResolveForwardLayout(d, now, TimestampLayout)
	case KindDateRange:
		return ResolveForwardLayout(d, now, DateLayout)
	}
	return "", unsupported(d)
}

// ResolveForwardLayout is ResolveForward with a caller-chosen time layout.
func ResolveForwardLayout(d Descriptor, now time.Time, layout string) (string, error) {
	switch d.Kind {
	case KindTimeRange:
		if !isKeyword(d.Constraint, KeywordCurrent) {
			return "", unsupported(d)
		}
		return now.UTC().Add(time.Duration(d.Offset) * time.Second).Format(layout), nil
	case KindDateRange:
		day, err := dateFor(d, now)
		if err != nil {
			return "", err
		}
		return day.Format(layout), nil
	}
	return "", unsupported(d)
}

// ResolveWindow returns the acceptance window of a TimeRange descriptor.
func ResolveWindow(d Descriptor, now time.Time) (Window, error) {
	if d.Kind != KindTimeRange || !isKeyword(d.Constraint, KeywordCurrent) {
		return Window{}, unsupported(d)
	}
	base := now.Unix()
	if d.Offset >= 0 {
		return Window{Min: base, Max: base + d.Offset}, nil
	}
	return Window{Min: base + d.Offset, Max: base}, nil
}

// ResolveDate returns the calendar date a DateRange descriptor expects.
func ResolveDate(d Descriptor, now time.Time) (string, error) {
	if d.Kind != KindDateRange {
		return "", unsupported(d)
	}
	day, err := dateFor(d, now)
	if err != nil {
		return "", err
	}
	return day.Format(DateLayout), nil
}

func dateFor(d Descriptor, now time.Time) (time.Time, error) {
	if !isKeyword(d.Constraint, KeywordToday) && !isKeyword(d.Constraint, KeywordCurrent) {
		return time.Time{}, unsupported(d)
	}
	y, m, day := now.UTC().Date()
	return time.Date(y, m, day+int(d.Offset), 0, 0, 0, 0, time.UTC), nil
}

// CheckTime verifies that value falls inside the window of
// TimeRange(constraint, offsetSeconds).
func CheckTime(value, constraint string, offsetSeconds int64, now time.Time) error {
	if domain.IsNA(constraint) {
		return nil
	}
	w, err := ResolveWindow(Descriptor{Kind: KindTimeRange, Constraint: constraint, Offset: offsetSeconds}, now)
	if err != nil {
		return err
	}
	epoch, err := ParseEpoch(value, now)
	if err != nil {
		return err
	}
	if w.Contains(epoch) {
		return nil
	}
	return apperrors.Newf(apperrors.CodeConstraintViolation,
		"timestamp %d is not within expected range %s (difference: %d minutes)",
		epoch, w, w.Distance(epoch)/60)
}

// CheckDate verifies that value is exactly the date of
// DateRange(constraint, offsetDays).
func CheckDate(value, constraint string, offsetDays int64, now time.Time) error {
	if domain.IsNA(constraint) {
		return nil
	}
	expected, err := ResolveDate(Descriptor{Kind: KindDateRange, Constraint: constraint, Offset: offsetDays}, now)
	if err != nil {
		return err
	}
	actual, err := parseDate(value)
	if err != nil {
		return err
	}
	if actual != expected {
		return apperrors.Newf(apperrors.CodeConstraintViolation,
			"date %s does not match expected date %s", actual, expected)
	}
	return nil
}
