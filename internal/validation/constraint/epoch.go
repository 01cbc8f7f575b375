package constraint

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
)

var (
	timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	epochPattern     = regexp.MustCompile(`^\d+$`)
)

// Layouts accepted by ParseEpoch after the time-of-day and epoch forms.
var timestampLayouts = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), TimestampLayout},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`), "2006-01-02T15:04:05Z"},
	{regexp.MustCompile(`^[A-Za-z]{3} \d{1,2}, \d{4} \d{2}:\d{2}:\d{2}$`), "Jan 2, 2006 15:04:05"},
}

// ParseEpoch converts a timestamp string to epoch seconds. Times of day are
// anchored to now's UTC calendar date.
func ParseEpoch(value string, now time.Time) (int64, error) {
	v := strings.TrimSpace(value)

	if m := timeOfDayPattern.FindStringSubmatch(v); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, unparseable(value)
		}
		y, mo, d := now.UTC().Date()
		return time.Date(y, mo, d, hour, minute, 0, 0, time.UTC).Unix(), nil
	}

	if epochPattern.MatchString(v) {
		epoch, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, unparseable(value)
		}
		return epoch, nil
	}

	for _, f := range timestampLayouts {
		if !f.pattern.MatchString(v) {
			continue
		}
		t, err := time.ParseInLocation(f.layout, v, time.UTC)
		if err != nil {
			return 0, unparseable(value)
		}
		return t.Unix(), nil
	}

	return 0, unparseable(value)
}

// parseDate reads the yyyy-MM-dd prefix of value.
func parseDate(value string) (string, error) {
	v := strings.TrimSpace(value)
	if len(v) > len(DateLayout) {
		v = v[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return "", apperrors.Newf(apperrors.CodeUnparseableTimestamp, "unable to parse date %q", value)
	}
	return t.Format(DateLayout), nil
}

func unparseable(value string) error {
	return apperrors.Newf(apperrors.CodeUnparseableTimestamp, "unable to parse timestamp %q", value)
}
