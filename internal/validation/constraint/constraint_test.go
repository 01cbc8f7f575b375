package constraint

import (
	"testing"
	"time"

	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1700000500, 0)

func TestResolveForward(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		now  time.Time
		want string
	}{
		{
			name: "time range in the past",
			d:    Descriptor{Kind: KindTimeRange, Constraint: "current", Offset: -900},
			now:  fixedNow,
			want: "2023-11-14 22:06:40",
		},
		{
			name: "time range keyword is case-insensitive",
			d:    Descriptor{Kind: KindTimeRange, Constraint: "CURRENT", Offset: 0},
			now:  fixedNow,
			want: "2023-11-14 22:21:40",
		},
		{
			name: "date range today",
			d:    Descriptor{Kind: KindDateRange, Constraint: "today", Offset: 2},
			now:  time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC),
			want: "2024-01-03",
		},
		{
			name: "date range current crosses month",
			d:    Descriptor{Kind: KindDateRange, Constraint: "current", Offset: -1},
			now:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveForward(tt.d, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveForwardLayout(t *testing.T) {
	got, err := ResolveForwardLayout(Descriptor{Kind: KindTimeRange, Constraint: "current", Offset: 3600}, fixedNow, TimeOfDayLayout)
	require.NoError(t, err)
	assert.Equal(t, "23:21", got)
}

func TestResolveForward_Unsupported(t *testing.T) {
	_, err := ResolveForward(Descriptor{Kind: KindTimeRange, Constraint: "yesterday"}, fixedNow)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnsupportedConstraint))

	_, err = ResolveForward(Descriptor{Kind: KindDateRange, Constraint: "tomorrow"}, fixedNow)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnsupportedConstraint))

	_, err = ResolveForward(Descriptor{Kind: "Weekly", Constraint: "current"}, fixedNow)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnsupportedConstraint))
}

func TestResolveWindow(t *testing.T) {
	w, err := ResolveWindow(Descriptor{Kind: KindTimeRange, Constraint: "current", Offset: -900}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Window{Min: 1699999600, Max: 1700000500}, w)

	w, err = ResolveWindow(Descriptor{Kind: KindTimeRange, Constraint: "current", Offset: 60}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Window{Min: 1700000500, Max: 1700000560}, w)

	_, err = ResolveWindow(Descriptor{Kind: KindDateRange, Constraint: "today"}, fixedNow)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnsupportedConstraint))
}

func TestCheckTime_WindowBoundaries(t *testing.T) {
	assert.NoError(t, CheckTime("1699999600", "current", -900, fixedNow))
	assert.NoError(t, CheckTime("1700000500", "current", -900, fixedNow))

	err := CheckTime("1699999599", "current", -900, fixedNow)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConstraintViolation))
	assert.Contains(t, err.Error(), "[1699999600 to 1700000500]")

	err = CheckTime("1700000501", "current", -900, fixedNow)
	assert.Error(t, err)
}

func TestCheckTime_ReportsDistanceInMinutes(t *testing.T) {
	err := CheckTime("1699998700", "current", -900, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "difference: 15 minutes")
}

func TestCheckTime_NAAndErrors(t *testing.T) {
	assert.NoError(t, CheckTime("garbage", "NA", -900, fixedNow))

	err := CheckTime("garbage", "current", -900, fixedNow)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnparseableTimestamp))

	err = CheckTime("1700000000", "someday", -900, fixedNow)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnsupportedConstraint))
}

func TestCheckDate(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckDate("2024-01-03", "today", 2, now))
	assert.NoError(t, CheckDate("2024-01-03 08:15:00", "today", 2, now))
	assert.NoError(t, CheckDate("anything", "na", 2, now))

	err := CheckDate("2024-01-02", "today", 2, now)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConstraintViolation))

	err = CheckDate("01/03/2024", "today", 2, now)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnparseableTimestamp))
}

func TestParseEpoch(t *testing.T) {
	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	const midnight = int64(1704067200)

	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "time of day", value: "10:30", want: midnight + 10*3600 + 30*60},
		{name: "single digit hour", value: " 9:05 ", want: midnight + 9*3600 + 5*60},
		{name: "epoch seconds", value: "1700000500", want: 1700000500},
		{name: "timestamp", value: "2024-01-01 00:00:00", want: midnight},
		{name: "iso utc", value: "2024-01-01T00:00:00Z", want: midnight},
		{name: "month name", value: "Jan 1, 2024 00:00:00", want: midnight},
		{name: "hour out of range", value: "25:00", wantErr: true},
		{name: "impossible date", value: "2024-02-30 00:00:00", wantErr: true},
		{name: "negative epoch", value: "-5", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEpoch(tt.value, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.CodeUnparseableTimestamp))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("timerange")
	assert.True(t, ok)
	assert.Equal(t, KindTimeRange, k)

	_, ok = ParseKind("Monthly")
	assert.False(t, ok)
}
