package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRangeAt_EndIsAlwaysEndOfToday(t *testing.T) {
	now := time.Date(2024, time.June, 15, 13, 45, 12, 0, time.Local)
	wantEnd := time.Date(2024, time.June, 15, 23, 59, 59, int(999*time.Millisecond), time.Local)

	for _, token := range []RangeToken{RangeDay, RangeWeek, RangeMonth, RangeHalfYear, RangeAll} {
		got, err := ResolveRangeAt(now, Selection{Token: token})
		require.NoError(t, err, "token %s", token)
		assert.Equal(t, wantEnd, got.End, "token %s", token)
		assert.True(t, got.Start.Before(got.End), "token %s: start должен быть раньше end", token)
	}
}

func TestResolveRangeAt_DayOffsets(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	cases := []struct {
		token RangeToken
		start time.Time
	}{
		{RangeDay, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.Local)},
		{RangeWeek, time.Date(2024, time.June, 8, 0, 0, 0, 0, time.Local)},
		{RangeMonth, time.Date(2024, time.May, 16, 0, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		got, err := ResolveRangeAt(now, Selection{Token: tc.token})
		require.NoError(t, err)
		assert.Equal(t, tc.start, got.Start, "token %s", tc.token)
	}
}

func TestResolveRangeAt_HalfYearUsesCalendarMonths(t *testing.T) {
	// 31 августа минус 6 календарных месяцев — конец февраля, не минус 183 дня.
	now := time.Date(2024, time.August, 31, 12, 0, 0, 0, time.Local)

	got, err := ResolveRangeAt(now, Selection{Token: RangeHalfYear})
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Start.Month())
	assert.Equal(t, 29, got.Start.Day()) // 2024 високосный
	assert.Equal(t, 2024, got.Start.Year())
}

func TestResolveRangeAt_HalfYearRegularDay(t *testing.T) {
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.Local)

	got, err := ResolveRangeAt(now, Selection{Token: RangeHalfYear})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.Local), got.Start)
}

func TestResolveRangeAt_AllStartsAtSentinel(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	got, err := ResolveRangeAt(now, Selection{Token: RangeAll})
	require.NoError(t, err)
	assert.Equal(t, 2000, got.Start.Year())
	assert.Equal(t, time.January, got.Start.Month())
	assert.Equal(t, 1, got.Start.Day())
}

func TestResolveRangeAt_UnknownTokenFallsBackToMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	fallback, err := ResolveRangeAt(now, Selection{Token: RangeToken("whatever")})
	require.NoError(t, err)
	month, err := ResolveRangeAt(now, Selection{Token: RangeMonth})
	require.NoError(t, err)
	assert.Equal(t, month, fallback)
}

func TestResolveRangeAt_CustomNormalizesBounds(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)
	custom := &CustomRange{
		Start: time.Date(2024, time.March, 3, 14, 30, 0, 0, time.Local),
		End:   time.Date(2024, time.March, 10, 9, 15, 0, 0, time.Local),
	}

	got, err := ResolveRangeAt(now, Selection{Token: RangeCustom, Custom: custom})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local), got.Start)
	assert.Equal(t, time.Date(2024, time.March, 10, 23, 59, 59, int(999*time.Millisecond), time.Local), got.End)
}

func TestResolveRangeAt_CustomWithoutRangeFails(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

	_, err := ResolveRangeAt(now, Selection{Token: RangeCustom})
	assert.ErrorIs(t, err, ErrCustomRangeRequired)
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{
		Start: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, time.June, 30, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}

	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.Start.Add(-time.Millisecond)))
	assert.False(t, r.Contains(r.End.Add(time.Millisecond)))
}
