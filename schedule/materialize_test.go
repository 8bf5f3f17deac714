package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaysNineToFive() WeekSchedule {
	var ws WeekSchedule
	for day := time.Monday; day <= time.Friday; day++ {
		ws[day] = DaySchedule{
			Available: true,
			Slots:     []WindowSpec{{StartTime: "09:00", EndTime: "17:00"}},
		}
	}
	return ws
}

func TestValidateDay(t *testing.T) {
	ok := DaySchedule{Available: true, Slots: []WindowSpec{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "13:00", EndTime: "17:00"},
	}}
	assert.NoError(t, ValidateDay(ok))

	cases := map[string]DaySchedule{
		"bad format":       {Slots: []WindowSpec{{StartTime: "9am", EndTime: "17:00"}}},
		"end before start": {Slots: []WindowSpec{{StartTime: "12:00", EndTime: "09:00"}}},
		"zero length":      {Slots: []WindowSpec{{StartTime: "09:00", EndTime: "09:00"}}},
		"under 30 min":     {Slots: []WindowSpec{{StartTime: "09:00", EndTime: "09:20"}}},
		"overlapping": {Slots: []WindowSpec{
			{StartTime: "09:00", EndTime: "12:00"},
			{StartTime: "11:00", EndTime: "14:00"},
		}},
		"out of order": {Slots: []WindowSpec{
			{StartTime: "13:00", EndTime: "17:00"},
			{StartTime: "09:00", EndTime: "12:00"},
		}},
	}
	for name, day := range cases {
		assert.Error(t, ValidateDay(day), name)
	}
}

func TestWindowsOnUnavailableDay(t *testing.T) {
	var ws WeekSchedule
	ws[time.Monday] = DaySchedule{
		Available: false,
		Slots:     []WindowSpec{{StartTime: "09:00", EndTime: "17:00"}},
	}
	assert.Empty(t, ws.WindowsOn(time.Monday))
	assert.Empty(t, ws.WindowsOn(time.Sunday))
}

func TestExpandRange(t *testing.T) {
	ws := weekdaysNineToFive()

	// 2026-09-07 is a Monday.
	from := time.Date(2026, 9, 7, 8, 30, 0, 0, time.UTC)
	got := ws.ExpandRange(from, 7)

	// Mon-Fri produce one window each, the weekend nothing.
	require.Len(t, got, 5)
	for i, dw := range got {
		assert.Equal(t, time.Date(2026, 9, 7+i, 0, 0, 0, 0, time.UTC), dw.Date)
		assert.Equal(t, Window{Start: 9 * 60, End: 17 * 60}, dw.Window)
	}
}

func TestExpandRangeFourWeekHorizon(t *testing.T) {
	var ws WeekSchedule
	ws[time.Monday] = DaySchedule{
		Available: true,
		Slots:     []WindowSpec{{StartTime: "09:00", EndTime: "17:00"}},
	}

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	got := ws.ExpandRange(from, 28)

	require.Len(t, got, 4)
	for i, dw := range got {
		assert.Equal(t, time.Monday, dw.Date.Weekday())
		assert.Equal(t, from.AddDate(0, 0, 7*i), dw.Date)
	}
}

func TestExpandRangeDeterministic(t *testing.T) {
	ws := weekdaysNineToFive()
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	first := ws.ExpandRange(from, 28)
	second := ws.ExpandRange(from, 28)
	assert.Equal(t, first, second)
}

func TestWeekScheduleRoundTrip(t *testing.T) {
	ws := weekdaysNineToFive()

	raw, err := ws.Value()
	require.NoError(t, err)

	var got WeekSchedule
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, ws, got)

	var empty WeekSchedule
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, WeekSchedule{}, empty)
}
