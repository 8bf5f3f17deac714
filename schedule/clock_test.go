package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(9*60+30), got)

	got, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(0), got)

	got, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(23*60+59), got)

	for _, bad := range []string{"", "9:30", "24:00", "12:60", "12-30", "noon", "12:3"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:05", ClockTime(9*60+5).String())
	assert.Equal(t, "00:00", ClockTime(0).String())
	assert.Equal(t, "17:30", ClockTime(17*60+30).String())
}

func TestOnDateAndClockOf(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ts := ClockTime(10 * 60).OnDate(date)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), ts)
	assert.Equal(t, ClockTime(10*60), ClockOf(ts))
}
