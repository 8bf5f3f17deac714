package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, start, end string) Window {
	t.Helper()
	s, err := ParseClock(start)
	require.NoError(t, err)
	e, err := ParseClock(end)
	require.NoError(t, err)
	return Window{Start: s, End: e}
}

func TestOverlapsHalfOpen(t *testing.T) {
	base := window(t, "10:00", "11:00")

	assert.True(t, base.Overlaps(window(t, "10:30", "11:30")))
	assert.True(t, base.Overlaps(window(t, "09:30", "10:30")))
	assert.True(t, base.Overlaps(window(t, "10:15", "10:45")))
	assert.True(t, base.Overlaps(window(t, "09:00", "12:00")))

	// Touching endpoints are not conflicts.
	assert.False(t, base.Overlaps(window(t, "11:00", "12:00")))
	assert.False(t, base.Overlaps(window(t, "09:00", "10:00")))
}

func TestFitDurationBoundaries(t *testing.T) {
	assert.Equal(t, []int{30}, window(t, "09:00", "09:30").FitDurations())
	assert.Equal(t, []int{30}, window(t, "09:00", "09:59").FitDurations())
	assert.Equal(t, []int{30, 60}, window(t, "09:00", "10:00").FitDurations())
	assert.Equal(t, []int{30, 60}, window(t, "09:00", "10:59").FitDurations())
	assert.Equal(t, []int{30, 60, 120}, window(t, "09:00", "11:00").FitDurations())
	assert.Empty(t, window(t, "09:00", "09:20").FitDurations())
}

func TestSubtractSplitsAroundSession(t *testing.T) {
	free := window(t, "09:00", "12:00").Subtract([]Window{window(t, "10:00", "10:30")})

	require.Len(t, free, 2)
	assert.Equal(t, window(t, "09:00", "10:00"), free[0])
	assert.Equal(t, window(t, "10:30", "12:00"), free[1])

	assert.Equal(t, []int{30, 60}, free[0].FitDurations())
	// 90 minutes remain: 120 must not be offered.
	assert.Equal(t, []int{30, 60}, free[1].FitDurations())
}

func TestSubtractDiscardsShortFragments(t *testing.T) {
	// Both remainders are under 30 minutes and must be dropped.
	free := window(t, "09:00", "09:40").Subtract([]Window{window(t, "09:10", "09:30")})
	assert.Empty(t, free)
}

func TestSubtractFullyConsumedWindow(t *testing.T) {
	free := window(t, "09:00", "10:00").Subtract([]Window{window(t, "09:00", "10:00")})
	assert.Empty(t, free)

	free = window(t, "09:00", "10:00").Subtract([]Window{window(t, "08:00", "11:00")})
	assert.Empty(t, free)
}

func TestSubtractMultipleSessions(t *testing.T) {
	busy := []Window{
		window(t, "10:00", "10:30"),
		window(t, "11:15", "11:45"),
	}
	free := window(t, "09:00", "13:00").Subtract(busy)

	require.Len(t, free, 3)
	assert.Equal(t, window(t, "09:00", "10:00"), free[0])
	assert.Equal(t, window(t, "10:30", "11:15"), free[1])
	assert.Equal(t, window(t, "11:45", "13:00"), free[2])
}

func TestSubtractSecondSplitRemainderDiscarded(t *testing.T) {
	// First split leaves 10:30-12:00; the second session carves it down to a
	// 15-minute head fragment, which is discarded like any other short piece.
	busy := []Window{
		window(t, "10:00", "10:30"),
		window(t, "10:45", "12:00"),
	}
	free := window(t, "09:00", "12:00").Subtract(busy)

	require.Len(t, free, 1)
	assert.Equal(t, window(t, "09:00", "10:00"), free[0])
}

func TestSubtractNoOverlapKeepsWindow(t *testing.T) {
	orig := window(t, "09:00", "12:00")
	free := orig.Subtract([]Window{window(t, "13:00", "14:00")})
	require.Len(t, free, 1)
	assert.Equal(t, orig, free[0])
}

func TestIsBookableDuration(t *testing.T) {
	assert.True(t, IsBookableDuration(30))
	assert.True(t, IsBookableDuration(60))
	assert.True(t, IsBookableDuration(120))
	assert.False(t, IsBookableDuration(90))
	assert.False(t, IsBookableDuration(45))
	assert.False(t, IsBookableDuration(0))
}
