package schedule

import (
	"fmt"
	"time"
)

// ClockTime is a time of day in minutes since midnight, parsed from "HH:mm".
type ClockTime int

func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t ClockTime) AddMinutes(m int) ClockTime {
	return t + ClockTime(m)
}

// OnDate anchors the clock time to the given calendar day.
func (t ClockTime) OnDate(date time.Time) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, int(t)/60, int(t)%60, 0, 0, date.Location())
}

// ClockOf truncates an absolute timestamp to its minute of day.
func ClockOf(ts time.Time) ClockTime {
	return ClockTime(ts.Hour()*60 + ts.Minute())
}
