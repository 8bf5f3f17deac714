package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WindowSpec is one template window in a weekly schedule, "HH:mm" bounds.
type WindowSpec struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DaySchedule is the availability template for one weekday.
type DaySchedule struct {
	Available bool         `json:"available"`
	Slots     []WindowSpec `json:"slots"`
}

// WeekSchedule holds the seven day templates indexed by time.Weekday
// (Sunday = 0). A fixed array rather than a weekday-name map, so lookups
// cannot miss on a typo.
type WeekSchedule [7]DaySchedule

// Value and Scan store the whole template as one jsonb column on the mentor
// profile row.
func (ws WeekSchedule) Value() (driver.Value, error) {
	return json.Marshal(ws)
}

func (ws *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		*ws = WeekSchedule{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return fmt.Errorf("cannot scan %T into WeekSchedule", value)
		}
	}
	return json.Unmarshal(b, ws)
}

// ValidateDay checks a single day template: parseable HH:mm bounds, each
// window at least MinWindowMinutes long, windows sorted by start and
// non-overlapping.
func ValidateDay(day DaySchedule) error {
	var prevEnd ClockTime = -1
	for i, spec := range day.Slots {
		start, err := ParseClock(spec.StartTime)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		end, err := ParseClock(spec.EndTime)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if end <= start {
			return fmt.Errorf("slot %d: end %s must be after start %s", i, spec.EndTime, spec.StartTime)
		}
		if int(end-start) < MinWindowMinutes {
			return fmt.Errorf("slot %d: window must be at least %d minutes", i, MinWindowMinutes)
		}
		if start < prevEnd {
			return fmt.Errorf("slot %d: overlaps or is out of order with the previous window", i)
		}
		prevEnd = end
	}
	return nil
}

// WindowsOn expands one weekday's template into windows. An unavailable day
// or an empty template yields nothing.
func (ws WeekSchedule) WindowsOn(day time.Weekday) []Window {
	tmpl := ws[day]
	if !tmpl.Available {
		return nil
	}
	windows := make([]Window, 0, len(tmpl.Slots))
	for _, spec := range tmpl.Slots {
		start, err := ParseClock(spec.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(spec.EndTime)
		if err != nil {
			continue
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows
}

// DatedWindow is one concrete bookable window produced by expansion.
type DatedWindow struct {
	Date   time.Time
	Window Window
}

// ExpandRange materializes the weekly template over [from, from+days),
// one entry per template window per matching day. Dates are normalized to
// midnight. Deterministic for a fixed template, which is what makes
// regeneration idempotent.
func (ws WeekSchedule) ExpandRange(from time.Time, days int) []DatedWindow {
	out := []DatedWindow{}
	day := Midnight(from)
	for i := 0; i < days; i++ {
		for _, w := range ws.WindowsOn(day.Weekday()) {
			out = append(out, DatedWindow{Date: day, Window: w})
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
