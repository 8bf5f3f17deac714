package schedule

// MinWindowMinutes is the smallest bookable fragment. Splitting a window
// around a booked session discards any remainder shorter than this.
const MinWindowMinutes = 30

// BookableDurations is the canonical set of session lengths, in minutes.
// Enforced here and nowhere else.
var BookableDurations = []int{30, 60, 120}

// IsBookableDuration reports whether d is one of the offered session lengths.
func IsBookableDuration(d int) bool {
	for _, b := range BookableDurations {
		if d == b {
			return true
		}
	}
	return false
}

// Window is a contiguous free range within a single day, half-open [Start, End).
type Window struct {
	Start ClockTime
	End   ClockTime
}

func (w Window) Minutes() int {
	return int(w.End - w.Start)
}

// Overlaps uses the half-open interval test: [s1,e1) and [s2,e2) conflict
// iff s1 < e2 && s2 < e1. Touching endpoints do not conflict.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && other.Start < w.End
}

// FitDurations returns the bookable durations that fit entirely inside w.
func (w Window) FitDurations() []int {
	fits := make([]int, 0, len(BookableDurations))
	for _, d := range BookableDurations {
		if w.Minutes() >= d {
			fits = append(fits, d)
		}
	}
	return fits
}

// Subtract removes every busy interval from w and returns the surviving free
// fragments in start order. Each fragment is checked against all busy
// intervals, so a second session can split a remainder again; anything
// shorter than MinWindowMinutes is dropped.
func (w Window) Subtract(busy []Window) []Window {
	free := []Window{w}
	for _, b := range busy {
		next := make([]Window, 0, len(free)+1)
		for _, f := range free {
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			before := Window{Start: f.Start, End: b.Start}
			if before.Minutes() >= MinWindowMinutes {
				next = append(next, before)
			}
			after := Window{Start: b.End, End: f.End}
			if after.Minutes() >= MinWindowMinutes {
				next = append(next, after)
			}
		}
		free = next
	}
	return free
}
