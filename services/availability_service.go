package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/schedule"
	"gorm.io/gorm"
)

// DefaultHorizonWeeks is how far ahead weekly templates are materialized.
const DefaultHorizonWeeks = 4

// MaterializeSlots regenerates the mentor's dated slots for
// [from, from+weeks). The old weekly-generated slots in range are deleted and
// the fresh expansion inserted in one transaction, so a failed run never
// leaves a partial slot set and a repeated run produces the identical rows.
// Windows overlapping a blocking session are skipped.
func MaterializeSlots(mentorID uuid.UUID, from time.Time, weeks int) error {
	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMentorNotFound
		}
		return err
	}

	start := schedule.Midnight(from)
	end := start.AddDate(0, 0, weeks*7)
	expanded := mentor.WeeklyAvailability.ExpandRange(start, weeks*7)

	var sessions []models.Session
	if err := database.DB.
		Where("mentor_id = ? AND start_time >= ? AND start_time < ? AND status NOT IN ?",
			mentorID, start, end, []string{models.SessionCancelled, models.SessionRejected}).
		Find(&sessions).Error; err != nil {
		return err
	}

	slots := make([]models.AvailabilitySlot, 0, len(expanded))
	for _, dw := range expanded {
		if windowBlocked(dw, sessions) {
			continue
		}
		slots = append(slots, models.AvailabilitySlot{
			MentorID:     mentorID,
			Date:         dw.Date,
			StartTime:    dw.Window.Start.String(),
			EndTime:      dw.Window.End.String(),
			IsWeeklySlot: true,
		})
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("mentor_id = ? AND is_weekly_slot = ? AND date >= ? AND date < ?",
				mentorID, true, start, end).
			Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func windowBlocked(dw schedule.DatedWindow, sessions []models.Session) bool {
	for i := range sessions {
		s := &sessions[i]
		if !s.Blocking() || !schedule.Midnight(s.StartTime).Equal(dw.Date) {
			continue
		}
		busy := schedule.Window{
			Start: schedule.ClockOf(s.StartTime),
			End:   schedule.ClockOf(s.StartTime).AddMinutes(s.Duration),
		}
		if dw.Window.Overlaps(busy) {
			return true
		}
	}
	return false
}

// ResolvedWindow is one free range the mentee can book on the queried date.
type ResolvedWindow struct {
	Date               time.Time `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	AvailableDurations []int     `json:"available_durations"`
}

// ResolveDay returns the mentor's free windows for one date, sorted by start
// time. Materialized slots are preferred; if none exist yet the weekly
// template is expanded on the fly. Booked sessions split overlapping windows
// into the surviving fragments. An empty result is a valid answer, not an
// error.
func ResolveDay(mentorID uuid.UUID, date time.Time) ([]ResolvedWindow, error) {
	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ? AND status = ?", mentorID, "approved").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}

	day := schedule.Midnight(date)
	windows, err := candidateWindows(&mentor, day)
	if err != nil {
		return nil, err
	}

	busy, err := busyIntervals(mentorID, day)
	if err != nil {
		return nil, err
	}

	resolved := []ResolvedWindow{}
	for _, w := range windows {
		for _, free := range w.Subtract(busy) {
			resolved = append(resolved, ResolvedWindow{
				Date:               day,
				StartTime:          free.Start.String(),
				EndTime:            free.End.String(),
				AvailableDurations: free.FitDurations(),
			})
		}
	}

	// Window expansion and the sorted slot query both emit in start order,
	// and Subtract preserves it, so a single stable pass keeps ties in
	// original window order.
	for i := 1; i < len(resolved); i++ {
		for j := i; j > 0 && resolved[j].StartTime < resolved[j-1].StartTime; j-- {
			resolved[j], resolved[j-1] = resolved[j-1], resolved[j]
		}
	}
	return resolved, nil
}

func candidateWindows(mentor *models.Mentor, day time.Time) ([]schedule.Window, error) {
	var slots []models.AvailabilitySlot
	if err := database.DB.
		Where("mentor_id = ? AND date = ?", mentor.UserID, day).
		Order("start_time asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		// Lazy path: materialization has not run for this date yet.
		return mentor.WeeklyAvailability.WindowsOn(day.Weekday()), nil
	}

	windows := make([]schedule.Window, 0, len(slots))
	for _, slot := range slots {
		start, err := schedule.ParseClock(slot.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ParseClock(slot.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, schedule.Window{Start: start, End: end})
	}
	return windows, nil
}

func busyIntervals(mentorID uuid.UUID, day time.Time) ([]schedule.Window, error) {
	var sessions []models.Session
	if err := database.DB.
		Where("mentor_id = ? AND start_time >= ? AND start_time < ? AND status NOT IN ?",
			mentorID, day, day.AddDate(0, 0, 1), []string{models.SessionCancelled, models.SessionRejected}).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	busy := make([]schedule.Window, 0, len(sessions))
	for i := range sessions {
		start := schedule.ClockOf(sessions[i].StartTime)
		busy = append(busy, schedule.Window{
			Start: start,
			End:   start.AddMinutes(sessions[i].Duration),
		})
	}
	return busy, nil
}

// RegenerateAllHorizons re-materializes every approved mentor. Used by the
// nightly job so the rolling window keeps moving forward.
func RegenerateAllHorizons() {
	var mentors []models.Mentor
	if err := database.DB.Where("status = ?", "approved").Find(&mentors).Error; err != nil {
		log.Printf("Error loading mentors for re-materialization: %v", err)
		return
	}
	for _, mentor := range mentors {
		if err := MaterializeSlots(mentor.UserID, time.Now(), DefaultHorizonWeeks); err != nil {
			log.Printf("Error materializing slots for mentor %s: %v", mentor.UserID, err)
		}
	}
}
