package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one materialized bookable window on a concrete date.
// Regenerated wholesale whenever the mentor's weekly template changes.
type AvailabilitySlot struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID uuid.UUID `gorm:"not null;index:idx_slots_mentor_date" json:"-"`

	Date      time.Time `gorm:"not null;index:idx_slots_mentor_date" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	IsWeeklySlot bool `gorm:"not null;default:true" json:"is_weekly_slot"`

	Mentor User `gorm:"foreignkey:MentorID" json:"-"`

	CreatedAt time.Time `json:"-"`
}
