package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/schedule"
)

type Mentor struct {
	UserID     uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline   *string   `gorm:"size:255" json:"headline"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Expertise  *string   `gorm:"size:255" json:"expertise"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	HourlyRate float64   `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	AvgRating  float32   `gorm:"default:0" json:"avg_rating"`

	// WeeklyAvailability is the recurring template the materializer expands
	// into dated slots. Stored as a single jsonb column on the profile row.
	WeeklyAvailability schedule.WeekSchedule `gorm:"type:jsonb" json:"weekly_availability"`

	User      User      `gorm:"foreignkey:UserID" json:"user"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
