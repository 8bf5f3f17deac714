package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionPending    = "pending"
	SessionAccepted   = "accepted"
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionCancelled  = "cancelled"
	SessionRejected   = "rejected"
)

type Session struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MentorID uuid.UUID `gorm:"not null;index:idx_sessions_mentor_start" json:"mentor_id"`
	MenteeID uuid.UUID `gorm:"not null" json:"mentee_id"`

	StartTime time.Time `gorm:"not null;index:idx_sessions_mentor_start" json:"start_time"`
	Duration  int       `gorm:"not null" json:"duration"`
	Price     float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Topic     string    `gorm:"size:255" json:"topic"`

	MeetingCode *string `gorm:"size:16" json:"meeting_code"`

	MenteeFeedback *string `gorm:"type:text" json:"mentee_feedback,omitempty"`
	MentorFeedback *string `gorm:"type:text" json:"mentor_feedback,omitempty"`

	Mentor User `gorm:"foreignkey:MentorID" json:"mentor,omitempty"`
	Mentee User `gorm:"foreignkey:MenteeID" json:"mentee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime is the exclusive end of the session interval [StartTime, EndTime).
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.Duration) * time.Minute)
}

// Blocking reports whether the session still occupies its time range for
// conflict checks. Cancelled and rejected sessions free the slot.
func (s *Session) Blocking() bool {
	return s.Status != SessionCancelled && s.Status != SessionRejected
}

// CanTransition encodes the session state machine. Adjacent moves only;
// completed, cancelled and rejected are terminal.
func CanTransition(from, to string) bool {
	switch to {
	case SessionAccepted, SessionRejected:
		return from == SessionPending
	case SessionCancelled:
		return from == SessionPending || from == SessionAccepted
	case SessionInProgress:
		return from == SessionAccepted
	case SessionCompleted:
		return from == SessionInProgress
	}
	return false
}

// SessionPrice computes the charge for a session of the given length at the
// mentor's hourly rate, rounded to cents.
func SessionPrice(hourlyRate float64, durationMinutes int) float64 {
	price := hourlyRate * float64(durationMinutes) / 60.0
	return float64(int64(price*100+0.5)) / 100
}
