package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"not null;unique" json:"session_id"`
	MenteeID  uuid.UUID `gorm:"not null" json:"mentee_id"`
	MentorID  uuid.UUID `gorm:"not null;index" json:"mentor_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Mentee User `gorm:"foreignkey:MenteeID" json:"mentee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
