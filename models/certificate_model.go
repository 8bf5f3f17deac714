package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MenteeID uuid.UUID `gorm:"not null;index" json:"mentee_id"`
	MentorID uuid.UUID `gorm:"not null" json:"mentor_id"`

	Title          string    `gorm:"size:255;not null" json:"title"`
	CompletionDate time.Time `json:"completion_date"`
	CertificateURL string    `gorm:"size:512" json:"certificate_url"`

	CreatedAt time.Time `json:"-"`
}
