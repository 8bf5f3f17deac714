package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionDebit  = "debit"
	TransactionCredit = "credit"
)

// Transaction is one signed balance movement. Every reservation writes a
// debit/credit pair and every cancellation writes the offsetting pair, so the
// ledger for a session always sums to zero per party.
type Transaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"not null;index" json:"user_id"`
	SessionID *uuid.UUID `gorm:"index" json:"session_id"`

	Amount      float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Kind        string  `gorm:"size:10;not null" json:"kind"`
	Description string  `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
