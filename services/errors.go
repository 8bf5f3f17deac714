package services

import (
	"errors"
	"fmt"
)

var (
	ErrMentorNotFound    = errors.New("mentor not found or not approved")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrNotParticipant    = errors.New("you are not a participant of this session")
	ErrInvalidTransition = errors.New("session status does not allow this action")
	ErrPastStartTime     = errors.New("start time cannot be in the past")
)

// InsufficientFundsError reports both the required and the available amount
// so the client can tell the user how much to top up.
type InsufficientFundsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: required %.2f, available %.2f", e.Required, e.Available)
}
