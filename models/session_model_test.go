package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{SessionPending, SessionAccepted},
		{SessionPending, SessionRejected},
		{SessionPending, SessionCancelled},
		{SessionAccepted, SessionCancelled},
		{SessionAccepted, SessionInProgress},
		{SessionInProgress, SessionCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{SessionPending, SessionCompleted},
		{SessionPending, SessionInProgress},
		{SessionAccepted, SessionRejected},
		{SessionAccepted, SessionCompleted},
		{SessionInProgress, SessionCancelled},
		{SessionCompleted, SessionCancelled},
		{SessionCancelled, SessionAccepted},
		{SessionRejected, SessionPending},
		{SessionCompleted, SessionCompleted},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestSessionPrice(t *testing.T) {
	assert.Equal(t, 40.0, SessionPrice(40, 60))
	assert.Equal(t, 20.0, SessionPrice(40, 30))
	assert.Equal(t, 80.0, SessionPrice(40, 120))
	assert.Equal(t, 17.5, SessionPrice(35, 30))
	// Rounded to cents, no drift.
	assert.Equal(t, 16.67, SessionPrice(33.33, 30))
}

func TestSessionEndTimeAndBlocking(t *testing.T) {
	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	s := Session{StartTime: start, Duration: 60, Status: SessionPending}

	assert.Equal(t, start.Add(time.Hour), s.EndTime())
	assert.True(t, s.Blocking())

	s.Status = SessionCancelled
	assert.False(t, s.Blocking())
	s.Status = SessionRejected
	assert.False(t, s.Blocking())
	s.Status = SessionCompleted
	assert.True(t, s.Blocking())
}
