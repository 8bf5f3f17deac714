package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/notifications"
)

func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingSessions []models.Session

	err := database.DB.
		Preload("Mentee").
		Preload("Mentor").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.SessionAccepted, lowerBound, upperBound).
		Find(&upcomingSessions).Error

	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	if len(upcomingSessions) == 0 {
		return
	}

	for _, session := range upcomingSessions {
		log.Printf("Sending reminder for session ID: %s", session.ID)

		emailSubject := "Reminder: Your Session Starts in 1 Hour!"
		meetingCode := ""
		if session.MeetingCode != nil {
			meetingCode = *session.MeetingCode
		}
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your session is scheduled to start in one hour at %s.</p><p><b>Meeting code:</b> %s</p>",
			session.StartTime.Format(time.Kitchen),
			meetingCode,
		)

		go notifications.SendEmail(session.Mentee.FullName, session.Mentee.Email, emailSubject, emailBody)
		go notifications.SendEmail(session.Mentor.FullName, session.Mentor.Email, emailSubject, emailBody)
	}
}
