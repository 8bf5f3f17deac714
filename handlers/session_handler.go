package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/notifications"
	"github.com/mwangi-dev/mentor_hub/schedule"
	"github.com/mwangi-dev/mentor_hub/services"
	"github.com/mwangi-dev/mentor_hub/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateSessionRequest struct {
	MentorID  string `json:"mentor_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Duration  int    `json:"duration" validate:"required"`
	Topic     string `json:"topic" validate:"required,max=255"`
}

// CreateSession is the reservation transaction. Preconditions are checked in
// order inside the transaction (approved mentor, no overlapping session,
// sufficient balance); the session row, both balance movements, both ledger
// rows and both notification rows commit or roll back as one unit. The
// mentor's user row is locked FOR UPDATE first, which serializes concurrent
// bookings for the same mentor so two requests for the same window can never
// both pass the conflict check.
func CreateSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	menteeID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !schedule.IsBookableDuration(req.Duration) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Duration must be one of %v minutes", schedule.BookableDurations)})
	}

	mentorID, _ := uuid.Parse(req.MentorID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	if startTime.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time cannot be in the past"})
	}
	if mentorID == menteeID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book a session with yourself"})
	}

	var mentor models.Mentor
	if err := database.DB.Preload("User").First(&mentor, "user_id = ? AND status = ?", mentorID, "approved").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrMentorNotFound.Error()})
	}
	price := models.SessionPrice(mentor.HourlyRate, req.Duration)
	endTime := startTime.Add(time.Duration(req.Duration) * time.Minute)

	var session models.Session
	var created []*models.Notification
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Serializes all bookings for this mentor.
		var mentorUser models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mentorUser, "id = ?", mentorID).Error; err != nil {
			return err
		}

		var overlapping int64
		if err := tx.Model(&models.Session{}).
			Where("mentor_id = ? AND status NOT IN ? AND start_time < ? AND start_time + make_interval(mins => duration) > ?",
				mentorID, []string{models.SessionCancelled, models.SessionRejected}, endTime, startTime).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return services.ErrSlotConflict
		}

		var mentee models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mentee, "id = ?", menteeID).Error; err != nil {
			return err
		}
		if mentee.Balance < price {
			return &services.InsufficientFundsError{Required: price, Available: mentee.Balance}
		}

		mentee.Balance -= price
		if err := tx.Save(&mentee).Error; err != nil {
			return err
		}
		mentorUser.Balance += price
		if err := tx.Save(&mentorUser).Error; err != nil {
			return err
		}

		meetingCode, err := utils.GenerateUniqueMeetingCode(tx)
		if err != nil {
			return err
		}
		session = models.Session{
			MentorID:    mentorID,
			MenteeID:    menteeID,
			StartTime:   startTime,
			Duration:    req.Duration,
			Price:       price,
			Status:      models.SessionPending,
			Topic:       req.Topic,
			MeetingCode: &meetingCode,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		if err := recordLedgerPair(tx, &session, menteeID, mentorID, price,
			"Session booked with "+mentor.User.FullName, "Session booked by "+mentee.FullName); err != nil {
			return err
		}

		n1, err := notifications.Create(tx, mentorID, models.NotificationSessionRequested,
			"New session request",
			fmt.Sprintf("%s requested a %d-minute session on %s.", mentee.FullName, req.Duration, startTime.Format(time.RFC1123)))
		if err != nil {
			return err
		}
		n2, err := notifications.Create(tx, menteeID, models.NotificationSessionBooked,
			"Session booked",
			fmt.Sprintf("Your %d-minute session with %s on %s is awaiting the mentor's confirmation.", req.Duration, mentor.User.FullName, startTime.Format(time.RFC1123)))
		if err != nil {
			return err
		}
		created = append(created, n1, n2)
		return nil
	})
	if err != nil {
		return sessionError(c, err)
	}

	for _, n := range created {
		go notifications.Dispatch(n)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

// recordLedgerPair writes the offsetting debit/credit rows for one money
// movement from payer to payee.
func recordLedgerPair(tx *gorm.DB, session *models.Session, payerID, payeeID uuid.UUID, amount float64, payerDesc, payeeDesc string) error {
	debit := models.Transaction{
		UserID:      payerID,
		SessionID:   &session.ID,
		Amount:      -amount,
		Kind:        models.TransactionDebit,
		Description: payerDesc,
	}
	if err := tx.Create(&debit).Error; err != nil {
		return err
	}
	credit := models.Transaction{
		UserID:      payeeID,
		SessionID:   &session.ID,
		Amount:      amount,
		Kind:        models.TransactionCredit,
		Description: payeeDesc,
	}
	return tx.Create(&credit).Error
}

func sessionError(c *fiber.Ctx, err error) error {
	var insufficient *services.InsufficientFundsError
	switch {
	case errors.Is(err, services.ErrSlotConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Slot already booked"})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     insufficient.Error(),
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.Is(err, services.ErrMentorNotFound), errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrPastStartTime):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Operation failed, please try again"})
}

func AcceptSession(c *fiber.Ctx) error {
	return mentorTransition(c, models.SessionAccepted, models.NotificationSessionAccepted,
		"Session accepted", "Your mentor accepted the session request.")
}

func RejectSession(c *fiber.Ctx) error {
	return mentorTransition(c, models.SessionRejected, models.NotificationSessionRejected,
		"Session rejected", "Your mentor declined the session request. Your balance has been refunded.")
}

// mentorTransition handles accept and reject, both mentor-only moves out of
// pending. Rejection reverses the reservation's balance movement the same
// way cancellation does.
func mentorTransition(c *fiber.Ctx, target, notifType, title, body string) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var session models.Session
	var note *models.Notification
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrSessionNotFound
			}
			return err
		}
		if session.MentorID != callerID {
			return services.ErrNotParticipant
		}
		if !models.CanTransition(session.Status, target) {
			return services.ErrInvalidTransition
		}

		session.Status = target
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if target == models.SessionRejected {
			if err := reverseBalances(tx, &session); err != nil {
				return err
			}
		}

		var err error
		note, err = notifications.Create(tx, session.MenteeID, notifType, title, body)
		return err
	})
	if err != nil {
		return sessionError(c, err)
	}

	go notifications.Dispatch(note)
	return c.JSON(fiber.Map{"session": session})
}

// reverseBalances undoes the reservation's money movement: the mentee gets
// the full price back, the mentor is debited the same amount, and the
// offsetting ledger pair is recorded.
func reverseBalances(tx *gorm.DB, session *models.Session) error {
	if err := tx.Model(&models.User{}).Where("id = ?", session.MenteeID).
		Update("balance", gorm.Expr("balance + ?", session.Price)).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", session.MentorID).
		Update("balance", gorm.Expr("balance - ?", session.Price)).Error; err != nil {
		return err
	}
	return recordLedgerPair(tx, session, session.MentorID, session.MenteeID, session.Price,
		"Session refund issued", "Session refund received")
}

func CancelSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var session models.Session
	var note *models.Notification
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrSessionNotFound
			}
			return err
		}
		if session.MentorID != callerID && session.MenteeID != callerID {
			return services.ErrNotParticipant
		}
		if !models.CanTransition(session.Status, models.SessionCancelled) {
			return services.ErrInvalidTransition
		}

		session.Status = models.SessionCancelled
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		if err := reverseBalances(tx, &session); err != nil {
			return err
		}

		recipient := session.MenteeID
		if callerID == session.MenteeID {
			recipient = session.MentorID
		}
		var err error
		note, err = notifications.Create(tx, recipient, models.NotificationSessionCancelled,
			"Session cancelled",
			fmt.Sprintf("The session on %s was cancelled. The payment has been refunded.", session.StartTime.Format(time.RFC1123)))
		return err
	})
	if err != nil {
		return sessionError(c, err)
	}

	go notifications.Dispatch(note)
	return c.JSON(fiber.Map{"session": session})
}

type RescheduleRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// RescheduleSession moves a pending or accepted session to a new start time.
// Duration and price are unchanged and the balance is not re-checked (it was
// already debited), but the new time IS re-checked for conflicts under the
// same mentor lock as creation.
func RescheduleSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var req RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	newStart, _ := time.Parse(time.RFC3339, req.StartTime)

	var session models.Session
	var note *models.Notification
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrSessionNotFound
			}
			return err
		}
		if session.MentorID != callerID && session.MenteeID != callerID {
			return services.ErrNotParticipant
		}
		if session.Status != models.SessionPending && session.Status != models.SessionAccepted {
			return services.ErrInvalidTransition
		}
		if newStart.Before(time.Now()) {
			return services.ErrPastStartTime
		}

		var mentorUser models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mentorUser, "id = ?", session.MentorID).Error; err != nil {
			return err
		}

		newEnd := newStart.Add(time.Duration(session.Duration) * time.Minute)
		var overlapping int64
		if err := tx.Model(&models.Session{}).
			Where("id <> ? AND mentor_id = ? AND status NOT IN ? AND start_time < ? AND start_time + make_interval(mins => duration) > ?",
				session.ID, session.MentorID, []string{models.SessionCancelled, models.SessionRejected}, newEnd, newStart).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return services.ErrSlotConflict
		}

		session.StartTime = newStart
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		recipient := session.MenteeID
		if callerID == session.MenteeID {
			recipient = session.MentorID
		}
		var err error
		note, err = notifications.Create(tx, recipient, models.NotificationSessionRescheduled,
			"Session rescheduled",
			fmt.Sprintf("The session has been moved to %s.", newStart.Format(time.RFC1123)))
		return err
	})
	if err != nil {
		return sessionError(c, err)
	}

	go notifications.Dispatch(note)
	return c.JSON(fiber.Map{"session": session})
}

func StartSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.MentorID != mentorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the mentor for this session"})
	}
	if !models.CanTransition(session.Status, models.SessionInProgress) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only accepted sessions can be started"})
	}
	if time.Now().Before(session.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot start a session before its scheduled time"})
	}

	session.Status = models.SessionInProgress
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start session"})
	}

	return c.JSON(fiber.Map{"session": session})
}

func CompleteSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var session models.Session
	if err := database.DB.Preload("Mentor").Preload("Mentee").First(&session, "id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.MentorID != mentorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the mentor for this session"})
	}
	if !models.CanTransition(session.Status, models.SessionCompleted) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only in-progress sessions can be completed"})
	}
	if session.EndTime().After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot complete a session before it has ended"})
	}

	session.Status = models.SessionCompleted
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete session"})
	}

	go services.CheckAndGenerateCertificate(session)

	return c.JSON(fiber.Map{"message": "Session marked as complete."})
}

func GetMySessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	menteeID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.
		Preload("Mentor").
		Where("mentee_id = ?", menteeID).
		Order("start_time desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func GetMyMentorSessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.
		Preload("Mentee").
		Where("mentor_id = ?", mentorID).
		Order("start_time desc").
		Find(&sessions)

	return c.JSON(sessions)
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	menteeID, _ := uuid.Parse(claims["user_id"].(string))
	sessionID := c.Params("sessionId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newReview models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			return errors.New("session not found")
		}
		if session.MenteeID != menteeID {
			return errors.New("you are not the mentee for this session")
		}
		if session.Status != models.SessionCompleted {
			return errors.New("reviews can only be submitted for completed sessions")
		}

		var existingReview models.Review
		if err := tx.Where("session_id = ?", sessionID).First(&existingReview).Error; err == nil {
			return errors.New("a review for this session has already been submitted")
		}

		newReview = models.Review{
			SessionID: session.ID,
			MenteeID:  menteeID,
			MentorID:  session.MentorID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.Review{}).Where("mentor_id = ?", session.MentorID).Select("avg(rating) as avg").Scan(&result)

		return tx.Model(&models.Mentor{}).Where("user_id = ?", session.MentorID).Update("avg_rating", result.Avg).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}
