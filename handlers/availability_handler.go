package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/schedule"
	"github.com/mwangi-dev/mentor_hub/services"
)

// GetMentorAvailability resolves a mentor's free windows for one date.
// An empty slot list is a normal response, not an error.
func GetMentorAvailability(c *fiber.Ctx) error {
	mentorID, err := uuid.Parse(c.Params("mentorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'date' is required"})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be formatted YYYY-MM-DD"})
	}

	windows, err := services.ResolveDay(mentorID, date)
	if err != nil {
		if errors.Is(err, services.ErrMentorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve availability"})
	}

	return c.JSON(fiber.Map{"slots": windows})
}

type UpdateDayScheduleRequest struct {
	Available bool `json:"available"`
	Slots     []struct {
		StartTime string `json:"start_time" validate:"required,datetime=15:04"`
		EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	} `json:"slots" validate:"dive"`
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return 0, false
}

// UpdateWeeklyAvailability replaces one weekday of the caller's recurring
// template, then regenerates the materialized horizon so resolver queries
// see the change immediately.
func UpdateWeeklyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	day, ok := parseWeekday(c.Params("day"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown weekday"})
	}

	var req UpdateDayScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	daySchedule := schedule.DaySchedule{Available: req.Available}
	for _, s := range req.Slots {
		daySchedule.Slots = append(daySchedule.Slots, schedule.WindowSpec{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	if err := schedule.ValidateDay(daySchedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}

	mentor.WeeklyAvailability[day] = daySchedule
	if err := database.DB.Save(&mentor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
	}

	if err := services.MaterializeSlots(mentorID, time.Now(), services.DefaultHorizonWeeks); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Availability saved but slot regeneration failed, please retry"})
	}

	return c.JSON(fiber.Map{
		"message":             "Availability updated and slots regenerated",
		"weekly_availability": mentor.WeeklyAvailability,
	})
}

func GetMyWeeklySchedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}

	return c.JSON(fiber.Map{"weekly_availability": mentor.WeeklyAvailability})
}

func GetMyMaterializedSlots(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var slots []models.AvailabilitySlot
	database.DB.
		Where("mentor_id = ? AND date >= ?", mentorID, schedule.Midnight(time.Now())).
		Order("date asc, start_time asc").
		Find(&slots)

	return c.JSON(slots)
}
