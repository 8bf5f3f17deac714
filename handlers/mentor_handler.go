package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"gorm.io/gorm"
)

type MentorApplicationRequest struct {
	Headline   string  `json:"headline" validate:"required"`
	Bio        string  `json:"bio" validate:"required"`
	Expertise  string  `json:"expertise" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

func ApplyToBeAMentor(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req MentorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingMentor models.Mentor
	err := database.DB.Where("user_id = ?", userID).First(&existingMentor).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	newApplication := models.Mentor{
		UserID:     userID,
		Headline:   &req.Headline,
		Bio:        &req.Bio,
		Expertise:  &req.Expertise,
		HourlyRate: req.HourlyRate,
	}

	if err := database.DB.Create(&newApplication).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(newApplication)
}

func GetMentorProfile(c *fiber.Ctx) error {
	mentorID := c.Params("mentorId")

	var mentor models.Mentor
	if err := database.DB.Preload("User").First(&mentor, "user_id = ? AND status = ?", mentorID, "approved").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Approved mentor not found"})
	}

	return c.JSON(mentor)
}

func ListApprovedMentors(c *fiber.Ctx) error {
	var approvedMentors []models.Mentor
	query := database.DB.Preload("User").Where("status = ?", "approved")

	if expertise := c.Query("expertise"); expertise != "" {
		query = query.Where("expertise ILIKE ?", "%"+expertise+"%")
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		query = query.Where("avg_rating >= ?", minRating)
	}
	if maxRate := c.Query("max_rate"); maxRate != "" {
		query = query.Where("hourly_rate <= ?", maxRate)
	}

	if err := query.Find(&approvedMentors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve mentors"})
	}

	return c.JSON(approvedMentors)
}

func GetMyMentorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var mentor models.Mentor
	if err := database.DB.Preload("User").First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}
	return c.JSON(mentor)
}

func UpdateMyMentorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	type UpdateRequest struct {
		Headline   string  `json:"headline" validate:"required"`
		Bio        string  `json:"bio" validate:"required"`
		Expertise  string  `json:"expertise" validate:"required"`
		HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var mentor models.Mentor
	if err := database.DB.First(&mentor, "user_id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor profile not found"})
	}

	mentor.Headline = &req.Headline
	mentor.Bio = &req.Bio
	mentor.Expertise = &req.Expertise
	mentor.HourlyRate = req.HourlyRate
	database.DB.Save(&mentor)

	return c.JSON(mentor)
}

func GetMentorEarnings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.First(&user, "id = ?", mentorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var totalSessions int64
	database.DB.Model(&models.Session{}).
		Where("mentor_id = ? AND status = ?", mentorID, models.SessionCompleted).
		Count(&totalSessions)

	return c.JSON(fiber.Map{
		"current_balance":          user.Balance,
		"total_sessions_completed": totalSessions,
	})
}

func GetMyReviews(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	mentorID, _ := uuid.Parse(claims["user_id"].(string))

	var reviews []models.Review
	database.DB.Preload("Mentee").Where("mentor_id = ?", mentorID).Order("created_at desc").Find(&reviews)

	return c.JSON(reviews)
}
