package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/notifications"
	"gorm.io/gorm"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pendingMentors []models.Mentor
	if err := database.DB.Preload("User").Where("status = ?", "pending").Find(&pendingMentors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingMentors)
}

func ManageApplication(c *fiber.Ctx) error {
	type MgtRequest struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}

	var req MgtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mentorUserID := c.Params("mentorId")

	var application models.Mentor
	if err := database.DB.First(&application, "user_id = ?", mentorUserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", mentorUserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = req.Status
		if err := tx.Save(&application).Error; err != nil {
			return err
		}
		if req.Status == "approved" {
			user.Role = "mentor"
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
	}

	switch req.Status {
	case "approved":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Mentor Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application to become a mentor has been approved. You can now set your weekly availability and start accepting sessions.</p>",
		)
	case "rejected":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Update on Your Mentor Application",
			"<p>Unfortunately your mentor application was not approved at this time.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Application " + req.Status})
}

type TopUpRequest struct {
	UserID string  `json:"user_id" validate:"required,uuid"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// CreditUserBalance tops up a user's wallet. Payment capture happens outside
// this service; this endpoint records the settled amount with a ledger row.
func CreditUserBalance(c *fiber.Ctx) error {
	var req TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, _ := uuid.Parse(req.UserID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", req.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		ledger := models.Transaction{
			UserID:      userID,
			Amount:      req.Amount,
			Kind:        models.TransactionCredit,
			Description: "Balance top-up",
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to credit balance"})
	}

	return c.JSON(fiber.Map{"message": "Balance credited"})
}

func ListAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}
