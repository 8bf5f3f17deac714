package notifications

import (
	"log"

	"github.com/google/uuid"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
	"github.com/mwangi-dev/mentor_hub/websocket"
	"gorm.io/gorm"
)

// Create writes a notification row inside the caller's transaction, so the
// record commits or rolls back together with the session and balance writes.
func Create(tx *gorm.DB, userID uuid.UUID, ntype, title, body string) (*models.Notification, error) {
	n := &models.Notification{
		UserID: userID,
		Type:   ntype,
		Title:  title,
		Body:   body,
	}
	if err := tx.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Dispatch delivers an already-committed notification over the side
// channels: websocket push and email. Best-effort; failures are logged and
// never roll anything back. Call after commit, usually in a goroutine.
func Dispatch(n *models.Notification) {
	websocket.Push(n.UserID, n)

	var user models.User
	if err := database.DB.First(&user, "id = ?", n.UserID).Error; err != nil {
		log.Printf("Notification %s committed but recipient lookup failed: %v", n.ID, err)
		return
	}
	SendEmail(user.FullName, user.Email, n.Title, "<p>"+n.Body+"</p>")
}
