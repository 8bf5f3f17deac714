package utils

import (
	"math/rand"
	"time"

	"github.com/mwangi-dev/mentor_hub/models"
	"gorm.io/gorm"
)

const meetingCodeLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueMeetingCode produces the video-call room code attached to a
// session, retrying until it finds one no other session uses.
func GenerateUniqueMeetingCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, meetingCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var session models.Session
		err := tx.Where("meeting_code = ?", code).First(&session).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
