package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/mwangi-dev/mentor_hub/configs"
	"github.com/mwangi-dev/mentor_hub/database"
	"github.com/mwangi-dev/mentor_hub/models"
)

const certificateCompletionCount = 10

const certificateTemplate = `<!DOCTYPE html>
<html>
<head><style>
body { font-family: Georgia, serif; text-align: center; padding: 60px; }
h1 { font-size: 42px; letter-spacing: 2px; }
.name { font-size: 32px; margin: 30px 0; }
.detail { font-size: 18px; color: #444; }
</style></head>
<body>
<h1>Certificate of Mentorship</h1>
<p class="detail">This certifies that</p>
<p class="name">{{.MenteeName}}</p>
<p class="detail">has completed {{.SessionCount}} mentoring sessions with {{.MentorName}}</p>
<p class="detail">{{.Title}}</p>
<p class="detail">{{.CompletionDate}}</p>
</body>
</html>`

// CheckAndGenerateCertificate issues a milestone certificate once a mentee
// has completed enough sessions with the same mentor. Runs in a goroutine
// after completion; every failure is logged and swallowed.
func CheckAndGenerateCertificate(session models.Session) {
	var completedCount int64
	database.DB.Model(&models.Session{}).
		Where("mentee_id = ? AND mentor_id = ? AND status = ?",
			session.MenteeID, session.MentorID, models.SessionCompleted).
		Count(&completedCount)

	if completedCount < certificateCompletionCount {
		return
	}

	title := fmt.Sprintf("Mentorship with %s - %d Sessions", session.Mentor.FullName, certificateCompletionCount)

	var existingCert models.Certificate
	if err := database.DB.Where("mentee_id = ? AND title = ?", session.MenteeID, title).First(&existingCert).Error; err == nil {
		return
	}

	htmlData, err := generateCertificateHTML(session.Mentee.FullName, session.Mentor.FullName, title)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, session.MenteeID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		MenteeID:       session.MenteeID,
		MentorID:       session.MentorID,
		Title:          title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&newCertificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for mentee %s: %v", session.MenteeID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for mentee %s.", title, session.MenteeID)
	}
}

func generateCertificateHTML(menteeName, mentorName, title string) (string, error) {
	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		MenteeName     string
		MentorName     string
		Title          string
		SessionCount   int
		CompletionDate string
	}{
		MenteeName:     menteeName,
		MentorName:     mentorName,
		Title:          title,
		SessionCount:   certificateCompletionCount,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, menteeID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", menteeID, uuid.New().String()),
		Folder:       "mentor_hub_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
