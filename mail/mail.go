package mail

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a SendGrid v3 message. *sendgrid.Client satisfies it.
type Sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer sends rendered reports as e-mail attachments.
type Mailer struct {
	from   string
	client Sender
}

func NewMailer(apiKey, fromEmail string) *Mailer {
	return &Mailer{
		from:   fromEmail,
		client: sendgrid.NewSendClient(apiKey),
	}
}

// NewMailerWithSender is used when the transport is supplied by the caller.
func NewMailerWithSender(fromEmail string, client Sender) *Mailer {
	return &Mailer{from: fromEmail, client: client}
}

// SendReport mails the PDF at path to the given address.
func (m *Mailer) SendReport(to, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	message := buildReportMessage(m.from, to, filepath.Base(path), data)

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}

	return nil
}

func buildReportMessage(fromEmail, to, filename string, pdf []byte) *mail.SGMailV3 {
	subject := "Athlete record charts"
	plainTextContent := "The athlete record charts you requested are attached."
	htmlContent := `
        <html>
        <body>
            <h2>Athlete record charts</h2>
            <p>The athlete record charts you requested are attached as a PDF.</p>
        </body>
        </html>
    `

	from := mail.NewEmail("Roster Charts", fromEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, plainTextContent, htmlContent)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(filename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	return message
}
