// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark. It is optional: when
// POSTMARK_API_TOKEN is not set the service is disabled and every send is a
// no-op, so the API works without an email account.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set; email notifications disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// Enabled reports whether a Postmark client is configured.
func (es *EmailService) Enabled() bool {
	return es != nil && es.client != nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if !es.Enabled() {
		return nil
	}

	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user
func (es *EmailService) SendWelcomeEmail(toEmail string) error {
	subject := "Welcome to the shop"
	htmlContent := "<strong>Your account has been created.</strong> You can now log in and start shopping."
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendPasswordChangedEmail notifies a user that their password was updated
func (es *EmailService) SendPasswordChangedEmail(toEmail string) error {
	subject := "Your password was changed"
	htmlContent := "<strong>The password for your account was just changed.</strong> If this was not you, please contact support."
	return es.SendEmail(toEmail, subject, htmlContent)
}
