package utils

import (
	"fmt"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService(apiToken, sender string) *EmailService {
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a plain-text email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, body string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordResetOTP mails the one-time code for the password-reset flow.
func (es *EmailService) SendPasswordResetOTP(toEmail string, otp int) error {
	return es.SendEmail(
		toEmail,
		"Password Reset OTP",
		fmt.Sprintf("Your OTP for password reset is: %d", otp),
	)
}
