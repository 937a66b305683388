package utils

import (
	"fmt"
	"log"

	"ledgerline/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer dispatches transactional email. Controllers depend on the
// interface so tests can swap in a recording fake.
type Mailer interface {
	SendOTPEmail(email, otp string) error
	SendPaymentConfirmationEmail(email string, purchaseID uint) error
	SendITRStatusEmail(email, status, remarks string) error
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	sender string
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridApiKey),
		sender: cfg.EmailSender,
	}
}

func (m *SendGridMailer) send(to, subject, htmlBody string) error {
	from := mail.NewEmail("LedgerLine", m.sender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	resp, err := m.client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("SendGrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}

	return nil
}

func (m *SendGridMailer) SendOTPEmail(email, otp string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">LedgerLine Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">This code expires in 10 minutes. Do not share it with anyone.</p>
				</div>
			</body>
		</html>
	`, otp)

	return m.send(email, "Verification Code - LedgerLine", body)
}

func (m *SendGridMailer) SendPaymentConfirmationEmail(email string, purchaseID uint) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Payment Successful</h2>
					<p style="font-size: 16px; color: #555555;">Your plan is now active (purchase #%d).</p>
					<p style="font-size: 14px; color: #666666;">You can now proceed to file your ITR from your dashboard.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">LedgerLine Team</p>
				</div>
			</body>
		</html>
	`, purchaseID)

	return m.send(email, "Payment Successful - Plan Activated", body)
}

func (m *SendGridMailer) SendITRStatusEmail(email, status, remarks string) error {
	if remarks == "" {
		remarks = "None"
	}
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">ITR Status Updated</h2>
					<p style="font-size: 16px; color: #555555;">Your ITR filing status has been updated to:</p>
					<h3 style="text-align: center; color: #2196F3; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Remarks: %s</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">LedgerLine Team</p>
				</div>
			</body>
		</html>
	`, status, remarks)

	return m.send(email, fmt.Sprintf("ITR Status Updated: %s", status), body)
}
