package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailService sends mail through a plain SMTP relay.
func NewSMTPEmailService(host string, port int, username, password, from string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendBookingReceived(ctx context.Context, to, name, vehicleName, reference string, pickup, dropoff time.Time) error {
	subject := "We received your booking request"
	body := fmt.Sprintf("Hello %s,\n\nThank you for your booking request for the %s, from %s to %s.\n\nYour booking reference is %s. We will review your request shortly and send you a payment link once it is approved.\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, pickup.Format("Jan 2, 2006"), dropoff.Format("Jan 2, 2006"), reference)
	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendPaymentLink(ctx context.Context, to, name, vehicleName, paymentLink string) error {
	subject := "Your booking is approved - payment required"
	body := fmt.Sprintf("Hello %s,\n\nGood news: your booking for the %s has been approved.\n\nPlease complete your payment using the link below to confirm the booking:\n\n%s\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, paymentLink)
	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendBookingConfirmed(ctx context.Context, to, name, vehicleName, reference string, pickup time.Time) error {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s for the %s is confirmed. We look forward to seeing you on %s.\n\nBest regards,\nThe FleetRent Team",
		name, reference, vehicleName, pickup.Format("Jan 2, 2006"))
	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendBookingCancelled(ctx context.Context, to, name, vehicleName, reference string) error {
	subject := "Your booking has been cancelled"
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s for the %s has been cancelled. If you did not request this, please contact us.\n\nBest regards,\nThe FleetRent Team",
		name, reference, vehicleName)
	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendPickupReminder(ctx context.Context, to, name, vehicleName string, pickup time.Time) error {
	subject := "Pickup reminder"
	body := fmt.Sprintf("Hello %s,\n\nA quick reminder that your %s is scheduled for pickup on %s.\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, pickup.Format("Jan 2, 2006 15:04"))
	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendAdminAlert(ctx context.Context, subject, message string) error {
	return s.send(s.from, subject, message)
}

type sendgridEmailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	adminEmail string
}

// NewSendGridEmailService sends mail through the SendGrid API.
func NewSendGridEmailService(apiKey, fromEmail, fromName, adminEmail string) EmailService {
	return &sendgridEmailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (s *sendgridEmailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendgridEmailService) SendBookingReceived(ctx context.Context, to, name, vehicleName, reference string, pickup, dropoff time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nThank you for your booking request for the %s, from %s to %s.\n\nYour booking reference is %s. We will review your request shortly and send you a payment link once it is approved.\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, pickup.Format("Jan 2, 2006"), dropoff.Format("Jan 2, 2006"), reference)
	return s.send(to, name, "We received your booking request", body)
}

func (s *sendgridEmailService) SendPaymentLink(ctx context.Context, to, name, vehicleName, paymentLink string) error {
	body := fmt.Sprintf("Hello %s,\n\nGood news: your booking for the %s has been approved.\n\nPlease complete your payment using the link below to confirm the booking:\n\n%s\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, paymentLink)
	return s.send(to, name, "Your booking is approved - payment required", body)
}

func (s *sendgridEmailService) SendBookingConfirmed(ctx context.Context, to, name, vehicleName, reference string, pickup time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s for the %s is confirmed. We look forward to seeing you on %s.\n\nBest regards,\nThe FleetRent Team",
		name, reference, vehicleName, pickup.Format("Jan 2, 2006"))
	return s.send(to, name, "Your booking is confirmed", body)
}

func (s *sendgridEmailService) SendBookingCancelled(ctx context.Context, to, name, vehicleName, reference string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s for the %s has been cancelled. If you did not request this, please contact us.\n\nBest regards,\nThe FleetRent Team",
		name, reference, vehicleName)
	return s.send(to, name, "Your booking has been cancelled", body)
}

func (s *sendgridEmailService) SendPickupReminder(ctx context.Context, to, name, vehicleName string, pickup time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nA quick reminder that your %s is scheduled for pickup on %s.\n\nBest regards,\nThe FleetRent Team",
		name, vehicleName, pickup.Format("Jan 2, 2006 15:04"))
	return s.send(to, name, "Pickup reminder", body)
}

func (s *sendgridEmailService) SendAdminAlert(ctx context.Context, subject, message string) error {
	to := s.adminEmail
	if to == "" {
		to = s.fromEmail
	}
	return s.send(to, "Admin", subject, message)
}
