package service

import (
	"context"
	"fmt"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendFunc func(ctx context.Context, msg *mail.SGMailV3) (status int, body string, err error)

type emailService struct {
	fromEmail string
	fromName  string
	send      sendFunc
}

// NewEmailService sends customer notices through SendGrid.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	client := sendgrid.NewSendClient(apiKey)
	return &emailService{
		fromEmail: fromEmail,
		fromName:  fromName,
		send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			resp, err := client.SendWithContext(ctx, msg)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, r *domain.Reservation, car *domain.Car) error {
	subject := fmt.Sprintf("EcoRide reservation %s confirmed", r.ID)
	body := fmt.Sprintf("Hello %s,\n\nYour reservation %s is confirmed.\n\nCar: %s (%s)\nRental start: %s\nNumber of days: %d\nRefundable deposit: %s\n\nYou may cancel or change this booking within 2 days of booking.\n\nBest regards,\nThe EcoRide Team",
		r.Customer.Name, r.ID, car.Model, car.Category.Label(), utils.FormatDate(r.RentalStartDate), r.NumDays, r.RefundableDeposit.StringFixed(2))
	return s.sendTo(ctx, r.Customer, subject, body)
}

func (s *emailService) SendReservationCancellation(ctx context.Context, r *domain.Reservation) error {
	subject := fmt.Sprintf("EcoRide reservation %s cancelled", r.ID)
	body := fmt.Sprintf("Hello %s,\n\nYour reservation %s starting %s has been cancelled.\n\nBest regards,\nThe EcoRide Team",
		r.Customer.Name, r.ID, utils.FormatDate(r.RentalStartDate))
	return s.sendTo(ctx, r.Customer, subject, body)
}

func (s *emailService) SendReservationCompletion(ctx context.Context, r *domain.Reservation) error {
	subject := fmt.Sprintf("Thank you for riding with EcoRide (%s)", r.ID)
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s has been completed. Your invoice number is %s.\n\nBest regards,\nThe EcoRide Team",
		r.Customer.Name, r.ID, domain.InvoiceID(r.ID))
	return s.sendTo(ctx, r.Customer, subject, body)
}

func (s *emailService) sendTo(ctx context.Context, c domain.Customer, subject, body string) error {
	if c.Email == "" {
		logger.Debug("Customer has no email address, skipping notice", "customer", c.Name, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(c.Name, c.Email)
	msg := mail.NewSingleEmail(from, subject, to, body, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", c.Email, "subject", subject)
	status, respBody, err := s.send(ctx, msg)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if status >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", status, respBody)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", status)
	return nil
}

type logEmailService struct{}

// NewLogEmailService writes notices to the log instead of sending them. It is
// used when no SendGrid key is configured.
func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendReservationConfirmation(ctx context.Context, r *domain.Reservation, car *domain.Car) error {
	logger.Info("Reservation confirmation", "reservationID", r.ID, "to", r.Customer.Email, "carID", car.ID)
	return nil
}

func (logEmailService) SendReservationCancellation(ctx context.Context, r *domain.Reservation) error {
	logger.Info("Reservation cancellation", "reservationID", r.ID, "to", r.Customer.Email)
	return nil
}

func (logEmailService) SendReservationCompletion(ctx context.Context, r *domain.Reservation) error {
	logger.Info("Reservation completion", "reservationID", r.ID, "to", r.Customer.Email)
	return nil
}
