package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecoride-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReservation(email string) *domain.Reservation {
	return &domain.Reservation{
		ID:                "R001",
		Customer:          domain.Customer{IDDocument: "N1", Name: "Nimal Perera", Email: email},
		CarID:             "C002",
		Category:          domain.CategoryElectric,
		RentalStartDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		NumDays:           5,
		RefundableDeposit: decimal.NewFromInt(5000),
	}
}

func TestEmailService_Send(t *testing.T) {
	ctx := context.Background()
	car := &domain.Car{ID: "C002", Model: "Nissan Leaf", Category: domain.CategoryElectric}

	t.Run("Confirmation", func(t *testing.T) {
		var sent *mail.SGMailV3
		svc := &emailService{fromEmail: "bookings@ecoride.lk", fromName: "EcoRide", send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			sent = msg
			return 202, "", nil
		}}

		require.NoError(t, svc.SendReservationConfirmation(ctx, testReservation("nimal@example.com"), car))
		require.NotNil(t, sent)
		assert.Equal(t, "EcoRide reservation R001 confirmed", sent.Subject)
		assert.Equal(t, "bookings@ecoride.lk", sent.From.Address)
		require.Len(t, sent.Personalizations, 1)
		assert.Equal(t, "nimal@example.com", sent.Personalizations[0].To[0].Address)
		assert.Contains(t, sent.Content[0].Value, "Nissan Leaf (Electric)")
		assert.Contains(t, sent.Content[0].Value, "2025-06-10")
	})

	t.Run("No address", func(t *testing.T) {
		called := false
		svc := &emailService{send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			called = true
			return 202, "", nil
		}}
		assert.NoError(t, svc.SendReservationCancellation(ctx, testReservation("")))
		assert.False(t, called)
	})

	t.Run("Error status", func(t *testing.T) {
		svc := &emailService{send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			return 401, `{"errors":[{"message":"bad key"}]}`, nil
		}}
		err := svc.SendReservationCompletion(ctx, testReservation("nimal@example.com"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("Transport error", func(t *testing.T) {
		boom := errors.New("connection reset")
		svc := &emailService{send: func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
			return 0, "", boom
		}}
		err := svc.SendReservationCancellation(ctx, testReservation("nimal@example.com"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestLogEmailService(t *testing.T) {
	ctx := context.Background()
	svc := NewLogEmailService()
	r := testReservation("nimal@example.com")

	assert.NoError(t, svc.SendReservationConfirmation(ctx, r, &domain.Car{ID: "C002"}))
	assert.NoError(t, svc.SendReservationCancellation(ctx, r))
	assert.NoError(t, svc.SendReservationCompletion(ctx, r))
}

func TestNewEmailService(t *testing.T) {
	svc := NewEmailService("SG.test", "bookings@ecoride.lk", "EcoRide")
	assert.NotNil(t, svc)
}
