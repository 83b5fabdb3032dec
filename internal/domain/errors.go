package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCarNotFound          = errors.New("car not found")
	ErrCarUnavailable       = errors.New("car is not available")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationNotActive = errors.New("reservation is not active")
	ErrWindowExpired        = errors.New("grace window has elapsed")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrUnknownCategory      = errors.New("unknown category")
)

const (
	RuleBookingWindow  = "booking window"
	RuleNoAvailability = "no availability"
	RuleInvalidInput   = "invalid input"
)

// ValidationError reports caller input that breaks a business rule.
type ValidationError struct {
	Rule    string
	Message string
}

func NewValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Rule
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// IsValidation reports whether err wraps a ValidationError, optionally for a
// specific rule.
func IsValidation(err error, rule string) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return rule == "" || ve.Rule == rule
}
