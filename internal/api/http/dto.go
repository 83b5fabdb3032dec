package http

import (
	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type carRequest struct {
	ID       string `json:"id"`
	Model    string `json:"model"`
	Category string `json:"category"`
}

type customerPayload struct {
	IDDocument    string `json:"id_document"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

type createReservationRequest struct {
	Customer        customerPayload `json:"customer"`
	Category        string          `json:"category"`
	StartDate       string          `json:"start_date"`
	NumDays         int             `json:"num_days"`
	ExpectedTotalKm int             `json:"expected_total_km"`
}

type updateReservationRequest struct {
	NumDays         int `json:"num_days"`
	ExpectedTotalKm int `json:"expected_total_km"`
}

type carResponse struct {
	ID           string          `json:"id"`
	Model        string          `json:"model"`
	Category     domain.Category `json:"category"`
	DailyRate    string          `json:"daily_rate"`
	Availability string          `json:"availability"`
}

type reservationResponse struct {
	ID                string          `json:"id"`
	Customer          customerPayload `json:"customer"`
	CarID             string          `json:"car_id"`
	Category          domain.Category `json:"category"`
	DailyRate         string          `json:"daily_rate"`
	BookingDate       string          `json:"booking_date"`
	RentalStartDate   string          `json:"rental_start_date"`
	NumDays           int             `json:"num_days"`
	ExpectedTotalKm   int             `json:"expected_total_km"`
	RefundableDeposit string          `json:"refundable_deposit"`
	Status            string          `json:"status"`
}

type breakdownResponse struct {
	Currency      string `json:"currency"`
	DailyRate     string `json:"daily_rate"`
	NumDays       int    `json:"num_days"`
	FreeKmTotal   int    `json:"free_km_total"`
	ExtraKm       int    `json:"extra_km"`
	BasePrice     string `json:"base_price"`
	ExtraKmCharge string `json:"extra_km_charge"`
	Discount      string `json:"discount"`
	Subtotal      string `json:"subtotal"`
	Tax           string `json:"tax"`
	Deposit       string `json:"deposit"`
	Payable       string `json:"payable"`
}

type invoiceResponse struct {
	ID              string            `json:"id"`
	ReservationID   string            `json:"reservation_id"`
	IssueDate       string            `json:"issue_date"`
	Car             carResponse       `json:"car"`
	Customer        customerPayload   `json:"customer"`
	RentalStartDate string            `json:"rental_start_date"`
	NumDays         int               `json:"num_days"`
	ExpectedTotalKm int               `json:"expected_total_km"`
	Breakdown       breakdownResponse `json:"breakdown"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (p customerPayload) toDomain() domain.Customer {
	return domain.Customer{
		IDDocument:    p.IDDocument,
		Name:          p.Name,
		ContactNumber: p.ContactNumber,
		Email:         p.Email,
	}
}

func toCustomerPayload(c domain.Customer) customerPayload {
	return customerPayload{
		IDDocument:    c.IDDocument,
		Name:          c.Name,
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
	}
}

func toCarResponse(c domain.Car) carResponse {
	return carResponse{
		ID:           c.ID,
		Model:        c.Model,
		Category:     c.Category,
		DailyRate:    money(c.DailyRate),
		Availability: string(c.Availability),
	}
}

func toCarResponses(cars []domain.Car) []carResponse {
	out := make([]carResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, toCarResponse(c))
	}
	return out
}

func toReservationResponse(r domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:                r.ID,
		Customer:          toCustomerPayload(r.Customer),
		CarID:             r.CarID,
		Category:          r.Category,
		DailyRate:         money(r.DailyRate),
		BookingDate:       utils.FormatDate(r.BookingDate),
		RentalStartDate:   utils.FormatDate(r.RentalStartDate),
		NumDays:           r.NumDays,
		ExpectedTotalKm:   r.ExpectedTotalKm,
		RefundableDeposit: money(r.RefundableDeposit),
		Status:            string(r.Status),
	}
}

func toReservationResponses(rs []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReservationResponse(r))
	}
	return out
}

func toBreakdownResponse(b domain.Breakdown) breakdownResponse {
	return breakdownResponse{
		Currency:      b.Currency,
		DailyRate:     money(b.DailyRate),
		NumDays:       b.NumDays,
		FreeKmTotal:   b.FreeKmTotal,
		ExtraKm:       b.ExtraKm,
		BasePrice:     money(b.BasePrice),
		ExtraKmCharge: money(b.ExtraKmCharge),
		Discount:      money(b.Discount),
		Subtotal:      money(b.Subtotal),
		Tax:           money(b.Tax),
		Deposit:       money(b.Deposit),
		Payable:       money(b.Payable),
	}
}

func toInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:              inv.ID,
		ReservationID:   inv.ReservationID,
		IssueDate:       utils.FormatDate(inv.IssueDate),
		Car:             toCarResponse(inv.Car),
		Customer:        toCustomerPayload(inv.Customer),
		RentalStartDate: utils.FormatDate(inv.RentalStartDate),
		NumDays:         inv.NumDays,
		ExpectedTotalKm: inv.ExpectedTotalKm,
		Breakdown:       toBreakdownResponse(inv.Breakdown),
	}
}
