package grpc

import (
	"math"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/utils"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

// intField reads a whole number. JSON numbers arrive as doubles, so a
// fractional value is rejected rather than truncated.
func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a whole number", name)
	}
	return int(n), nil
}

func structField(s *structpb.Struct, name string) *structpb.Struct {
	return s.GetFields()[name].GetStructValue()
}

func MapCustomerFromStruct(s *structpb.Struct) domain.Customer {
	return domain.Customer{
		IDDocument:    stringField(s, "id_document"),
		Name:          stringField(s, "name"),
		ContactNumber: stringField(s, "contact_number"),
		Email:         stringField(s, "email"),
	}
}

func MapCustomerToMap(c domain.Customer) map[string]any {
	return map[string]any{
		"id_document":    c.IDDocument,
		"name":           c.Name,
		"contact_number": c.ContactNumber,
		"email":          c.Email,
	}
}

func MapCarToMap(c domain.Car) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"model":        c.Model,
		"category":     string(c.Category),
		"daily_rate":   c.DailyRate.StringFixed(2),
		"availability": string(c.Availability),
	}
}

func MapReservationToMap(r domain.Reservation) map[string]any {
	return map[string]any{
		"id":                 r.ID,
		"customer":           MapCustomerToMap(r.Customer),
		"car_id":             r.CarID,
		"category":           string(r.Category),
		"daily_rate":         r.DailyRate.StringFixed(2),
		"booking_date":       utils.FormatDate(r.BookingDate),
		"rental_start_date":  utils.FormatDate(r.RentalStartDate),
		"num_days":           r.NumDays,
		"expected_total_km":  r.ExpectedTotalKm,
		"refundable_deposit": r.RefundableDeposit.StringFixed(2),
		"status":             string(r.Status),
	}
}

func MapBreakdownToMap(b domain.Breakdown) map[string]any {
	return map[string]any{
		"currency":        b.Currency,
		"daily_rate":      b.DailyRate.StringFixed(2),
		"num_days":        b.NumDays,
		"free_km_total":   b.FreeKmTotal,
		"extra_km":        b.ExtraKm,
		"base_price":      b.BasePrice.StringFixed(2),
		"extra_km_charge": b.ExtraKmCharge.StringFixed(2),
		"discount":        b.Discount.StringFixed(2),
		"subtotal":        b.Subtotal.StringFixed(2),
		"tax":             b.Tax.StringFixed(2),
		"deposit":         b.Deposit.StringFixed(2),
		"payable":         b.Payable.StringFixed(2),
	}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return s, nil
}
