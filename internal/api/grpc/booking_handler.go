package grpc

import (
	"context"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/service"
	"ecoride-backend/internal/utils"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type BookingHandler struct {
	catalog service.CatalogService
	booking service.BookingService
}

func NewBookingHandler(catalog service.CatalogService, booking service.BookingService) *BookingHandler {
	return &BookingHandler{catalog: catalog, booking: booking}
}

func (h *BookingHandler) AddCar(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	category, err := domain.ParseCategory(stringField(req, "category"))
	if err != nil {
		return nil, toStatus(err)
	}
	car, err := h.catalog.AddCar(ctx, stringField(req, "id"), stringField(req, "model"), category)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"car": MapCarToMap(*car)})
}

// ListCars returns the whole catalog, or only available cars when
// available_only is set, optionally narrowed by category.
func (h *BookingHandler) ListCars(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		cars []domain.Car
		err  error
	)
	raw := stringField(req, "category")
	switch {
	case raw != "":
		category, perr := domain.ParseCategory(raw)
		if perr != nil {
			return nil, toStatus(perr)
		}
		cars, err = h.catalog.ListAvailableByCategory(ctx, category)
	case req.GetFields()["available_only"].GetBoolValue():
		cars, err = h.catalog.ListAvailableCars(ctx)
	default:
		cars, err = h.catalog.ListAllCars(ctx)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	items := make([]any, 0, len(cars))
	for _, c := range cars {
		items = append(items, MapCarToMap(c))
	}
	return toStruct(map[string]any{"cars": items})
}

func (h *BookingHandler) CreateReservation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	category, err := domain.ParseCategory(stringField(req, "category"))
	if err != nil {
		return nil, toStatus(err)
	}
	start, err := utils.ParseDay(stringField(req, "start_date"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "start_date must be YYYY-MM-DD")
	}
	numDays, err := intField(req, "num_days")
	if err != nil {
		return nil, err
	}
	km, err := intField(req, "expected_total_km")
	if err != nil {
		return nil, err
	}

	customer := MapCustomerFromStruct(structField(req, "customer"))
	id, err := h.booking.CreateReservation(ctx, customer, category, start, numDays, km)
	if err != nil {
		return nil, toStatus(err)
	}
	return h.reservationResponse(ctx, id)
}

func (h *BookingHandler) CancelReservation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "id")
	if err := h.booking.CancelReservation(ctx, id); err != nil {
		return nil, toStatus(err)
	}
	return h.reservationResponse(ctx, id)
}

func (h *BookingHandler) UpdateReservation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "id")
	numDays, err := intField(req, "num_days")
	if err != nil {
		return nil, err
	}
	km, err := intField(req, "expected_total_km")
	if err != nil {
		return nil, err
	}
	if err := h.booking.UpdateReservation(ctx, id, numDays, km); err != nil {
		return nil, toStatus(err)
	}
	return h.reservationResponse(ctx, id)
}

func (h *BookingHandler) GetReservation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.reservationResponse(ctx, stringField(req, "id"))
}

// SearchReservations filters by customer_name or start_date; with neither it
// lists the whole ledger.
func (h *BookingHandler) SearchReservations(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		results []domain.Reservation
		err     error
	)
	name := stringField(req, "customer_name")
	date := stringField(req, "start_date")
	switch {
	case name != "":
		results, err = h.booking.SearchByCustomerName(ctx, name)
	case date != "":
		day, perr := utils.ParseDay(date)
		if perr != nil {
			return nil, status.Error(codes.InvalidArgument, "start_date must be YYYY-MM-DD")
		}
		results, err = h.booking.ListReservationsByStartDate(ctx, day)
	default:
		results, err = h.booking.ListReservations(ctx)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	items := make([]any, 0, len(results))
	for _, r := range results {
		items = append(items, MapReservationToMap(r))
	}
	return toStruct(map[string]any{"reservations": items})
}

func (h *BookingHandler) CalculateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	inv, err := h.booking.IssueInvoice(ctx, stringField(req, "id"))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{
		"invoice_id":        inv.ID,
		"reservation_id":    inv.ReservationID,
		"issue_date":        utils.FormatDate(inv.IssueDate),
		"car":               MapCarToMap(inv.Car),
		"customer":          MapCustomerToMap(inv.Customer),
		"rental_start_date": utils.FormatDate(inv.RentalStartDate),
		"num_days":          inv.NumDays,
		"expected_total_km": inv.ExpectedTotalKm,
		"breakdown":         MapBreakdownToMap(inv.Breakdown),
	})
}

func (h *BookingHandler) reservationResponse(ctx context.Context, id string) (*structpb.Struct, error) {
	res, err := h.booking.FindReservation(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"reservation": MapReservationToMap(*res)})
}
