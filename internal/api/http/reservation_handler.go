package http

import (
	"encoding/json"
	"net/http"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/service"
	"ecoride-backend/internal/utils"

	"github.com/gorilla/mux"
)

// ReservationHandler serves the reservation lifecycle and invoices.
type ReservationHandler struct {
	booking service.BookingService
}

func NewReservationHandler(booking service.BookingService) *ReservationHandler {
	return &ReservationHandler{booking: booking}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	start, err := utils.ParseDay(req.StartDate)
	if err != nil {
		badRequest(w, "start_date must be YYYY-MM-DD")
		return
	}

	id, err := h.booking.CreateReservation(r.Context(), req.Customer.toDomain(), category, start, req.NumDays, req.ExpectedTotalKm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.booking.FindReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(*res))
}

// List filters by ?customer= or ?start_date=, and returns the whole ledger
// when neither is given.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		results []domain.Reservation
		err     error
	)
	switch {
	case q.Get("customer") != "":
		results, err = h.booking.SearchByCustomerName(r.Context(), q.Get("customer"))
	case q.Get("start_date") != "":
		date, perr := utils.ParseDay(q.Get("start_date"))
		if perr != nil {
			badRequest(w, "start_date must be YYYY-MM-DD")
			return
		}
		results, err = h.booking.ListReservationsByStartDate(r.Context(), date)
	default:
		results, err = h.booking.ListReservations(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponses(results))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.booking.FindReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(*res))
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.booking.UpdateReservation(r.Context(), id, req.NumDays, req.ExpectedTotalKm); err != nil {
		writeError(w, r, err)
		return
	}
	h.Get(w, r)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.CancelReservation(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	h.Get(w, r)
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if err := h.booking.CompleteReservation(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	h.Get(w, r)
}

func (h *ReservationHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.booking.IssueInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceResponse(inv))
}
