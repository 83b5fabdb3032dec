package http

import (
	"encoding/json"
	"net/http"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/service"

	"github.com/gorilla/mux"
)

// CarHandler serves the vehicle catalog.
type CarHandler struct {
	catalog service.CatalogService
}

func NewCarHandler(catalog service.CatalogService) *CarHandler {
	return &CarHandler{catalog: catalog}
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.catalog.ListAllCars(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponses(cars))
}

// ListAvailable optionally narrows by ?category=.
func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	var (
		cars []domain.Car
		err  error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, perr := domain.ParseCategory(raw)
		if perr != nil {
			writeError(w, r, perr)
			return
		}
		cars, err = h.catalog.ListAvailableByCategory(r.Context(), category)
	} else {
		cars, err = h.catalog.ListAvailableCars(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponses(cars))
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.catalog.GetCar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(*car))
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.catalog.AddCar(r.Context(), req.ID, req.Model, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCarResponse(*car))
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	car, err := h.catalog.UpdateCar(r.Context(), mux.Vars(r)["id"], req.Model, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(*car))
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RemoveCar(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
