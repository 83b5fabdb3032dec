package http

import (
	"net/http"

	"ecoride-backend/internal/service"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the catalog and reservation endpoints.
func RegisterRoutes(router *mux.Router, catalog service.CatalogService, booking service.BookingService) {
	cars := NewCarHandler(catalog)
	reservations := NewReservationHandler(booking)

	api := router.PathPrefix("/api/v1").Subrouter()

	// "available" must be matched before the {id} routes
	api.HandleFunc("/cars/available", cars.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/cars", cars.List).Methods(http.MethodGet)
	api.HandleFunc("/cars", cars.Create).Methods(http.MethodPost)
	api.HandleFunc("/cars/{id}", cars.Get).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", cars.Update).Methods(http.MethodPut)
	api.HandleFunc("/cars/{id}", cars.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/reservations", reservations.Create).Methods(http.MethodPost)
	api.HandleFunc("/reservations", reservations.List).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", reservations.Get).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", reservations.Update).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{id}/cancel", reservations.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/complete", reservations.Complete).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/invoice", reservations.Invoice).Methods(http.MethodGet)
}

// NewRouter builds the full HTTP surface with middleware and health check.
func NewRouter(catalog service.CatalogService, booking service.BookingService) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware, RecoveryMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	RegisterRoutes(router, catalog, booking)
	return router
}
