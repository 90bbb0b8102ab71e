// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/reservation-ledger/internal/model"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/repository"
	"github.com/Shivanand-hulikatti/reservation-ledger/internal/service"
)

// LedgerHandler holds all HTTP handlers for the reservation ledger API.
type LedgerHandler struct {
	catalog      *service.CatalogService
	reservations *service.ReservationService
	reports      *service.ReportService
}

// NewLedgerHandler constructs a LedgerHandler.
func NewLedgerHandler(
	catalog *service.CatalogService,
	reservations *service.ReservationService,
	reports *service.ReportService,
) *LedgerHandler {
	return &LedgerHandler{catalog: catalog, reservations: reservations, reports: reports}
}

// Routes mounts the API on r.
func (h *LedgerHandler) Routes(r chi.Router) {
	r.Get("/health", HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Get("/{id}/fill-rate", h.FillRate)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}/reservations", h.ListUserReservations)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", h.CreateReservation)
		r.Get("/", h.ListReservations)
		r.Get("/{id}", h.GetReservation)
		r.Post("/{id}/cancel", h.CancelReservation)
	})

	r.Get("/stats", h.Stats)
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// writeServiceError maps ledger errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var capErr *repository.CapacityError
	switch {
	case errors.As(err, &capErr):
		available := capErr.Available
		writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: err.Error(), Available: &available})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ─── Events ───────────────────────────────────────────────────────────────────

// CreateEvent handles POST /events
func (h *LedgerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxCapacity < 0 {
		writeError(w, http.StatusBadRequest, "max_capacity must not be negative")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	writeJSON(w, http.StatusCreated, h.catalog.CreateEvent(req, category))
}

// ListEvents handles GET /events
// At most one of ?q=, ?category= or ?available= applies, in that order.
func (h *LedgerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	switch {
	case query.Has("q"):
		writeJSON(w, http.StatusOK, h.catalog.SearchEventsByName(query.Get("q")))
	case query.Has("category"):
		category, err := model.ParseCategory(query.Get("category"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, h.catalog.FilterEventsByCategory(category))
	case query.Has("available"):
		onlyAvailable, err := strconv.ParseBool(query.Get("available"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "available must be a boolean")
			return
		}
		if onlyAvailable {
			writeJSON(w, http.StatusOK, h.catalog.FilterAvailableEvents())
			return
		}
		writeJSON(w, http.StatusOK, h.catalog.ListEvents())
	default:
		writeJSON(w, http.StatusOK, h.catalog.ListEvents())
	}
}

// GetEvent handles GET /events/{id}
func (h *LedgerHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.GetEvent(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// FillRate handles GET /events/{id}/fill-rate
func (h *LedgerHandler) FillRate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rate, err := h.reports.FillRate(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.FillRateResponse{EventID: id, FillRate: rate})
}

// ─── Users ────────────────────────────────────────────────────────────────────

// CreateUser handles POST /users
func (h *LedgerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, h.catalog.CreateUser(req))
}

// ListUsers handles GET /users
func (h *LedgerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ListUsers())
}

// ListUserReservations handles GET /users/{id}/reservations
func (h *LedgerHandler) ListUserReservations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.catalog.GetUser(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.reservations.GetReservationsByUser(id))
}

// ─── Reservations ─────────────────────────────────────────────────────────────

// CreateReservation handles POST /reservations
func (h *LedgerHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.reservations.CreateReservation(req.UserID, req.EventID, req.Seats)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListReservations handles GET /reservations
func (h *LedgerHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reservations.ListReservations())
}

// GetReservation handles GET /reservations/{id}
func (h *LedgerHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservations.GetReservation(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CancelReservation handles POST /reservations/{id}/cancel
// Repeating the call returns the cancelled reservation again.
func (h *LedgerHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservations.CancelReservation(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Reports ──────────────────────────────────────────────────────────────────

// Stats handles GET /stats
func (h *LedgerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reports.Summary())
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
