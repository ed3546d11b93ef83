package holidayshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/holidays"
	"internhr/internal/transport/http/api"
	"internhr/internal/transport/http/middleware"
	"internhr/internal/transport/http/shared"
)

type Handler struct {
	Service *holidays.Service
}

func NewHandler(service *holidays.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Delete("/{holidayID}", h.handleDelete)
	})
}

type holidayPayload struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Optional bool   `json:"optional"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload holidayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "holiday name is required")
	date, dateOK := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !dateOK {
		return
	}

	created, err := h.Service.Create(r.Context(), holidays.Holiday{Name: payload.Name, Date: date, Optional: payload.Optional})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_create_failed", "failed to create holiday", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid year", middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	out, err := h.Service.ListYear(r.Context(), year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holiday_list_failed", "failed to list holidays", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "holidayID")); err != nil {
		if errors.Is(err, holidays.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "holiday not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "holiday_delete_failed", "failed to delete holiday", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
