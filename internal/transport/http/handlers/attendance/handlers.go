package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/attendance"
	"internhr/internal/transport/http/api"
	"internhr/internal/transport/http/middleware"
	"internhr/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/punch-in", h.handlePunchIn)
		r.Post("/punch-out", h.handlePunchOut)
		r.Get("/people/{personID}", h.handleHistory)
		r.Get("/daily", h.handleDaily)
	})
}

type punchPayload struct {
	PersonID string `json:"personId"`
}

func (h *Handler) handlePunchIn(w http.ResponseWriter, r *http.Request) {
	var payload punchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PersonID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "personId is required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.PunchIn(r.Context(), payload.PersonID, time.Now()); err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
			api.Fail(w, http.StatusConflict, "already_punched_in", "an open punch already exists for today", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "punch_in_failed", "failed to punch in", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "punched_in"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePunchOut(w http.ResponseWriter, r *http.Request) {
	var payload punchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PersonID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "personId is required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.PunchOut(r.Context(), payload.PersonID, time.Now()); err != nil {
		if errors.Is(err, attendance.ErrNoOpenPunch) {
			api.Fail(w, http.StatusConflict, "no_open_punch", "no open punch to close", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "punch_out_failed", "failed to punch out", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "punched_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	from, fromOK := v.Date("from", r.URL.Query().Get("from"))
	to, toOK := v.Date("to", r.URL.Query().Get("to"))
	if fromOK && toOK {
		v.DateOrder("from", from, "to", to)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	punches, err := h.Service.History(r.Context(), chi.URLParam(r, "personID"), from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_history_failed", "failed to load history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, punches, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil || parsed.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_request", "invalid date", middleware.GetRequestID(r.Context()))
			return
		}
		day = parsed
	}

	punches, err := h.Service.DailySheet(r.Context(), day)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_daily_failed", "failed to load daily sheet", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, punches, middleware.GetRequestID(r.Context()))
}
