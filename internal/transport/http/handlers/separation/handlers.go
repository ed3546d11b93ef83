package separationhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/separation"
	"internhr/internal/transport/http/api"
	"internhr/internal/transport/http/middleware"
	"internhr/internal/transport/http/shared"
)

type Handler struct {
	Service *separation.Service
}

func NewHandler(service *separation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/separations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSubmit)
		r.Get("/{requestID}", h.handleGet)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/reject", h.handleReject)
	})
}

type submitPayload struct {
	PersonID        string `json:"personId"`
	Kind            string `json:"kind"`
	Reason          string `json:"reason"`
	LastWorkingDate string `json:"lastWorkingDate"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("personId", payload.PersonID, "person id is required")
	v.Required("reason", payload.Reason, "reason is required")
	v.Enum("kind", payload.Kind, []string{separation.KindResignation, separation.KindTermination}, "must be resignation or termination")

	req := separation.Request{
		PersonID: payload.PersonID,
		Kind:     payload.Kind,
		Reason:   payload.Reason,
	}
	if payload.LastWorkingDate != "" {
		if lwd, ok := v.Date("lastWorkingDate", payload.LastWorkingDate); ok {
			req.LastWorkingDate = &lwd
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, separation.ErrUnknownKind):
			api.Fail(w, http.StatusBadRequest, "unknown_kind", "kind must be resignation or termination", middleware.GetRequestID(r.Context()))
		case errors.Is(err, separation.ErrReasonRequired):
			api.Fail(w, http.StatusBadRequest, "reason_required", "reason is required", middleware.GetRequestID(r.Context()))
		case errors.Is(err, separation.ErrPendingExists):
			api.Fail(w, http.StatusConflict, "pending_exists", "a pending separation request already exists", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "separation_submit_failed", "failed to submit request", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	out, err := h.Service.List(r.Context(), r.URL.Query().Get("personId"), r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "separation_list_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "separation request not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, separation.DecisionApprove, "")
}

type rejectPayload struct {
	Note string `json:"note"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	h.decide(w, r, separation.DecisionReject, payload.Note)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision, note string) {
	req, err := h.Service.Decide(r.Context(), chi.URLParam(r, "requestID"), decision, note, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, separation.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "separation request not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, separation.ErrAlreadyProcessed):
			api.Fail(w, http.StatusConflict, "already_processed", "separation request was already decided", middleware.GetRequestID(r.Context()))
		case errors.Is(err, separation.ErrReasonRequired):
			api.Fail(w, http.StatusBadRequest, "reason_required", "a rejection note is required", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "separation_decision_failed", "failed to decide request", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}
