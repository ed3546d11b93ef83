package leavehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/leave"
	"internhr/internal/domain/notifications"
	"internhr/internal/platform/jobs"
	"internhr/internal/platform/metrics"
	"internhr/internal/transport/http/api"
	"internhr/internal/transport/http/middleware"
	"internhr/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Notify  *notifications.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leave.Service, notify *notifications.Service, jobsSvc *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Notify: notify, Jobs: jobsSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Get("/balances", h.handleListBalances)
		r.Post("/counters", h.handleCreateCounter)
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests", h.handleApply)
		r.Get("/requests/{requestID}", h.handleGetRequest)
		r.Post("/requests/{requestID}/approve", h.handleApprove)
		r.Post("/requests/{requestID}/reject", h.handleReject)
		r.Post("/reset/run", h.handleRunReset)
	})
}

func (h *Handler) handleListBalances(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get("personId")
	if personID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "personId is required", middleware.GetRequestID(r.Context()))
		return
	}

	counters, err := h.Service.Balances(r.Context(), personID)
	if err != nil {
		if errors.Is(err, leave.ErrCounterNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no leave counters for person", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "leave_balances_failed", "failed to list balances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, counters, middleware.GetRequestID(r.Context()))
}

type counterPayload struct {
	PersonID     string `json:"personId"`
	LeaveType    string `json:"leaveType"`
	TotalAllowed int    `json:"totalAllowed"`
	StartDate    string `json:"startDate"`
}

func (h *Handler) handleCreateCounter(w http.ResponseWriter, r *http.Request) {
	var payload counterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("personId", payload.PersonID, "person id is required")
	v.Required("leaveType", payload.LeaveType, "leave type is required")
	v.Positive("totalAllowed", payload.TotalAllowed, "allowance must be a positive number of days")
	start, startOK := v.Date("startDate", payload.StartDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) || !startOK {
		return
	}

	counter, created, err := h.Service.CreateCounter(r.Context(), payload.PersonID, payload.LeaveType, payload.TotalAllowed, start)
	if err != nil {
		if errors.Is(err, leave.ErrUnknownLeaveType) {
			api.Fail(w, http.StatusBadRequest, "unknown_leave_type", "unknown leave type", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "counter_create_failed", "failed to create counter", middleware.GetRequestID(r.Context()))
		return
	}
	if !created {
		api.Success(w, counter, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, counter, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	personID := r.URL.Query().Get("personId")
	status := r.URL.Query().Get("status")

	requests, err := h.Service.List(r.Context(), personID, status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_requests_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

type applyPayload struct {
	PersonID     string `json:"personId"`
	LeaveType    string `json:"leaveType"`
	FromDate     string `json:"fromDate"`
	ToDate       string `json:"toDate"`
	NumberOfDays int    `json:"numberOfDays"`
	Reason       string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var payload applyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("personId", payload.PersonID, "person id is required")
	v.Required("leaveType", payload.LeaveType, "leave type is required")
	v.Required("reason", payload.Reason, "reason is required")
	v.Positive("numberOfDays", payload.NumberOfDays, "must be a positive number of days")
	from, fromOK := v.Date("fromDate", payload.FromDate)
	to, toOK := v.Date("toDate", payload.ToDate)
	if fromOK && toOK {
		v.DateOrder("fromDate", from, "toDate", to)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Apply(r.Context(), leave.ApplyInput{
		PersonID:     payload.PersonID,
		LeaveType:    payload.LeaveType,
		FromDate:     from,
		ToDate:       to,
		NumberOfDays: payload.NumberOfDays,
		Reason:       payload.Reason,
	})
	if err != nil {
		h.failApply(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.LeaveApplied()
	}
	if h.Notify != nil {
		if err := h.Notify.Notify(r.Context(), req.PersonID, notifications.TypeLeaveSubmitted,
			"Leave request submitted", fmt.Sprintf("Your %s request for %d day(s) is pending.", req.LeaveType, req.NumberOfDays)); err != nil {
			slog.Warn("leave submitted notification failed", "err", err)
		}
	}
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failApply(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrUnknownLeaveType):
		api.Fail(w, http.StatusBadRequest, "unknown_leave_type", "unknown leave type", requestID)
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_dates", "invalid leave date range", requestID)
	case errors.Is(err, leave.ErrOverlap):
		api.Fail(w, http.StatusConflict, "overlapping_request", "an active request already covers these dates", requestID)
	case errors.Is(err, leave.ErrCounterNotFound):
		api.Fail(w, http.StatusNotFound, "counter_not_found", "no leave counter for this person and type", requestID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusBadRequest, "insufficient_balance", "not enough balance for the requested days", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_request_failed", "failed to create request", requestID)
	}
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Get(r.Context(), requestID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Decide(r.Context(), requestID, leave.DecisionApprove, "", time.Now())
	if err != nil {
		h.failDecision(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.LeaveApproved()
	}
	if h.Notify != nil {
		if err := h.Notify.Notify(r.Context(), req.PersonID, notifications.TypeLeaveApproved,
			"Leave approved", fmt.Sprintf("Your %s request was approved.", req.LeaveType)); err != nil {
			slog.Warn("leave approved notification failed", "err", err)
		}
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

type rejectPayload struct {
	RejectionReason string `json:"rejectionReason"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Decide(r.Context(), requestID, leave.DecisionReject, payload.RejectionReason, time.Now())
	if err != nil {
		h.failDecision(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.LeaveRejected()
	}
	if h.Notify != nil {
		if err := h.Notify.Notify(r.Context(), req.PersonID, notifications.TypeLeaveRejected,
			"Leave rejected", fmt.Sprintf("Your %s request was rejected: %s", req.LeaveType, req.RejectionReason)); err != nil {
			slog.Warn("leave rejected notification failed", "err", err)
		}
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failDecision(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		api.Fail(w, http.StatusConflict, "already_processed", "leave request was already decided", requestID)
	case errors.Is(err, leave.ErrReasonRequired):
		api.Fail(w, http.StatusBadRequest, "reason_required", "a rejection reason is required", requestID)
	case errors.Is(err, leave.ErrCounterNotFound):
		api.Fail(w, http.StatusConflict, "no_active_cycle", "no counter covers the current cycle", requestID)
	case errors.Is(err, leave.ErrInsufficientBalance):
		api.Fail(w, http.StatusConflict, "insufficient_balance", "not enough balance to approve", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to decide request", requestID)
	}
}

func (h *Handler) handleRunReset(w http.ResponseWriter, r *http.Request) {
	if h.Jobs == nil {
		api.Fail(w, http.StatusServiceUnavailable, "jobs_unavailable", "job runner is not configured", middleware.GetRequestID(r.Context()))
		return
	}
	result, err := h.Jobs.RunCycleResetNow(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "cycle reset run failed", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		if summary, ok := result.(leave.ResetSummary); ok {
			h.Metrics.CountersReset(summary.Reset)
		}
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}
