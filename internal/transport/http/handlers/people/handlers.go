package peoplehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/people"
	"internhr/internal/transport/http/api"
	"internhr/internal/transport/http/middleware"
	"internhr/internal/transport/http/shared"
)

type Handler struct {
	Service *people.Service
}

func NewHandler(service *people.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/people", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{personID}", h.handleGet)
		r.Put("/{personID}", h.handleUpdate)
		r.Post("/{personID}/onboard", h.handleOnboard)
	})
}

type personPayload struct {
	Kind        string `json:"kind"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	JoiningDate string `json:"joiningDate"`
}

func (p personPayload) toPerson(v *shared.Validator) people.Person {
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("email", p.Email, "email is required")
	v.Enum("kind", p.Kind, []string{people.KindIntern, people.KindEmployee}, "must be intern or employee")

	out := people.Person{
		Kind:        p.Kind,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		Department:  p.Department,
		Designation: p.Designation,
	}
	if p.JoiningDate != "" {
		if joined, ok := v.Date("joiningDate", p.JoiningDate); ok {
			out.JoiningDate = &joined
		}
	}
	return out
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload personPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	person := payload.toPerson(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), person)
	if err != nil {
		switch {
		case errors.Is(err, people.ErrUnknownKind):
			api.Fail(w, http.StatusBadRequest, "unknown_kind", "kind must be intern or employee", middleware.GetRequestID(r.Context()))
		case errors.Is(err, people.ErrDuplicateEmail):
			api.Fail(w, http.StatusConflict, "duplicate_email", "email already registered", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "person_create_failed", "failed to create person", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	out, err := h.Service.List(r.Context(), r.URL.Query().Get("kind"), r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "people_list_failed", "failed to list people", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	person, err := h.Service.Get(r.Context(), chi.URLParam(r, "personID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "person not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, person, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload personPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	person := payload.toPerson(v)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "personID"), person)
	if err != nil {
		if errors.Is(err, people.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "person not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "person_update_failed", "failed to update person", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type onboardPayload struct {
	OnboardingDate string `json:"onboardingDate"`
}

func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var payload onboardPayload
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	when := time.Now()
	if payload.OnboardingDate != "" {
		parsed, err := shared.ParseDate(payload.OnboardingDate)
		if err != nil || parsed.IsZero() {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid onboarding date", middleware.GetRequestID(r.Context()))
			return
		}
		when = parsed
	}

	person, err := h.Service.Onboard(r.Context(), chi.URLParam(r, "personID"), when)
	if err != nil {
		switch {
		case errors.Is(err, people.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "person not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, people.ErrAlreadyOnboarded):
			api.Fail(w, http.StatusConflict, "already_onboarded", "person is already onboarded", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "onboard_failed", "failed to onboard person", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, person, middleware.GetRequestID(r.Context()))
}
