package peoplehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"internhr/internal/domain/people"
)

type memPersonStore struct {
	people map[string]*people.Person
	nextID int
}

func newMemPersonStore() *memPersonStore {
	return &memPersonStore{people: make(map[string]*people.Person)}
}

func (m *memPersonStore) CreatePerson(ctx context.Context, p people.Person) (string, error) {
	for _, existing := range m.people {
		if existing.Email == p.Email {
			return "", people.ErrDuplicateEmail
		}
	}
	m.nextID++
	p.ID = fmt.Sprintf("per-%d", m.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := p
	m.people[stored.ID] = &stored
	return stored.ID, nil
}

func (m *memPersonStore) GetPerson(ctx context.Context, personID string) (people.Person, error) {
	if p, ok := m.people[personID]; ok {
		return *p, nil
	}
	return people.Person{}, people.ErrNotFound
}

func (m *memPersonStore) ListPeople(ctx context.Context, kind, status string, limit, offset int) ([]people.Person, error) {
	var out []people.Person
	for _, p := range m.people {
		if kind != "" && p.Kind != kind {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPersonStore) UpdatePerson(ctx context.Context, personID string, p people.Person) (bool, error) {
	existing, ok := m.people[personID]
	if !ok {
		return false, nil
	}
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	return true, nil
}

func (m *memPersonStore) MarkOnboarded(ctx context.Context, personID string, at time.Time) (bool, error) {
	p, ok := m.people[personID]
	if !ok || p.OnboardedAt != nil {
		return false, nil
	}
	p.OnboardedAt = &at
	return true, nil
}

func (m *memPersonStore) MarkSeparated(ctx context.Context, personID string, at time.Time) (bool, error) {
	return false, nil
}

func (m *memPersonStore) EmailFor(ctx context.Context, personID string) (string, error) {
	if p, ok := m.people[personID]; ok {
		return p.Email, nil
	}
	return "", people.ErrNotFound
}

type countingInitializer struct {
	calls int
}

func (c *countingInitializer) InitializeCounters(ctx context.Context, personID string, onboardingDate time.Time) (int, error) {
	c.calls++
	return 3, nil
}

func newTestRouter(store *memPersonStore, init *countingInitializer) http.Handler {
	handler := NewHandler(people.NewService(store, init))
	r := chi.NewRouter()
	r.Route("/api/v1", handler.RegisterRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePersonEndpoint(t *testing.T) {
	router := newTestRouter(newMemPersonStore(), &countingInitializer{})

	rec := postJSON(t, router, "/api/v1/people", map[string]any{
		"kind":      "intern",
		"firstName": "Asha",
		"lastName":  "Rao",
		"email":     "asha@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, router, "/api/v1/people", map[string]any{"kind": "wizard", "firstName": "X", "email": "x@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad kind, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/api/v1/people", map[string]any{
		"kind": "intern", "firstName": "Dup", "email": "asha@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestOnboardEndpointIsIdempotentConflict(t *testing.T) {
	store := newMemPersonStore()
	init := &countingInitializer{}
	router := newTestRouter(store, init)

	rec := postJSON(t, router, "/api/v1/people", map[string]any{
		"kind": "intern", "firstName": "Asha", "email": "asha@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	var created struct {
		Data people.Person `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created person: %v", err)
	}

	onboardPath := "/api/v1/people/" + created.Data.ID + "/onboard"
	rec = postJSON(t, router, onboardPath, map[string]any{"onboardingDate": "2025-02-17"})
	if rec.Code != http.StatusOK {
		t.Fatalf("onboard failed: %d %s", rec.Code, rec.Body.String())
	}
	if init.calls != 1 {
		t.Fatalf("expected 1 initializer call, got %d", init.calls)
	}

	rec = postJSON(t, router, onboardPath, map[string]any{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second onboard must 409, got %d", rec.Code)
	}
	if init.calls != 1 {
		t.Fatalf("second onboard must not re-run counters, got %d calls", init.calls)
	}

	rec = postJSON(t, router, "/api/v1/people/missing/onboard", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown person must 404, got %d", rec.Code)
	}
}
