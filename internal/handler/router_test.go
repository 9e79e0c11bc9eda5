package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/handler"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

type fakeStaffStore struct {
	staff   []domain.Staff
	deleted []string
}

func (f *fakeStaffStore) ListStaff(_ context.Context) ([]domain.Staff, error) {
	return f.staff, nil
}

func (f *fakeStaffStore) CreateStaff(_ context.Context, member *domain.Staff) (*domain.Staff, error) {
	member.ID = "staff-1"
	f.staff = append(f.staff, *member)
	return member, nil
}

func (f *fakeStaffStore) UpdateStaff(_ context.Context, _ string, _ map[string]any) error {
	return nil
}

func (f *fakeStaffStore) DeleteStaff(_ context.Context, staffID string) error {
	f.deleted = append(f.deleted, staffID)
	return nil
}

func newTestRouter(ping *fakePinger) http.Handler {
	logger := zap.NewNop()
	svcs := handler.Services{
		Auth:  service.NewAuthService("test-secret", 15*time.Minute, "admin-pass", "viewer-pass", logger),
		Staff: service.NewStaffService(&fakeStaffStore{}, logger),
	}
	return handler.NewRouter(svcs, ping, observability.NewMetrics(), logger, []string{"*"})
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(domain.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login: decode response: %v", err)
	}
	return resp.AccessToken
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHealthz_DegradedWhenStoreUnreachable(t *testing.T) {
	router := newTestRouter(&fakePinger{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}

	var status domain.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("expected degraded, got %s", status.Status)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/v1/staff", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRoute_RejectsBadToken(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/v1/staff", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginThenRead(t *testing.T) {
	router := newTestRouter(&fakePinger{})
	token := login(t, router, "viewer", "viewer-pass")

	req := httptest.NewRequest(http.MethodGet, "/v1/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestViewerCannotMutate(t *testing.T) {
	router := newTestRouter(&fakePinger{})
	token := login(t, router, "viewer", "viewer-pass")

	body, _ := json.Marshal(domain.StaffRequest{Name: "J. Cruz", Role: "Security Guard"})
	req := httptest.NewRequest(http.MethodPost, "/v1/staff", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestAdminCanMutate(t *testing.T) {
	router := newTestRouter(&fakePinger{})
	token := login(t, router, "admin", "admin-pass")

	body, _ := json.Marshal(domain.StaffRequest{Name: "J. Cruz", Role: "Security Guard"})
	req := httptest.NewRequest(http.MethodPost, "/v1/staff", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMe(t *testing.T) {
	router := newTestRouter(&fakePinger{})
	token := login(t, router, "admin", "admin-pass")

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Username != "admin" || user.Role != domain.RoleAdmin {
		t.Errorf("expected admin principal, got %+v", user)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := newTestRouter(&fakePinger{})

	body, _ := json.Marshal(domain.LoginRequest{Username: "admin", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
