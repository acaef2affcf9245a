package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/api/handler"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/jwt"
)

func testEngine(t *testing.T) (*jwt.Manager, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{ServiceName: "university-api", BodyLimit: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret-key",
			AccessTokenTTL: time.Hour,
			LoginRateLimit: 5,
			LoginWindow:    time.Minute,
		},
	}
	mgr := jwt.NewManager(&cfg.Auth)
	// Handlers never reach the services in these tests.
	h := handler.NewHandler(&service.Service{})
	return mgr, Setup(cfg, h, mgr, nil, zap.NewNop())
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, r := testEngine(t)
	w := do(r, "GET", "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "healthy" || body["service"] != "university-api" {
		t.Errorf("unexpected body %v", body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRootAndMetrics(t *testing.T) {
	_, r := testEngine(t)

	if w := do(r, "GET", "/", ""); w.Code != http.StatusOK {
		t.Errorf("root: expected 200, got %d", w.Code)
	}

	do(r, "GET", "/health", "")
	w := do(r, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "univ_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestWritesRequireAuth(t *testing.T) {
	_, r := testEngine(t)
	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/rooms"},
		{"PUT", "/api/departments/1"},
		{"DELETE", "/api/students/1"},
		{"POST", "/api/timetable-slots"},
		{"POST", "/api/absences"},
		{"GET", "/api/messages/inbox"},
		{"GET", "/api/notifications"},
		{"GET", "/api/auth/me"},
	} {
		if w := do(r, tc.method, tc.path, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestRoleGates(t *testing.T) {
	mgr, r := testEngine(t)
	student, _ := mgr.GenerateAccessToken(1, "s@univ.tn", "student")
	teacher, _ := mgr.GenerateAccessToken(2, "t@univ.tn", "teacher")

	if w := do(r, "POST", "/api/rooms", student); w.Code != http.StatusForbidden {
		t.Errorf("student creating room: expected 403, got %d", w.Code)
	}
	if w := do(r, "POST", "/api/rooms", teacher); w.Code != http.StatusForbidden {
		t.Errorf("teacher creating room: expected 403, got %d", w.Code)
	}
	// Teachers pass the gate for sessions; the empty body then fails validation.
	if w := do(r, "POST", "/api/sessions", teacher); w.Code != http.StatusBadRequest {
		t.Errorf("teacher creating session: expected 400, got %d", w.Code)
	}
}

func TestPublicReadRejectsBadID(t *testing.T) {
	_, r := testEngine(t)
	if w := do(r, "GET", "/api/rooms/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
