package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireRole(t *testing.T) {
	h := RequireRole(domain.RoleAdmin)(okHandler)

	serve := func(id *domain.Identity) int {
		r := httptest.NewRequest("GET", "/users", nil)
		if id != nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}
	uid := domain.NewUserID(uuid.New())
	if code := serve(nil); code != http.StatusUnauthorized {
		t.Fatalf("no identity = %d", code)
	}
	if code := serve(&domain.Identity{UserID: uid, Roles: []domain.Role{domain.RoleUser}}); code != http.StatusForbidden {
		t.Fatalf("user role = %d", code)
	}
	if code := serve(&domain.Identity{UserID: uid, Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}); code != http.StatusOK {
		t.Fatalf("admin role = %d", code)
	}
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"}, nil, nil)(okHandler)
	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected response: %d %v", w.Code, w.Header())
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" || w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("allowed origin missing headers: %v", w.Header())
	}
}

func TestNewIPRateLimiter_EmptyDisables(t *testing.T) {
	store, err := NewLimiterStore(nil, "test_ip")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	mw, err := NewIPRateLimiter("", store)
	if err != nil {
		t.Fatalf("limiter: %v", err)
	}
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
	if _, err := NewIPRateLimiter("five-per-minute", store); err == nil {
		t.Fatal("expected error for malformed rate")
	}
}
