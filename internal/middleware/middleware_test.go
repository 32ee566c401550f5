package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starmap/internal/auth"
	"starmap/internal/shared/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTMiddleware(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, "ops", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() returned unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		secret     string
		header     string
		cookie     string
		wantStatus int
	}{
		{"Bearer header", testSecret, "Bearer " + token, "", http.StatusNoContent},
		{"Cookie", testSecret, "", token, http.StatusNoContent},
		{"Missing", testSecret, "", "", http.StatusUnauthorized},
		{"Wrong scheme", testSecret, "Basic " + token, "", http.StatusUnauthorized},
		{"Bad token", testSecret, "Bearer nope", "", http.StatusUnauthorized},
		{"Auth disabled", "", "Bearer " + token, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var operator string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if claims := GetOperatorFromContext(r); claims != nil {
					operator = claims.Operator
				}
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/galaxy/save", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(tt.secret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent && operator != "ops" {
				t.Errorf("operator = %q, want ops", operator)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2})
	handler := rl.Middleware(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	want := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, statuses[i], want[i])
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("other client status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{Enabled: false, BurstSize: 0})
	handler := rl.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	}
}

func TestForgetIdle(t *testing.T) {
	rl := NewRateLimiter(context.Background(), config.RateLimitConfig{RequestsPerSecond: 10, BurstSize: 1})
	rl.getLimiter("10.0.0.1").Allow()

	rl.forgetIdle(time.Now().Add(time.Minute))

	if len(rl.clients) != 0 {
		t.Errorf("clients = %d, want 0", len(rl.clients))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		xff        string
		trustProxy bool
		want       string
	}{
		{"Remote addr", "192.168.1.1:12345", "", false, "192.168.1.1"},
		{"Ignores proxy header", "192.168.1.1:12345", "1.2.3.4", false, "192.168.1.1"},
		{"Trusts proxy header", "192.168.1.1:12345", "1.2.3.4, 5.6.7.8", true, "1.2.3.4"},
		{"No port", "192.168.1.1", "", false, "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := getClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	c := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"})
	handler := c.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for foreign origin", got)
	}
}
