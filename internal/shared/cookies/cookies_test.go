package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starmap/internal/shared/config"
)

func TestNewSettings(t *testing.T) {
	tests := []struct {
		name         string
		frontend     string
		sameSite     string
		wantDomain   string
		wantSameSite http.SameSite
	}{
		{"Localhost", "http://localhost:3000", "lax", "", http.SameSiteLaxMode},
		{"Loopback", "http://127.0.0.1:5173", "strict", "", http.SameSiteStrictMode},
		{"Public host", "https://maps.example.com", "none", "maps.example.com", http.SameSiteNoneMode},
		{"Bad URL", "::", "other", "", http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Frontend: config.FrontendConfig{URL: tt.frontend},
				Auth:     config.AuthConfig{CookieSameSite: tt.sameSite, TokenExpiration: time.Hour},
			}
			s := NewSettings(cfg)
			if s.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", s.Domain, tt.wantDomain)
			}
			if s.SameSite != tt.wantSameSite {
				t.Errorf("SameSite = %v, want %v", s.SameSite, tt.wantSameSite)
			}
		})
	}
}

func TestSetAndClearAuthCookie(t *testing.T) {
	s := Settings{Secure: true, SameSite: http.SameSiteStrictMode, MaxAge: time.Hour}

	rec := httptest.NewRecorder()
	s.SetAuthCookie(rec, "tok")
	set := rec.Result().Cookies()
	if len(set) != 1 || set[0].Name != AuthCookieName || set[0].Value != "tok" || set[0].MaxAge != 3600 || !set[0].HttpOnly || !set[0].Secure {
		t.Errorf("SetAuthCookie() = %+v", set)
	}

	rec = httptest.NewRecorder()
	s.ClearAuthCookie(rec)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].Value != "" || cleared[0].MaxAge >= 0 {
		t.Errorf("ClearAuthCookie() = %+v", cleared)
	}
}
