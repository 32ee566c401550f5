package response

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"starmap/internal/shared/errors"
)

func TestError_StatusCodes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"NotFound", errors.NotFoundf("system %d not found", 9), http.StatusNotFound, "not_found"},
		{"Validation", errors.Validation("bad index"), http.StatusBadRequest, "validation"},
		{"Unauthorized", errors.Unauthorized("missing token"), http.StatusUnauthorized, "unauthorized"},
		{"MethodNotAllowed", errors.MethodNotAllowed("PUT"), http.StatusMethodNotAllowed, "method_not_allowed"},
		{"External", errors.WrapExternal("redis down", errors.New("dial")), http.StatusServiceUnavailable, "external"},
		{"Plain", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/galaxy", nil)
			rec := httptest.NewRecorder()

			Error(rec, req, logger, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Error != tt.wantType {
				t.Errorf("error = %q, want %q", body.Error, tt.wantType)
			}
			if body.Code != tt.wantStatus {
				t.Errorf("code = %d, want %d", body.Code, tt.wantStatus)
			}
		})
	}
}

func TestErrorWithMessage_HidesInternalMessage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodPost, "/api/galaxy/save", nil)
	rec := httptest.NewRecorder()

	ErrorWithMessage(rec, req, logger, errors.WrapInternal("write /tmp/x", errors.New("disk full")), "Failed to save galaxy")

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Message != "Failed to save galaxy" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestText(t *testing.T) {
	rec := httptest.NewRecorder()
	Text(rec, http.StatusOK, "System 1A:\n")

	if got := rec.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "System 1A:\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
