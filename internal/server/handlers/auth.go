package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"starmap/internal/auth"
	"starmap/internal/middleware"
	"starmap/internal/shared/cookies"
	"starmap/internal/shared/errors"
	"starmap/internal/shared/response"
)

// AuthHandler lets a browser exchange an operator token for a cookie
type AuthHandler struct {
	secret  string
	cookies cookies.Settings
}

func NewAuthHandler(secret string, settings cookies.Settings) *AuthHandler {
	return &AuthHandler{secret: secret, cookies: settings}
}

type SessionResponse struct {
	Operator string `json:"operator"`
}

// Login validates the bearer token and stores it in the auth cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_login")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		response.Error(w, r, logger, errors.Unauthorized("bearer token required"))
		return
	}

	claims, err := auth.ValidateToken(h.secret, token)
	if err != nil {
		response.Error(w, r, logger, errors.Unauthorized("invalid token"))
		return
	}

	h.cookies.SetAuthCookie(w, token)
	logger.Info("Operator signed in", "operator", claims.Operator)
	response.Success(w, http.StatusOK, SessionResponse{Operator: claims.Operator})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	h.cookies.ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me reports the operator carried by the request's token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_me", "remote_addr", r.RemoteAddr)

	claims := middleware.GetOperatorFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no operator in context"))
		return
	}

	logger.Debug("Operator info requested", "operator", claims.Operator)
	response.Success(w, http.StatusOK, SessionResponse{Operator: claims.Operator})
}
