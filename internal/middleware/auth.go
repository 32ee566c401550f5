package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"starmap/internal/auth"
	"starmap/internal/shared/cookies"
	"starmap/internal/shared/errors"
	"starmap/internal/shared/response"
)

type contextKey string

const OperatorContextKey contextKey = "operator"

// JWTMiddleware accepts a bearer token or an auth_token cookie signed with
// secret. With an empty secret every request is rejected.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			if secret == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication is not configured"))
				return
			}

			token := bearerToken(r)
			if token == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := auth.ValidateToken(secret, token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), OperatorContextKey, claims)
			logger.Debug("JWT authentication successful", "operator", claims.Operator)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(cookies.AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func GetOperatorFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(OperatorContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
