package server

import (
	"log/slog"
	"net/http"

	"starmap/internal/metrics"
	"starmap/internal/middleware"
	serverHandlers "starmap/internal/server/handlers"
	"starmap/internal/session"
	"starmap/internal/shared/config"
	"starmap/internal/shared/cookies"
)

type Routes struct {
	session        *session.Session
	metrics        *metrics.Collector
	jwtSecret      string
	storageBackend string
	cookies        cookies.Settings
}

func NewRoutes(s *session.Session, collector *metrics.Collector, cfg *config.Config) *Routes {
	return &Routes{
		session:        s,
		metrics:        collector,
		jwtSecret:      cfg.Auth.JWTSecret,
		storageBackend: cfg.Storage.Backend,
		cookies:        cookies.NewSettings(cfg),
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.session, r.storageBackend)
	galaxyHandler := serverHandlers.NewGalaxyHandler(r.session)
	authHandler := serverHandlers.NewAuthHandler(r.jwtSecret, r.cookies)
	requireOperator := middleware.JWTMiddleware(r.jwtSecret)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/galaxy", galaxyHandler.GetGalaxy)
	mux.HandleFunc("/api/galaxy/pick", galaxyHandler.Pick)
	mux.HandleFunc("/api/systems/{id}", galaxyHandler.GetSystem)
	mux.HandleFunc("/api/systems/{id}/describe", galaxyHandler.DescribeSystem)
	mux.HandleFunc("/api/systems/{id}/bodies", galaxyHandler.GetBodies)
	mux.HandleFunc("/api/systems/{id}/focus", galaxyHandler.FocusSystem)
	mux.HandleFunc("/api/systems/{id}/hover", galaxyHandler.HoverSystem)
	mux.Handle("/metrics", r.metrics.Handler())

	// Auth endpoints
	mux.HandleFunc("/api/auth/session", authHandler.Login)
	mux.HandleFunc("/api/auth/logout", authHandler.Logout)

	// Operator endpoints
	mux.Handle("/api/galaxy/save", requireOperator(http.HandlerFunc(galaxyHandler.SaveGalaxy)))
	mux.Handle("/api/auth/me", requireOperator(http.HandlerFunc(authHandler.Me)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxy", "/api/galaxy/pick", "/api/systems/{id}", "/metrics"},
		"auth_endpoints", []string{"/api/auth/session", "/api/auth/logout"},
		"operator_endpoints", []string{"/api/galaxy/save", "/api/auth/me"},
		"save_enabled", r.jwtSecret != "",
	)

	return mux
}
