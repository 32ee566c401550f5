package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"starmap/internal/session"
	"starmap/internal/shared/errors"
	"starmap/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
	Systems   int    `json:"systems"`
	Scanned   int    `json:"scanned"`
}

type HealthHandler struct {
	session *session.Session
	storage string
}

func NewHealthHandler(s *session.Session, storageBackend string) *HealthHandler {
	return &HealthHandler{session: s, storage: storageBackend}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	overview := h.session.Overview()
	response.Success(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Storage:   h.storage,
		Systems:   len(overview.Systems),
		Scanned:   overview.Scanned,
	})
}
