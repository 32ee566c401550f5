package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"starmap/internal/session"
	"starmap/internal/shared/errors"
	"starmap/internal/shared/response"
	"starmap/internal/vmath"
)

type GalaxyHandler struct {
	session *session.Session
}

func NewGalaxyHandler(s *session.Session) *GalaxyHandler {
	return &GalaxyHandler{session: s}
}

type HoverResponse struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type PickRequest struct {
	Origin    vmath.Vec3 `json:"origin"`
	Direction vmath.Vec3 `json:"direction"`
}

type PickResponse struct {
	Hit         bool   `json:"hit"`
	Index       int    `json:"index"`
	Description string `json:"description,omitempty"`
}

type SaveResponse struct {
	Key string `json:"key"`
}

func systemID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, errors.WrapValidation("invalid system id", err)
	}
	return id, nil
}

func (h *GalaxyHandler) GetGalaxy(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_galaxy")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.session.Overview())
}

func (h *GalaxyHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	view, err := h.session.System(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

func (h *GalaxyHandler) DescribeSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "describe_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	text, err := h.session.Describe(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Text(w, http.StatusOK, text)
}

func (h *GalaxyHandler) GetBodies(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_bodies")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	bodies, err := h.session.Bodies(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, bodies)
}

func (h *GalaxyHandler) FocusSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "focus_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	view, err := h.session.Focus(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

func (h *GalaxyHandler) HoverSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "hover_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, err := systemID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	text, err := h.session.Hover(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, HoverResponse{Index: id, Description: text})
}

func (h *GalaxyHandler) Pick(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "pick")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req PickRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}
	if req.Direction.LengthSq() == 0 {
		response.Error(w, r, logger, errors.Validation("direction must be non-zero"))
		return
	}

	i, hit := h.session.Pick(req.Origin, req.Direction)
	resp := PickResponse{Hit: hit, Index: i}
	if hit {
		resp.Description, _ = h.session.Describe(i)
	}

	response.Success(w, http.StatusOK, resp)
}

func (h *GalaxyHandler) SaveGalaxy(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "save_galaxy")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	if err := h.session.Save(r.Context()); err != nil {
		response.ErrorWithMessage(w, r, logger, err, "failed to save galaxy")
		return
	}

	response.Success(w, http.StatusOK, SaveResponse{Key: h.session.Key()})
}
