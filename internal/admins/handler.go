package admins

import (
	"context"
	"errors"
	"net/http"
	"time"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/httpx"
	"launchpad-api/internal/middleware"
	"launchpad-api/internal/transport"
	"launchpad-api/internal/validation"

	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *zap.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *zap.Logger) *Handler {
	return &Handler{service: service, val: val, log: log}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)

	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, err)
		return
	}
	req.Email = NormalizeEmail(req.Email)
	if err := h.val.Check(r.Context(), validation.LocationBody, req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("admin login: invalid credentials", zap.String("email", req.Email))
			transport.WriteError(w, apperr.Unauthorized("Invalid credentials"))
			return
		}
		log.Error("admin login: failed", zap.Error(err))
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	log.Info("admin login: ok", zap.String("admin_id", resp.Admin.ID))
	transport.WriteJSON(w, http.StatusOK, resp)
}
