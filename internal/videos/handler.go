package videos

import (
	"context"
	"errors"
	"net/http"
	"time"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/auth"
	"launchpad-api/internal/content"
	"launchpad-api/internal/httpx"
	"launchpad-api/internal/middleware"
	"launchpad-api/internal/transport"
	"launchpad-api/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const publicListKey = "videos:public"

type Handler struct {
	service *Service
	val     *validation.Validator
	lists   *content.ListCache
	log     *zap.Logger
}

func NewHandler(service *Service, val *validation.Validator, lists *content.ListCache, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		lists:   lists,
		log:     log,
	}
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)

	if payload, ok := h.lists.Load(r.Context(), publicListKey); ok {
		transport.WriteRawJSON(w, http.StatusOK, payload)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, auth.Identity{}, false)
	if err != nil {
		log.Error("videos public list: database error", zap.Error(err))
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	out := make([]PublicResponse, 0, len(items))
	for _, v := range items {
		out = append(out, v.PublicResponse())
	}
	payload, err := h.lists.Store(r.Context(), publicListKey, out)
	if err != nil {
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	log.Info("videos public list: ok", zap.Int("count", len(out)))
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, actor, true)
	if err != nil {
		log.Error("admin videos list: database error", zap.Error(err))
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	out := make([]Response, 0, len(items))
	for _, v := range items {
		out = append(out, v.Response())
	}
	log.Info("admin videos list: ok", zap.Int("count", len(out)))
	transport.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	var req CreateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("admin videos create: invalid json")
		transport.WriteError(w, err)
		return
	}
	req.normalize()
	if err := h.val.Check(r.Context(), validation.LocationBody, req); err != nil {
		log.Warn("admin videos create: validation error")
		transport.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	v, err := h.service.Create(ctx, actor, req)
	if err != nil {
		log.Warn("admin videos create: failed", zap.Error(err))
		transport.WriteError(w, serviceError(err))
		return
	}
	h.lists.Invalidate(r.Context(), publicListKey)

	log.Info("admin videos create: ok", zap.String("video_id", v.ID), zap.Bool("published", v.IsPublished))
	transport.WriteJSON(w, http.StatusCreated, v.Response())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	id, err := h.videoID(r)
	if err != nil {
		log.Warn("admin videos get: invalid id")
		transport.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	v, err := h.service.Get(ctx, actor, id)
	if err != nil {
		log.Warn("admin videos get: failed", zap.String("video_id", id), zap.Error(err))
		transport.WriteError(w, serviceError(err))
		return
	}

	transport.WriteJSON(w, http.StatusOK, v.Response())
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	id, err := h.videoID(r)
	if err != nil {
		log.Warn("admin videos update: invalid id")
		transport.WriteError(w, err)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("admin videos update: invalid json")
		transport.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	v, err := h.service.Update(ctx, actor, id, req)
	if err != nil {
		log.Warn("admin videos update: failed", zap.String("video_id", id), zap.Error(err))
		transport.WriteError(w, serviceError(err))
		return
	}
	h.lists.Invalidate(r.Context(), publicListKey)

	log.Info("admin videos update: ok", zap.String("video_id", id), zap.Bool("published", v.IsPublished))
	transport.WriteJSON(w, http.StatusOK, v.Response())
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	id, err := h.videoID(r)
	if err != nil {
		log.Warn("admin videos delete: invalid id")
		transport.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, actor, id); err != nil {
		log.Warn("admin videos delete: failed", zap.String("video_id", id), zap.Error(err))
		transport.WriteError(w, serviceError(err))
		return
	}
	h.lists.Invalidate(r.Context(), publicListKey)

	log.Info("admin videos delete: ok", zap.String("video_id", id))
	transport.NoContent(w)
}

func (h *Handler) videoID(r *http.Request) (string, error) {
	params := idParams{ID: chi.URLParam(r, "id")}
	if err := h.val.Check(r.Context(), validation.LocationParams, params); err != nil {
		return "", err
	}
	return params.ID, nil
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Video project not found")
	case errors.Is(err, ErrInvalidURL):
		return apperr.BadRequest("Invalid YouTube URL. Unable to extract video ID")
	default:
		return content.ServiceError(err)
	}
}
