package branding

import (
	"context"
	"net/http"
	"time"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/content"
	"launchpad-api/internal/middleware"
	"launchpad-api/internal/transport"
	"launchpad-api/internal/upload"
	"launchpad-api/internal/validation"

	"go.uber.org/zap"
)

const (
	imageField = "image"
	listKey    = "branding:list"
)

type Handler struct {
	service  *Service
	val      *validation.Validator
	receiver *upload.Receiver
	lists    *content.ListCache
	log      *zap.Logger
}

func NewHandler(service *Service, val *validation.Validator, receiver *upload.Receiver, lists *content.ListCache, log *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		receiver: receiver,
		lists:    lists,
		log:      log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)

	if payload, ok := h.lists.Load(r.Context(), listKey); ok {
		transport.WriteRawJSON(w, http.StatusOK, payload)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("branding list: database error", zap.Error(err))
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	out := make([]Response, 0, len(items))
	for _, item := range items {
		out = append(out, item.Response())
	}
	payload, err := h.lists.Store(r.Context(), listKey, out)
	if err != nil {
		transport.WriteError(w, apperr.Internal(err))
		return
	}

	log.Info("branding list: ok", zap.Int("count", len(out)))
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.ForRequest(h.log, r)
	actor, _ := middleware.IdentityFrom(r.Context())

	form, err := h.receiver.Receive(w, r, imageField)
	if err != nil {
		log.Warn("branding create: upload rejected", zap.Error(err))
		transport.WriteError(w, content.UploadError(err))
		return
	}

	req := requestFromForm(form.Values)
	if err := h.val.Check(r.Context(), validation.LocationBody, req); err != nil {
		h.receiver.Discard(r.Context(), form.File)
		log.Warn("branding create: validation error")
		transport.WriteError(w, err)
		return
	}
	if form.File == nil {
		log.Warn("branding create: missing image")
		transport.WriteError(w, apperr.BadRequest("Image upload is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, actor, req, form.File.URL)
	if err != nil {
		h.receiver.Discard(r.Context(), form.File)
		log.Error("branding create: failed", zap.Error(err))
		transport.WriteError(w, content.ServiceError(err))
		return
	}
	h.lists.Invalidate(r.Context(), listKey)

	log.Info("branding create: ok", zap.String("branding_id", item.ID), zap.String("file", form.File.Name))
	transport.WriteJSON(w, http.StatusCreated, item.Response())
}
