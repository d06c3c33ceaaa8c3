package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"parrainage/internal/notification/models"
	id "parrainage/pkg/domain"
	dErrors "parrainage/pkg/domain-errors"
	"parrainage/pkg/platform/httputil"
	"parrainage/pkg/requestcontext"
)

// Service defines the inbox operations.
type Service interface {
	Inbox(ctx context.Context, actor id.Actor) ([]*models.Notification, error)
	MarkRead(ctx context.Context, actor id.Actor, notificationID id.NotificationID) error
}

// Handler serves the authenticated user's notification inbox.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the inbox routes. auth.RequireAuth must already be installed.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/me/notifications", h.HandleInbox)
	r.Post("/v1/me/notifications/{id}/read", h.HandleMarkRead)
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type InboxResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}

// HandleInbox handles GET /v1/me/notifications.
func (h *Handler) HandleInbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	list, err := h.service.Inbox(ctx, actor)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing notifications failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	resp := InboxResponse{Items: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		if !n.IsRead {
			resp.Unread++
		}
		resp.Items = append(resp.Items, NotificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Content:   n.Content,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleMarkRead handles POST /v1/me/notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := requestcontext.Actor(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.MarkRead(ctx, actor, notificationID); err != nil {
		h.logger.WarnContext(ctx, "marking notification read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
