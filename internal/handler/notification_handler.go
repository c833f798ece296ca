package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/model"
)

type notificationRequest struct {
	RecipientID       *int64     `json:"recipient"`
	ClientRecipientID *int64     `json:"client_recipient"`
	Channel           *string    `json:"channel"`
	Content           *string    `json:"content"`
	Status            *string    `json:"status"`
	SentAt            *time.Time `json:"sent_at"`
}

func (r *notificationRequest) apply(n *model.Notification) {
	if r.RecipientID != nil {
		n.RecipientID = r.RecipientID
	}
	if r.ClientRecipientID != nil {
		n.ClientRecipientID = r.ClientRecipientID
	}
	if r.Channel != nil {
		n.Channel = *r.Channel
	}
	if r.Content != nil {
		n.Content = *r.Content
	}
	if r.Status != nil {
		n.Status = *r.Status
	}
	if r.SentAt != nil {
		n.SentAt = r.SentAt
	}
}

func validateNotification(r *notificationRequest) string {
	if r.Channel != nil && !model.ValidNotificationChannel(*r.Channel) {
		return "unknown notification channel"
	}
	if r.Status != nil && !model.ValidNotificationStatus(*r.Status) {
		return "unknown notification status"
	}
	return ""
}

// POST /api/notifications/
func (h *Handler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Channel == nil || req.Content == nil {
		badRequest(c, "channel and content are required")
		return
	}
	if req.RecipientID == nil && req.ClientRecipientID == nil {
		badRequest(c, "a recipient or client_recipient is required")
		return
	}
	if msg := validateNotification(&req); msg != "" {
		badRequest(c, msg)
		return
	}

	n := &model.Notification{Status: "pending"}
	req.apply(n)

	if err := h.store.CreateNotification(c.Request.Context(), n); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// GET /api/notifications/
func (h *Handler) ListNotifications(c *gin.Context) {
	items, err := h.store.ListNotifications(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIf(items))
}

// GET /api/notifications/:id/
func (h *Handler) GetNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.store.NotificationByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// PUT/PATCH /api/notifications/:id/
func (h *Handler) UpdateNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if msg := validateNotification(&req); msg != "" {
		badRequest(c, msg)
		return
	}

	n, err := h.store.NotificationByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	req.apply(n)

	if err := h.store.UpdateNotification(c.Request.Context(), n); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// DELETE /api/notifications/:id/
func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteNotification(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
