package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// MessagingHandler direct messages and notifications of the caller
type MessagingHandler struct {
	messageSvc      service.MessageService
	notificationSvc service.NotificationService
}

// NewMessagingHandler creates a MessagingHandler.
func NewMessagingHandler(messageSvc service.MessageService, notificationSvc service.NotificationService) *MessagingHandler {
	return &MessagingHandler{messageSvc: messageSvc, notificationSvc: notificationSvc}
}

// ────────────────────── messages ──────────────────────

// SendMessage POST /api/messages
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageSvc.Send(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, msg)
}

// Inbox GET /api/messages/inbox?unread_only=
func (h *MessagingHandler) Inbox(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.MailboxQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.messageSvc.Inbox(c.Request.Context(), userID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Outbox GET /api/messages/outbox
func (h *MessagingHandler) Outbox(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.MailboxQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.messageSvc.Outbox(c.Request.Context(), userID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetMessage GET /api/messages/:id
func (h *MessagingHandler) GetMessage(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	msg, err := h.messageSvc.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, msg)
}

// MarkMessageRead PATCH /api/messages/:id/read
func (h *MessagingHandler) MarkMessageRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	msg, err := h.messageSvc.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, msg)
}

// ────────────────────── notifications ──────────────────────

// ListNotifications GET /api/notifications?unread_only=
func (h *MessagingHandler) ListNotifications(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.NotificationListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.notificationSvc.List(c.Request.Context(), userID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// CreateNotification POST /api/notifications
func (h *MessagingHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.notificationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, n)
}

// MarkNotificationRead PATCH /api/notifications/:id/read
func (h *MessagingHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	n, err := h.notificationSvc.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, n)
}

// MarkAllNotificationsRead POST /api/notifications/read-all
func (h *MessagingHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
