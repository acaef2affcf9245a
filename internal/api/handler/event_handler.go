package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// EventHandler university calendar events
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ListEvents events overlapping [from, to].
// GET /api/events?from=&to=
func (h *EventHandler) ListEvents(c *gin.Context) {
	var q dto.EventListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.eventSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetEvent GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ev, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, ev)
}

// CreateEvent POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.eventSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, ev)
}

// UpdateEvent PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.eventSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, ev)
}

// DeleteEvent DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Event")
}
