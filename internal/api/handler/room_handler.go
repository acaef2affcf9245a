package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// RoomHandler room CRUD and live availability
type RoomHandler struct {
	roomSvc         service.RoomService
	availabilitySvc service.AvailabilityService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomSvc service.RoomService, availabilitySvc service.AvailabilityService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc, availabilitySvc: availabilitySvc}
}

// Availability derives the current occupancy of every room.
// GET /api/rooms/availability
func (h *RoomHandler) Availability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.availabilitySvc.Compute(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// ListRooms GET /api/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	rooms, err := h.roomSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, rooms)
}

// GetRoom GET /api/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	room, err := h.roomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateRoom POST /api/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateRoom PUT /api/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom DELETE /api/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.roomSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Room")
}
