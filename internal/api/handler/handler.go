package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// Handler aggregates every resource handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Department *DepartmentHandler
	Academic   *AcademicHandler
	People     *PeopleHandler
	Room       *RoomHandler
	Export     *ExportHandler
	Timetable  *TimetableHandler
	Record     *RecordHandler
	Event      *EventHandler
	Messaging  *MessagingHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Department: NewDepartmentHandler(svc.Department),
		Academic:   NewAcademicHandler(svc.Specialty, svc.Level, svc.Group),
		People:     NewPeopleHandler(svc.Student, svc.Teacher),
		Room:       NewRoomHandler(svc.Room, svc.Availability),
		Export:     NewExportHandler(svc.Export),
		Timetable:  NewTimetableHandler(svc.Subject, svc.Slot, svc.Session, svc.Calendar),
		Record:     NewRecordHandler(svc.Absence, svc.Grade),
		Event:      NewEventHandler(svc.Event),
		Messaging:  NewMessagingHandler(svc.Message, svc.Notification),
	}
}

// respondError records err on the context for the logger middleware and
// writes the matching error body.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.FromError(c, err)
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.BadRequest(c, pkgerrors.ErrInvalidInput.Code, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, writing 400 (or 413 when the body limit
// was hit) on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, pkgerrors.ErrBodyTooLarge.Code, pkgerrors.ErrBodyTooLarge.Message)
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, pkgerrors.ErrInvalidInput.Code, "invalid request body", err.Error())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, q interface{}) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, pkgerrors.ErrInvalidInput.Code, "invalid query parameters", err.Error())
		return false
	}
	return true
}
