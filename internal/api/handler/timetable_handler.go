package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

const icsContentType = "text/calendar; charset=utf-8"

// TimetableHandler subjects, weekly slots, dated sessions and calendar feeds
type TimetableHandler struct {
	subjectSvc  service.SubjectService
	slotSvc     service.SlotService
	sessionSvc  service.SessionService
	calendarSvc service.CalendarService
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(
	subjectSvc service.SubjectService,
	slotSvc service.SlotService,
	sessionSvc service.SessionService,
	calendarSvc service.CalendarService,
) *TimetableHandler {
	return &TimetableHandler{
		subjectSvc:  subjectSvc,
		slotSvc:     slotSvc,
		sessionSvc:  sessionSvc,
		calendarSvc: calendarSvc,
	}
}

// ────────────────────── subjects ──────────────────────

// ListSubjects GET /api/subjects?level_id=
func (h *TimetableHandler) ListSubjects(c *gin.Context) {
	var q dto.SubjectListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.subjectSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetSubject GET /api/subjects/:id
func (h *TimetableHandler) GetSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sub, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sub)
}

// CreateSubject POST /api/subjects
func (h *TimetableHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, sub)
}

// UpdateSubject PUT /api/subjects/:id
func (h *TimetableHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.subjectSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sub)
}

// DeleteSubject DELETE /api/subjects/:id
func (h *TimetableHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Subject")
}

// ────────────────────── timetable slots ──────────────────────

// ListSlots GET /api/timetable-slots
func (h *TimetableHandler) ListSlots(c *gin.Context) {
	var q dto.SlotListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.slotSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetSlot GET /api/timetable-slots/:id
func (h *TimetableHandler) GetSlot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	slot, err := h.slotSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, slot)
}

// CreateSlot POST /api/timetable-slots
func (h *TimetableHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.slotSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, slot)
}

// UpdateSlot PUT /api/timetable-slots/:id
func (h *TimetableHandler) UpdateSlot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.slotSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot DELETE /api/timetable-slots/:id
func (h *TimetableHandler) DeleteSlot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.slotSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Timetable slot")
}

// ────────────────────── calendar feeds ──────────────────────

// GroupCalendar GET /api/groups/:id/timetable.ics?from=
func (h *TimetableHandler) GroupCalendar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var q dto.CalendarQuery
	if !bindQuery(c, &q) {
		return
	}

	feed, err := h.calendarSvc.GroupTimetable(c.Request.Context(), id, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	writeCalendar(c, fmt.Sprintf("group-%d.ics", id), feed)
}

// TeacherCalendar GET /api/teachers/:id/timetable.ics?from=
func (h *TimetableHandler) TeacherCalendar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var q dto.CalendarQuery
	if !bindQuery(c, &q) {
		return
	}

	feed, err := h.calendarSvc.TeacherTimetable(c.Request.Context(), id, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	writeCalendar(c, fmt.Sprintf("teacher-%d.ics", id), feed)
}

func writeCalendar(c *gin.Context, filename, feed string) {
	c.Header("Content-Disposition", "inline; filename="+filename)
	c.Data(http.StatusOK, icsContentType, []byte(feed))
}

// ────────────────────── sessions ──────────────────────

// ListSessions GET /api/sessions
func (h *TimetableHandler) ListSessions(c *gin.Context) {
	var q dto.SessionListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.sessionSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetSession GET /api/sessions/:id
func (h *TimetableHandler) GetSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sess, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sess)
}

// CreateSession POST /api/sessions
func (h *TimetableHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.sessionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, sess)
}

// TransitionSession applies a status event (complete, cancel, reschedule, restore).
// POST /api/sessions/:id/transition
func (h *TimetableHandler) TransitionSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.SessionTransitionRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.sessionSvc.Transition(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sess)
}
