package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// RecordHandler absences and grades
type RecordHandler struct {
	absenceSvc service.AbsenceService
	gradeSvc   service.GradeService
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(absenceSvc service.AbsenceService, gradeSvc service.GradeService) *RecordHandler {
	return &RecordHandler{absenceSvc: absenceSvc, gradeSvc: gradeSvc}
}

// ────────────────────── absences ──────────────────────

// ListAbsences GET /api/absences?student_id=&session_id=
func (h *RecordHandler) ListAbsences(c *gin.Context) {
	var q dto.AbsenceListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.absenceSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetAbsence GET /api/absences/:id
func (h *RecordHandler) GetAbsence(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.absenceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, a)
}

// CreateAbsence records an absence; the caller is the default marker.
// POST /api/absences
func (h *RecordHandler) CreateAbsence(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.absenceSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, a)
}

// UpdateAbsence PUT /api/absences/:id
func (h *RecordHandler) UpdateAbsence(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAbsenceRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.absenceSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, a)
}

// DeleteAbsence DELETE /api/absences/:id
func (h *RecordHandler) DeleteAbsence(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.absenceSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Absence")
}

// ────────────────────── grades ──────────────────────

// ListGrades GET /api/grades?student_id=&subject_id=
func (h *RecordHandler) ListGrades(c *gin.Context) {
	var q dto.GradeListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.gradeSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetGrade GET /api/grades/:id
func (h *RecordHandler) GetGrade(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	g, err := h.gradeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, g)
}

// CreateGrade POST /api/grades
func (h *RecordHandler) CreateGrade(c *gin.Context) {
	var req dto.CreateGradeRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.gradeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, g)
}

// UpdateGrade PUT /api/grades/:id
func (h *RecordHandler) UpdateGrade(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.gradeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, g)
}

// DeleteGrade DELETE /api/grades/:id
func (h *RecordHandler) DeleteGrade(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.gradeSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Grade")
}
