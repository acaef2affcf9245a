package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// PeopleHandler students and teachers. Deletes answer 204.
type PeopleHandler struct {
	studentSvc service.StudentService
	teacherSvc service.TeacherService
}

// NewPeopleHandler creates a PeopleHandler.
func NewPeopleHandler(studentSvc service.StudentService, teacherSvc service.TeacherService) *PeopleHandler {
	return &PeopleHandler{studentSvc: studentSvc, teacherSvc: teacherSvc}
}

// ────────────────────── students ──────────────────────

// ListStudents GET /api/students
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.studentSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetStudent GET /api/students/:id
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	st, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, st)
}

// CreateStudent creates the student, and its account when user_id is absent.
// POST /api/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, st)
}

// UpdateStudent PUT /api/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.studentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, st)
}

// DeleteStudent DELETE /api/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ────────────────────── teachers ──────────────────────

// ListTeachers GET /api/teachers
func (h *PeopleHandler) ListTeachers(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.teacherSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetTeacher GET /api/teachers/:id
func (h *PeopleHandler) GetTeacher(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, t)
}

// CreateTeacher POST /api/teachers
func (h *PeopleHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, t)
}

// UpdateTeacher PUT /api/teachers/:id
func (h *PeopleHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.teacherSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, t)
}

// DeleteTeacher DELETE /api/teachers/:id
func (h *PeopleHandler) DeleteTeacher(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.teacherSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
