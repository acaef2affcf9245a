package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// DepartmentHandler department endpoints
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler creates a DepartmentHandler.
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments GET /api/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var q dto.PageQuery
	if !bindQuery(c, &q) {
		return
	}

	depts, err := h.deptSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, depts)
}

// GetDepartment GET /api/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment POST /api/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, dept)
}

// UpdateDepartment PUT /api/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, dept)
}

// DeleteDepartment DELETE /api/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Department")
}

// ListStudents students enrolled through any of the department's specialties.
// GET /api/departments/:id/students
func (h *DepartmentHandler) ListStudents(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	students, err := h.deptSvc.ListStudents(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, students)
}
