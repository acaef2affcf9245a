package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/service"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// AcademicHandler specialties, levels and groups
type AcademicHandler struct {
	specialtySvc service.SpecialtyService
	levelSvc     service.LevelService
	groupSvc     service.GroupService
}

// NewAcademicHandler creates an AcademicHandler.
func NewAcademicHandler(specialtySvc service.SpecialtyService, levelSvc service.LevelService, groupSvc service.GroupService) *AcademicHandler {
	return &AcademicHandler{
		specialtySvc: specialtySvc,
		levelSvc:     levelSvc,
		groupSvc:     groupSvc,
	}
}

// ────────────────────── specialties ──────────────────────

// ListSpecialties GET /api/specialties?department_id=
func (h *AcademicHandler) ListSpecialties(c *gin.Context) {
	var q dto.SpecialtyListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.specialtySvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetSpecialty GET /api/specialties/:id
func (h *AcademicHandler) GetSpecialty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sp, err := h.specialtySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sp)
}

// CreateSpecialty POST /api/specialties
func (h *AcademicHandler) CreateSpecialty(c *gin.Context) {
	var req dto.CreateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	sp, err := h.specialtySvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, sp)
}

// UpdateSpecialty PUT /api/specialties/:id
func (h *AcademicHandler) UpdateSpecialty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	sp, err := h.specialtySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sp)
}

// DeleteSpecialty DELETE /api/specialties/:id
func (h *AcademicHandler) DeleteSpecialty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.specialtySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Specialty")
}

// ────────────────────── levels ──────────────────────

// ListLevels GET /api/levels?specialty_id=
func (h *AcademicHandler) ListLevels(c *gin.Context) {
	var q dto.LevelListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.levelSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetLevel GET /api/levels/:id
func (h *AcademicHandler) GetLevel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	level, err := h.levelSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, level)
}

// CreateLevel POST /api/levels
func (h *AcademicHandler) CreateLevel(c *gin.Context) {
	var req dto.CreateLevelRequest
	if !bindJSON(c, &req) {
		return
	}

	level, err := h.levelSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, level)
}

// DeleteLevel DELETE /api/levels/:id
func (h *AcademicHandler) DeleteLevel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.levelSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Level")
}

// ────────────────────── groups ──────────────────────

// ListGroups GET /api/groups?level_id=
func (h *AcademicHandler) ListGroups(c *gin.Context) {
	var q dto.GroupListQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.groupSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// GetGroup GET /api/groups/:id
func (h *AcademicHandler) GetGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	group, err := h.groupSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, group)
}

// CreateGroup POST /api/groups
func (h *AcademicHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, group)
}

// UpdateGroup PUT /api/groups/:id
func (h *AcademicHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, group)
}

// DeleteGroup DELETE /api/groups/:id
func (h *AcademicHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.groupSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Deleted(c, "Group")
}
