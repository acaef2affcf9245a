package dto

import "time"

// ── departments ──

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name        string  `json:"name"        binding:"required,max=200"`
	Code        string  `json:"code"        binding:"required,max=20"`
	Description *string `json:"description"`
	HeadID      *int    `json:"head_id"`
}

// UpdateDepartmentRequest partial update
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=200"`
	Code        *string `json:"code"        binding:"omitempty,max=20"`
	Description *string `json:"description"`
	HeadID      *int    `json:"head_id"`
}

// DepartmentResponse department
type DepartmentResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	HeadID      *int      `json:"head_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── specialties ──

// SpecialtyListQuery list filter
type SpecialtyListQuery struct {
	PageQuery
	DepartmentID *int `form:"department_id"`
}

// CreateSpecialtyRequest creates a specialty.
type CreateSpecialtyRequest struct {
	Name         string  `json:"name"          binding:"required,max=200"`
	Code         string  `json:"code"          binding:"required,max=20"`
	DepartmentID int     `json:"department_id" binding:"required"`
	Description  *string `json:"description"`
}

// UpdateSpecialtyRequest partial update
type UpdateSpecialtyRequest struct {
	Name         *string `json:"name"          binding:"omitempty,max=200"`
	Code         *string `json:"code"          binding:"omitempty,max=20"`
	DepartmentID *int    `json:"department_id"`
	Description  *string `json:"description"`
}

// SpecialtyResponse specialty
type SpecialtyResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	DepartmentID int       `json:"department_id"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── levels ──

// LevelListQuery list filter
type LevelListQuery struct {
	PageQuery
	SpecialtyID *int `form:"specialty_id"`
}

// CreateLevelRequest creates a level.
type CreateLevelRequest struct {
	Name        string `json:"name"         binding:"required,max=100"`
	Code        string `json:"code"         binding:"required,max=20"`
	SpecialtyID int    `json:"specialty_id" binding:"required"`
	YearNumber  int    `json:"year_number"  binding:"required,min=1,max=5"`
}

// LevelResponse level
type LevelResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	SpecialtyID int       `json:"specialty_id"`
	YearNumber  int       `json:"year_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── groups ──

// GroupListQuery list filter
type GroupListQuery struct {
	PageQuery
	LevelID *int `form:"level_id"`
}

// CreateGroupRequest creates a group.
type CreateGroupRequest struct {
	Name        string `json:"name"         binding:"required,max=100"`
	Code        string `json:"code"         binding:"required,max=20"`
	LevelID     int    `json:"level_id"     binding:"required"`
	MaxStudents *int   `json:"max_students" binding:"omitempty,min=1"`
}

// UpdateGroupRequest partial update
type UpdateGroupRequest struct {
	Name        *string `json:"name"         binding:"omitempty,max=100"`
	Code        *string `json:"code"         binding:"omitempty,max=20"`
	LevelID     *int    `json:"level_id"`
	MaxStudents *int    `json:"max_students" binding:"omitempty,min=1"`
}

// GroupResponse group
type GroupResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	LevelID     int       `json:"level_id"`
	MaxStudents int       `json:"max_students"`
	CreatedAt   time.Time `json:"created_at"`
}
