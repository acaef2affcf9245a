package dto

import "time"

// ── user DTOs ──

// CreateUserRequest creates a bare account.
type CreateUserRequest struct {
	Email     string `json:"email"      binding:"required,email,max=255"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name"  binding:"required,max=100"`
	Role      string `json:"role"       binding:"required,oneof=student teacher department_head admin"`
	CIN       string `json:"cin"        binding:"required,max=20"`
	Password  string `json:"password"   binding:"omitempty,max=128"`
}

// UserResponse account without credentials
type UserResponse struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	CIN        string    `json:"cin"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
