package dto

import "time"

// ── students ──

// CreateStudentRequest creates a student. Without user_id the account is
// created from the identity fields, with the CIN as default password.
type CreateStudentRequest struct {
	UserID         *int    `json:"user_id"`
	FirstName      string  `json:"first_name"      binding:"omitempty,max=100"`
	LastName       string  `json:"last_name"       binding:"omitempty,max=100"`
	Email          string  `json:"email"           binding:"omitempty,email,max=255"`
	CIN            string  `json:"cin"             binding:"omitempty,max=20"`
	Password       string  `json:"password"        binding:"omitempty,max=128"`
	StudentNumber  string  `json:"student_number"  binding:"required,max=50"`
	GroupID        int     `json:"group_id"        binding:"required"`
	SpecialtyID    int     `json:"specialty_id"    binding:"required"`
	EnrollmentDate string  `json:"enrollment_date" binding:"required"`
	DateOfBirth    string  `json:"date_of_birth"`
	Phone          *string `json:"phone"           binding:"omitempty,max=20"`
	Address        *string `json:"address"`
}

// UpdateStudentRequest partial update; identity fields update the linked user.
type UpdateStudentRequest struct {
	FirstName      *string `json:"first_name"      binding:"omitempty,max=100"`
	LastName       *string `json:"last_name"       binding:"omitempty,max=100"`
	Email          *string `json:"email"           binding:"omitempty,email,max=255"`
	StudentNumber  *string `json:"student_number"  binding:"omitempty,max=50"`
	GroupID        *int    `json:"group_id"`
	SpecialtyID    *int    `json:"specialty_id"`
	EnrollmentDate *string `json:"enrollment_date"`
	DateOfBirth    *string `json:"date_of_birth"`
	Phone          *string `json:"phone"           binding:"omitempty,max=20"`
	Address        *string `json:"address"`
}

// StudentResponse student row
type StudentResponse struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	StudentNumber  string    `json:"student_number"`
	GroupID        int       `json:"group_id"`
	SpecialtyID    int       `json:"specialty_id"`
	EnrollmentDate string    `json:"enrollment_date"`
	DateOfBirth    *string   `json:"date_of_birth"`
	Phone          *string   `json:"phone"`
	Address        *string   `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
}

// StudentDetailResponse student joined with its user and specialty.
type StudentDetailResponse struct {
	StudentResponse
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	SpecialtyName string `json:"specialty_name"`
	SpecialtyCode string `json:"specialty_code"`
}

// ── teachers ──

// CreateTeacherRequest creates a teacher, with the same account rules as students.
type CreateTeacherRequest struct {
	UserID         *int    `json:"user_id"`
	FirstName      string  `json:"first_name"     binding:"omitempty,max=100"`
	LastName       string  `json:"last_name"      binding:"omitempty,max=100"`
	Email          string  `json:"email"          binding:"omitempty,email,max=255"`
	CIN            string  `json:"cin"            binding:"omitempty,max=20"`
	Password       string  `json:"password"       binding:"omitempty,max=128"`
	EmployeeID     string  `json:"employee_id"    binding:"required,max=50"`
	DepartmentID   int     `json:"department_id"  binding:"required"`
	Specialization *string `json:"specialization" binding:"omitempty,max=200"`
	Phone          *string `json:"phone"          binding:"omitempty,max=20"`
	HireDate       string  `json:"hire_date"`
}

// UpdateTeacherRequest partial update
type UpdateTeacherRequest struct {
	FirstName      *string `json:"first_name"     binding:"omitempty,max=100"`
	LastName       *string `json:"last_name"      binding:"omitempty,max=100"`
	Email          *string `json:"email"          binding:"omitempty,email,max=255"`
	EmployeeID     *string `json:"employee_id"    binding:"omitempty,max=50"`
	DepartmentID   *int    `json:"department_id"`
	Specialization *string `json:"specialization" binding:"omitempty,max=200"`
	Phone          *string `json:"phone"          binding:"omitempty,max=20"`
	HireDate       *string `json:"hire_date"`
}

// TeacherResponse teacher row
type TeacherResponse struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	EmployeeID     string    `json:"employee_id"`
	DepartmentID   int       `json:"department_id"`
	Specialization *string   `json:"specialization"`
	Phone          *string   `json:"phone"`
	HireDate       *string   `json:"hire_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// TeacherDetailResponse teacher joined with its user and department.
type TeacherDetailResponse struct {
	TeacherResponse
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DepartmentName string `json:"department_name"`
	DepartmentCode string `json:"department_code"`
}
