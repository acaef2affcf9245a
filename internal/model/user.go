package model

// Roles
const (
	RoleStudent        = "student"
	RoleTeacher        = "teacher"
	RoleDepartmentHead = "department_head"
	RoleAdmin          = "admin"
)

// User account (table users)
type User struct {
	ID           int    `gorm:"primaryKey"                        json:"id"`
	Email        string `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null"        json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"        json:"last_name"`
	Role         string `gorm:"type:varchar(20);not null"         json:"role"`
	CIN          string `gorm:"column:cin;type:varchar(20);not null;unique" json:"cin"`
	IsActive     bool   `gorm:"not null"                          json:"is_active"`
	IsVerified   bool   `gorm:"not null;default:false"            json:"is_verified"`
	Timestamps
}

// TableName
func (User) TableName() string { return "users" }

// FullName "first last"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
