package model

import "time"

// Teacher profile (table teachers)
type Teacher struct {
	ID             int        `gorm:"primaryKey"                       json:"id"`
	UserID         int        `gorm:"not null;unique"                  json:"user_id"`
	EmployeeID     string     `gorm:"type:varchar(50);not null;unique" json:"employee_id"`
	DepartmentID   int        `gorm:"not null;index"                   json:"department_id"`
	Specialization *string    `gorm:"type:varchar(200)"                json:"specialization"`
	Phone          *string    `gorm:"type:varchar(20)"                 json:"phone"`
	HireDate       *time.Time `gorm:"type:date"                        json:"hire_date"`
	Timestamps

	User       *User       `gorm:"foreignKey:UserID"       json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName
func (Teacher) TableName() string { return "teachers" }

// Student profile (table students)
type Student struct {
	ID             int        `gorm:"primaryKey"                       json:"id"`
	UserID         int        `gorm:"not null;unique"                  json:"user_id"`
	StudentNumber  string     `gorm:"type:varchar(50);not null;unique" json:"student_number"`
	GroupID        int        `gorm:"not null;index"                   json:"group_id"`
	SpecialtyID    int        `gorm:"not null;index"                   json:"specialty_id"`
	EnrollmentDate time.Time  `gorm:"type:date;not null"               json:"enrollment_date"`
	DateOfBirth    *time.Time `gorm:"type:date"                        json:"date_of_birth"`
	Phone          *string    `gorm:"type:varchar(20)"                 json:"phone"`
	Address        *string    `gorm:"type:text"                        json:"address"`
	Timestamps

	User      *User      `gorm:"foreignKey:UserID"      json:"-"`
	Group     *Group     `gorm:"foreignKey:GroupID"     json:"-"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"-"`
}

// TableName
func (Student) TableName() string { return "students" }
