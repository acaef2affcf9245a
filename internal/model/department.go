package model

import "time"

// Department (table departments)
type Department struct {
	ID          int     `gorm:"primaryKey"                        json:"id"`
	Name        string  `gorm:"type:varchar(200);not null;unique" json:"name"`
	Code        string  `gorm:"type:varchar(20);not null;unique"  json:"code"`
	Description *string `gorm:"type:text"                         json:"description"`
	HeadID      *int    `gorm:"index"                             json:"head_id"`
	Timestamps

	Head *User `gorm:"foreignKey:HeadID" json:"-"`
}

// TableName
func (Department) TableName() string { return "departments" }

// Specialty belongs to a department (table specialties)
type Specialty struct {
	ID           int     `gorm:"primaryKey"                       json:"id"`
	Name         string  `gorm:"type:varchar(200);not null"       json:"name"`
	Code         string  `gorm:"type:varchar(20);not null;unique" json:"code"`
	DepartmentID int     `gorm:"not null;index"                   json:"department_id"`
	Description  *string `gorm:"type:text"                        json:"description"`
	Timestamps

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName
func (Specialty) TableName() string { return "specialties" }

// Level is a study year of a specialty (table levels)
type Level struct {
	ID          int       `gorm:"primaryKey"                 json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Code        string    `gorm:"type:varchar(20);not null"  json:"code"`
	SpecialtyID int       `gorm:"not null;index"             json:"specialty_id"`
	YearNumber  int       `gorm:"not null"                   json:"year_number"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"    json:"created_at"`

	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"-"`
}

// TableName
func (Level) TableName() string { return "levels" }

// Group of students within a level (table groups)
type Group struct {
	ID          int       `gorm:"primaryKey"                 json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Code        string    `gorm:"type:varchar(20);not null"  json:"code"`
	LevelID     int       `gorm:"not null;index"             json:"level_id"`
	MaxStudents int       `gorm:"not null;default:30"        json:"max_students"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"    json:"created_at"`

	Level *Level `gorm:"foreignKey:LevelID" json:"-"`
}

// TableName
func (Group) TableName() string { return "groups" }
