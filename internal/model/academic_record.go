package model

import "time"

// Absence types
const (
	AbsenceJustified   = "justified"
	AbsenceUnjustified = "unjustified"
	AbsencePending     = "pending"
)

// Absence of a student from a session (table absences)
type Absence struct {
	ID                 int       `gorm:"primaryKey"                json:"id"`
	StudentID          int       `gorm:"not null;index"            json:"student_id"`
	SessionID          int       `gorm:"not null;index"            json:"session_id"`
	AbsenceType        string    `gorm:"type:varchar(20);not null;default:'unjustified'" json:"absence_type"`
	MarkedAt           time.Time `gorm:"not null"                  json:"marked_at"`
	MarkedBy           *int      `json:"marked_by"`
	Reason             *string   `gorm:"type:text"                 json:"reason"`
	SupportingDocument *string   `gorm:"type:varchar(500)"         json:"supporting_document"`
	Timestamps
}

// TableName
func (Absence) TableName() string { return "absences" }

// Exam types
const (
	ExamMidterm   = "midterm"
	ExamFinal     = "final"
	ExamPractical = "practical"
	ExamProject   = "project"
	ExamQuiz      = "quiz"
)

// MaxScore is the top of the 0..20 grading scale.
const MaxScore = 20.0

// Grade (table grades)
type Grade struct {
	ID           int        `gorm:"primaryKey"               json:"id"`
	StudentID    int        `gorm:"not null;index"           json:"student_id"`
	SubjectID    int        `gorm:"not null;index"           json:"subject_id"`
	ExamType     string     `gorm:"type:varchar(20);not null" json:"exam_type"`
	Score        float64    `gorm:"type:numeric(5,2);not null" json:"score"`
	MaxScore     float64    `gorm:"type:numeric(5,2);not null;default:20" json:"max_score"`
	ExamDate     *time.Time `gorm:"type:date"                json:"exam_date"`
	AcademicYear string     `gorm:"type:varchar(20);not null" json:"academic_year"`
	Semester     int        `gorm:"not null"                 json:"semester"`
	Timestamps
}

// TableName
func (Grade) TableName() string { return "grades" }
