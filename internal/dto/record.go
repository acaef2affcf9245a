package dto

import "time"

// ── absences ──

// AbsenceListQuery list filter
type AbsenceListQuery struct {
	PageQuery
	StudentID *int `form:"student_id"`
	SessionID *int `form:"session_id"`
}

// CreateAbsenceRequest marks a student absent. MarkedBy defaults to the caller.
type CreateAbsenceRequest struct {
	StudentID          int     `json:"student_id"          binding:"required"`
	SessionID          int     `json:"session_id"          binding:"required"`
	AbsenceType        string  `json:"absence_type"        binding:"omitempty,oneof=justified unjustified pending"`
	MarkedBy           *int    `json:"marked_by"`
	Reason             *string `json:"reason"`
	SupportingDocument *string `json:"supporting_document" binding:"omitempty,max=500"`
}

// UpdateAbsenceRequest partial update
type UpdateAbsenceRequest struct {
	AbsenceType        *string `json:"absence_type"        binding:"omitempty,oneof=justified unjustified pending"`
	Reason             *string `json:"reason"`
	SupportingDocument *string `json:"supporting_document" binding:"omitempty,max=500"`
}

// AbsenceResponse absence
type AbsenceResponse struct {
	ID                 int       `json:"id"`
	StudentID          int       `json:"student_id"`
	SessionID          int       `json:"session_id"`
	AbsenceType        string    `json:"absence_type"`
	MarkedAt           time.Time `json:"marked_at"`
	MarkedBy           *int      `json:"marked_by"`
	Reason             *string   `json:"reason"`
	SupportingDocument *string   `json:"supporting_document"`
}

// ── grades ──

// GradeListQuery list filter
type GradeListQuery struct {
	PageQuery
	StudentID *int `form:"student_id"`
	SubjectID *int `form:"subject_id"`
}

// CreateGradeRequest records a score on the 0..20 scale.
type CreateGradeRequest struct {
	StudentID    int      `json:"student_id"    binding:"required"`
	SubjectID    int      `json:"subject_id"    binding:"required"`
	ExamType     string   `json:"exam_type"     binding:"required,oneof=midterm final practical project quiz"`
	Score        *float64 `json:"score"         binding:"required"`
	MaxScore     *float64 `json:"max_score"`
	ExamDate     string   `json:"exam_date"`
	AcademicYear string   `json:"academic_year" binding:"required,max=20"`
	Semester     int      `json:"semester"      binding:"required,oneof=1 2"`
}

// UpdateGradeRequest partial update
type UpdateGradeRequest struct {
	ExamType *string  `json:"exam_type" binding:"omitempty,oneof=midterm final practical project quiz"`
	Score    *float64 `json:"score"`
	ExamDate *string  `json:"exam_date"`
}

// GradeResponse grade
type GradeResponse struct {
	ID           int     `json:"id"`
	StudentID    int     `json:"student_id"`
	SubjectID    int     `json:"subject_id"`
	ExamType     string  `json:"exam_type"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"max_score"`
	ExamDate     *string `json:"exam_date"`
	AcademicYear string  `json:"academic_year"`
	Semester     int     `json:"semester"`
}

// ── events ──

// EventListQuery dates are YYYY-MM-DD; overlapping events are returned.
type EventListQuery struct {
	PageQuery
	From string `form:"from"`
	To   string `form:"to"`
}

// CreateEventRequest creates a calendar event.
type CreateEventRequest struct {
	Title            string  `json:"title"             binding:"required,max=255"`
	Description      *string `json:"description"`
	EventType        string  `json:"event_type"        binding:"required,oneof=holiday conference exam workshop closure"`
	StartDate        string  `json:"start_date"        binding:"required"`
	EndDate          string  `json:"end_date"          binding:"required"`
	AffectsTimetable bool    `json:"affects_timetable"`
}

// UpdateEventRequest partial update
type UpdateEventRequest struct {
	Title            *string `json:"title"             binding:"omitempty,max=255"`
	Description      *string `json:"description"`
	EventType        *string `json:"event_type"        binding:"omitempty,oneof=holiday conference exam workshop closure"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	AffectsTimetable *bool   `json:"affects_timetable"`
}

// EventResponse event
type EventResponse struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	EventType        string    `json:"event_type"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	AffectsTimetable bool      `json:"affects_timetable"`
	CreatedBy        *int      `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}
