package dto

import "time"

// ── subjects ──

// SubjectListQuery list filter
type SubjectListQuery struct {
	PageQuery
	LevelID *int `form:"level_id"`
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Name         string  `json:"name"           binding:"required,max=200"`
	Code         string  `json:"code"           binding:"required,max=20"`
	LevelID      int     `json:"level_id"       binding:"required"`
	Credits      *int    `json:"credits"        binding:"omitempty,min=0"`
	HoursPerWeek *int    `json:"hours_per_week" binding:"omitempty,min=0"`
	SubjectType  string  `json:"subject_type"   binding:"omitempty,oneof=theory practical mixed"`
	Description  *string `json:"description"`
}

// UpdateSubjectRequest partial update
type UpdateSubjectRequest struct {
	Name         *string `json:"name"           binding:"omitempty,max=200"`
	Code         *string `json:"code"           binding:"omitempty,max=20"`
	LevelID      *int    `json:"level_id"`
	Credits      *int    `json:"credits"        binding:"omitempty,min=0"`
	HoursPerWeek *int    `json:"hours_per_week" binding:"omitempty,min=0"`
	SubjectType  *string `json:"subject_type"   binding:"omitempty,oneof=theory practical mixed"`
	Description  *string `json:"description"`
}

// SubjectResponse subject
type SubjectResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	LevelID      int       `json:"level_id"`
	Credits      int       `json:"credits"`
	HoursPerWeek int       `json:"hours_per_week"`
	SubjectType  string    `json:"subject_type"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── timetable slots ──

// SlotListQuery list filter
type SlotListQuery struct {
	RoomID     *int `form:"room_id"`
	TeacherID  *int `form:"teacher_id"`
	GroupID    *int `form:"group_id"`
	DayOfWeek  *int `form:"day_of_week"`
	ActiveOnly bool `form:"active_only"`
}

// CreateSlotRequest times accept HH:MM or HH:MM:SS.
type CreateSlotRequest struct {
	SubjectID    int    `json:"subject_id"    binding:"required"`
	TeacherID    int    `json:"teacher_id"    binding:"required"`
	GroupID      int    `json:"group_id"      binding:"required"`
	RoomID       int    `json:"room_id"       binding:"required"`
	DayOfWeek    int    `json:"day_of_week"   binding:"required"`
	StartTime    string `json:"start_time"    binding:"required"`
	EndTime      string `json:"end_time"      binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required,max=20"`
	Semester     int    `json:"semester"      binding:"required"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateSlotRequest partial update, validated on the merged slot.
type UpdateSlotRequest struct {
	SubjectID    *int    `json:"subject_id"`
	TeacherID    *int    `json:"teacher_id"`
	GroupID      *int    `json:"group_id"`
	RoomID       *int    `json:"room_id"`
	DayOfWeek    *int    `json:"day_of_week"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	AcademicYear *string `json:"academic_year" binding:"omitempty,max=20"`
	Semester     *int    `json:"semester"`
	IsActive     *bool   `json:"is_active"`
}

// SlotResponse slot with HH:MM times
type SlotResponse struct {
	ID           int    `json:"id"`
	SubjectID    int    `json:"subject_id"`
	TeacherID    int    `json:"teacher_id"`
	GroupID      int    `json:"group_id"`
	RoomID       int    `json:"room_id"`
	DayOfWeek    int    `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	AcademicYear string `json:"academic_year"`
	Semester     int    `json:"semester"`
	IsActive     bool   `json:"is_active"`
}

// CalendarQuery anchors the weekly feed; defaults to today.
type CalendarQuery struct {
	From string `form:"from"`
}

// ── sessions ──

// SessionListQuery list filter; dates are YYYY-MM-DD.
type SessionListQuery struct {
	PageQuery
	TimetableSlotID *int   `form:"timetable_slot_id"`
	RoomID          *int   `form:"room_id"`
	From            string `form:"from"`
	To              string `form:"to"`
	Status          string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
}

// CreateSessionRequest copies the slot's times and room when omitted.
type CreateSessionRequest struct {
	TimetableSlotID int    `json:"timetable_slot_id" binding:"required"`
	SessionDate     string `json:"session_date"      binding:"required"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	RoomID          *int   `json:"room_id"`
	IsMakeup        bool   `json:"is_makeup"`
}

// SessionTransitionRequest drives the session status machine.
type SessionTransitionRequest struct {
	Event  string  `json:"event"  binding:"required,oneof=complete cancel reschedule restore"`
	Reason *string `json:"reason"`
}

// SessionResponse session
type SessionResponse struct {
	ID                 int     `json:"id"`
	TimetableSlotID    int     `json:"timetable_slot_id"`
	SessionDate        string  `json:"session_date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	RoomID             int     `json:"room_id"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellation_reason"`
	IsMakeup           bool    `json:"is_makeup"`
}
