package dto

import "time"

// ── rooms ──

// CreateRoomRequest creates a room.
type CreateRoomRequest struct {
	Code         string  `json:"code"          binding:"required,max=20"`
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	Building     *string `json:"building"      binding:"omitempty,max=100"`
	Floor        *int    `json:"floor"`
	Capacity     *int    `json:"capacity"      binding:"omitempty,min=1"`
	RoomType     *string `json:"room_type"     binding:"omitempty,oneof=classroom lab amphitheater workshop"`
	HasProjector bool    `json:"has_projector"`
	HasComputers bool    `json:"has_computers"`
	IsAvailable  *bool   `json:"is_available"`
}

// UpdateRoomRequest partial update
type UpdateRoomRequest struct {
	Code         *string `json:"code"          binding:"omitempty,max=20"`
	Name         *string `json:"name"          binding:"omitempty,max=100"`
	Building     *string `json:"building"      binding:"omitempty,max=100"`
	Floor        *int    `json:"floor"`
	Capacity     *int    `json:"capacity"      binding:"omitempty,min=1"`
	RoomType     *string `json:"room_type"     binding:"omitempty,oneof=classroom lab amphitheater workshop"`
	HasProjector *bool   `json:"has_projector"`
	HasComputers *bool   `json:"has_computers"`
	IsAvailable  *bool   `json:"is_available"`
}

// RoomResponse room
type RoomResponse struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	Name         *string   `json:"name"`
	Building     *string   `json:"building"`
	Floor        *int      `json:"floor"`
	Capacity     int       `json:"capacity"`
	RoomType     *string   `json:"room_type"`
	HasProjector bool      `json:"has_projector"`
	HasComputers bool      `json:"has_computers"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── availability ──

// AvailabilityQuery parameters are accepted for client compatibility and not used.
type AvailabilityQuery struct {
	Date     string `form:"date"`
	TimeSlot string `form:"time_slot"`
}

// AssignmentView a teaching assignment bound to a room.
type AssignmentView struct {
	TeacherID         int    `json:"teacher_id"`
	TeacherName       string `json:"teacher_name"`
	TeacherEmployeeID string `json:"teacher_employee_id"`
	SubjectID         int    `json:"subject_id"`
	DayOfWeek         int    `json:"day_of_week"`
	DayName           string `json:"day_name"`
	StartTime         string `json:"start_time"` // HH:MM
	EndTime           string `json:"end_time"`   // HH:MM
	AcademicYear      string `json:"academic_year"`
}

// RoomAvailabilityResponse room with its live status.
type RoomAvailabilityResponse struct {
	RoomResponse
	IsCurrentlyAvailable bool             `json:"is_currently_available"`
	AvailabilityStatus   string           `json:"availability_status"`
	AssignmentsCount     int              `json:"assignments_count"`
	CurrentAssignments   []AssignmentView `json:"current_assignments"`
}

// AvailabilityResponse envelope of GET /api/rooms/availability
type AvailabilityResponse struct {
	Timestamp  string                     `json:"timestamp"`
	TotalRooms int                        `json:"total_rooms"`
	Rooms      []RoomAvailabilityResponse `json:"rooms"`
}
