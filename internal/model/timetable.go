package model

import "time"

// Subject types
const (
	SubjectTypeTheory    = "theory"
	SubjectTypePractical = "practical"
	SubjectTypeMixed     = "mixed"
)

// Subject taught at a level (table subjects)
type Subject struct {
	ID           int     `gorm:"primaryKey"                       json:"id"`
	Name         string  `gorm:"type:varchar(200);not null"       json:"name"`
	Code         string  `gorm:"type:varchar(20);not null;unique" json:"code"`
	LevelID      int     `gorm:"not null;index"                   json:"level_id"`
	Credits      int     `gorm:"not null;default:3"               json:"credits"`
	HoursPerWeek int     `gorm:"not null;default:3"               json:"hours_per_week"`
	SubjectType  string  `gorm:"type:varchar(20);not null;default:'theory'" json:"subject_type"`
	Description  *string `gorm:"type:text"                        json:"description"`
	Timestamps

	Level *Level `gorm:"foreignKey:LevelID" json:"-"`
}

// TableName
func (Subject) TableName() string { return "subjects" }

// TimetableSlot recurring weekly teaching slot (table timetable_slots)
// DayOfWeek is ISO (1 = Monday … 7 = Sunday). Times are stored as HH:MM:SS.
type TimetableSlot struct {
	ID           int    `gorm:"primaryKey"                 json:"id"`
	SubjectID    int    `gorm:"not null;index"             json:"subject_id"`
	TeacherID    int    `gorm:"not null;index"             json:"teacher_id"`
	GroupID      int    `gorm:"not null;index"             json:"group_id"`
	RoomID       int    `gorm:"not null;index"             json:"room_id"`
	DayOfWeek    int    `gorm:"not null"                   json:"day_of_week"`
	StartTime    string `gorm:"type:time;not null"         json:"start_time"`
	EndTime      string `gorm:"type:time;not null"         json:"end_time"`
	AcademicYear string `gorm:"type:varchar(20);not null"   json:"academic_year"`
	Semester     int    `gorm:"not null"                   json:"semester"`
	IsActive     bool   `gorm:"not null"                   json:"is_active"`
	Timestamps

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"-"`
	Group   *Group   `gorm:"foreignKey:GroupID"   json:"-"`
	Room    *Room    `gorm:"foreignKey:RoomID"    json:"-"`
}

// TableName
func (TimetableSlot) TableName() string { return "timetable_slots" }

// Session statuses
const (
	SessionScheduled   = "scheduled"
	SessionCompleted   = "completed"
	SessionCancelled   = "cancelled"
	SessionRescheduled = "rescheduled"
)

// Session dated occurrence of a slot (table sessions)
type Session struct {
	ID                 int       `gorm:"primaryKey"                json:"id"`
	TimetableSlotID    int       `gorm:"not null;index"            json:"timetable_slot_id"`
	SessionDate        time.Time `gorm:"type:date;not null"        json:"session_date"`
	StartTime          string    `gorm:"type:time;not null"        json:"start_time"`
	EndTime            string    `gorm:"type:time;not null"        json:"end_time"`
	RoomID             int       `gorm:"not null;index"            json:"room_id"`
	Status             string    `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	CancellationReason *string   `gorm:"type:text"                 json:"cancellation_reason"`
	IsMakeup           bool      `gorm:"not null;default:false"    json:"is_makeup"`
	Timestamps

	TimetableSlot *TimetableSlot `gorm:"foreignKey:TimetableSlotID" json:"-"`
	Room          *Room          `gorm:"foreignKey:RoomID"          json:"-"`
}

// TableName
func (Session) TableName() string { return "sessions" }
