package model

import "time"

// Notification types
const (
	NotificationAbsence   = "absence"
	NotificationTimetable = "timetable"
	NotificationGrade     = "grade"
	NotificationGeneral   = "general"
	NotificationAlert     = "alert"
)

// Notification addressed to a user (table notifications)
type Notification struct {
	ID                int       `gorm:"primaryKey"                 json:"id"`
	UserID            int       `gorm:"not null;index"             json:"user_id"`
	Title             string    `gorm:"type:varchar(255);not null" json:"title"`
	Message           string    `gorm:"type:text;not null"         json:"message"`
	NotificationType  string    `gorm:"type:varchar(20);not null;default:'general'" json:"notification_type"`
	IsRead            bool      `gorm:"not null;default:false"     json:"is_read"`
	RelatedEntityType *string   `gorm:"type:varchar(50)"           json:"related_entity_type"` // absence | grade | timetable_slot | event
	RelatedEntityID   *int      `json:"related_entity_id"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime"    json:"created_at"`
}

// TableName
func (Notification) TableName() string { return "notifications" }

// Message direct message between users (table messages)
type Message struct {
	ID              int        `gorm:"primaryKey"              json:"id"`
	SenderID        int        `gorm:"not null;index"          json:"sender_id"`
	RecipientID     int        `gorm:"not null;index"          json:"recipient_id"`
	Subject         *string    `gorm:"type:varchar(255)"       json:"subject"`
	Content         string     `gorm:"type:text;not null"      json:"content"`
	IsRead          bool       `gorm:"not null;default:false"  json:"is_read"`
	ParentMessageID *int       `json:"parent_message_id"`
	ReadAt          *time.Time `json:"read_at"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName
func (Message) TableName() string { return "messages" }

// Event types
const (
	EventHoliday    = "holiday"
	EventConference = "conference"
	EventExam       = "exam"
	EventWorkshop   = "workshop"
	EventClosure    = "closure"
)

// Event on the academic calendar (table events)
type Event struct {
	ID               int       `gorm:"primaryKey"                 json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Description      *string   `gorm:"type:text"                  json:"description"`
	EventType        string    `gorm:"type:varchar(20);not null"  json:"event_type"`
	StartDate        time.Time `gorm:"type:date;not null"         json:"start_date"`
	EndDate          time.Time `gorm:"type:date;not null"         json:"end_date"`
	AffectsTimetable bool      `gorm:"not null;default:false"     json:"affects_timetable"`
	CreatedBy        *int      `json:"created_by"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime"    json:"created_at"`
}

// TableName
func (Event) TableName() string { return "events" }

// All lists every persisted model, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{}, &Department{}, &Specialty{}, &Level{}, &Group{},
		&Teacher{}, &Student{}, &Subject{}, &Room{},
		&TimetableSlot{}, &Session{}, &Absence{}, &Grade{},
		&Message{}, &Notification{}, &Event{},
	}
}
