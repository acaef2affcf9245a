package model

import "time"

// Room types
const (
	RoomTypeClassroom    = "classroom"
	RoomTypeLab          = "lab"
	RoomTypeAmphitheater = "amphitheater"
	RoomTypeWorkshop     = "workshop"
)

// Room physical teaching space (table rooms). Name and RoomType are optional;
// the availability view renders them as null when unset.
type Room struct {
	ID           int       `gorm:"primaryKey"                             json:"id"`
	Code         string    `gorm:"type:varchar(20);not null;unique"       json:"code"`
	Name         *string   `gorm:"type:varchar(100)"                      json:"name"`
	Building     *string   `gorm:"type:varchar(100)"                      json:"building"`
	Floor        *int      `json:"floor"`
	Capacity     int       `gorm:"not null;default:30"                    json:"capacity"`
	RoomType     *string   `gorm:"type:varchar(20)"                       json:"room_type"`
	HasProjector bool      `gorm:"not null;default:false"                 json:"has_projector"`
	HasComputers bool      `gorm:"not null;default:false"                 json:"has_computers"`
	IsAvailable  bool      `gorm:"not null"                               json:"is_available"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"                json:"created_at"`
}

// TableName
func (Room) TableName() string { return "rooms" }
