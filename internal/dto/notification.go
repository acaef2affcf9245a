package dto

import "time"

// ── messages ──

// MailboxQuery inbox/outbox listing
type MailboxQuery struct {
	PageQuery
	UnreadOnly bool `form:"unread_only"`
}

// SendMessageRequest the sender is the authenticated user.
type SendMessageRequest struct {
	RecipientID     int     `json:"recipient_id"      binding:"required"`
	Subject         *string `json:"subject"           binding:"omitempty,max=255"`
	Content         string  `json:"content"           binding:"required"`
	ParentMessageID *int    `json:"parent_message_id"`
}

// MessageView direct message
type MessageView struct {
	ID              int        `json:"id"`
	SenderID        int        `json:"sender_id"`
	RecipientID     int        `json:"recipient_id"`
	Subject         *string    `json:"subject"`
	Content         string     `json:"content"`
	IsRead          bool       `json:"is_read"`
	ParentMessageID *int       `json:"parent_message_id"`
	ReadAt          *time.Time `json:"read_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ── notifications ──

// NotificationListQuery listing of the caller's notifications
type NotificationListQuery struct {
	PageQuery
	UnreadOnly bool `form:"unread_only"`
}

// CreateNotificationRequest addresses a notification to a user.
type CreateNotificationRequest struct {
	UserID            int     `json:"user_id"             binding:"required"`
	Title             string  `json:"title"               binding:"required,max=255"`
	Message           string  `json:"message"             binding:"required"`
	NotificationType  string  `json:"notification_type"   binding:"omitempty,oneof=absence timetable grade general alert"`
	RelatedEntityType *string `json:"related_entity_type" binding:"omitempty,oneof=absence grade timetable_slot event"`
	RelatedEntityID   *int    `json:"related_entity_id"`
}

// NotificationResponse notification
type NotificationResponse struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	NotificationType  string    `json:"notification_type"`
	IsRead            bool      `json:"is_read"`
	RelatedEntityType *string   `json:"related_entity_type"`
	RelatedEntityID   *int      `json:"related_entity_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// MarkAllReadResponse number of notifications flipped to read
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
