package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// NotificationRepository notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id int) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int, unreadOnly bool, page Page) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int) error
	// MarkAllRead returns the number of notifications flipped to read.
	MarkAllRead(ctx context.Context, userID int) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a NotificationRepository.
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID int, unreadOnly bool, page Page) ([]model.Notification, error) {
	var list []model.Notification
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	err := page.apply(db.Order("created_at DESC, id DESC")).Find(&list).Error
	return list, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// ── messages ──

// MessageRepository direct message data access
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id int) (*model.Message, error)
	ListInbox(ctx context.Context, userID int, unreadOnly bool, page Page) ([]model.Message, error)
	ListOutbox(ctx context.Context, userID int, page Page) ([]model.Message, error)
	MarkRead(ctx context.Context, id int, at time.Time) error
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo creates a MessageRepository.
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id int) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) ListInbox(ctx context.Context, userID int, unreadOnly bool, page Page) ([]model.Message, error) {
	var list []model.Message
	db := r.db.WithContext(ctx).Where("recipient_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	err := page.apply(db.Order("created_at DESC, id DESC")).Find(&list).Error
	return list, err
}

func (r *messageRepo) ListOutbox(ctx context.Context, userID int, page Page) ([]model.Message, error) {
	var list []model.Message
	db := r.db.WithContext(ctx).Where("sender_id = ?", userID)
	err := page.apply(db.Order("created_at DESC, id DESC")).Find(&list).Error
	return list, err
}

func (r *messageRepo) MarkRead(ctx context.Context, id int, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}
