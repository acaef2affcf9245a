package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// ── messaging errors ──

var (
	ErrMessageNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 26001, "Message not found")
	ErrNotRecipient         = pkgerrors.New(pkgerrors.KindForbidden, 26002, "only the recipient can mark a message as read")
	ErrNotificationNotFound = pkgerrors.New(pkgerrors.KindNotFound, 26101, "Notification not found")
)

// ════════════════════════ Message ════════════════════════

// MessageService direct messages between users
type MessageService interface {
	Send(ctx context.Context, req *dto.SendMessageRequest, senderID int) (*dto.MessageView, error)
	// Get returns the message when userID is its sender or recipient.
	Get(ctx context.Context, id, userID int) (*dto.MessageView, error)
	Inbox(ctx context.Context, userID int, q *dto.MailboxQuery) ([]dto.MessageView, error)
	Outbox(ctx context.Context, userID int, q *dto.MailboxQuery) ([]dto.MessageView, error)
	MarkRead(ctx context.Context, id, userID int) (*dto.MessageView, error)
}

type messageService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewMessageService creates a MessageService.
func NewMessageService(repo *repository.Repository, now Clock, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, now: now, logger: logger}
}

func (s *messageService) Send(ctx context.Context, req *dto.SendMessageRequest, senderID int) (*dto.MessageView, error) {
	_, err := s.repo.User.GetByID(ctx, req.RecipientID)
	if err := checkRef(err, "User", req.RecipientID); err != nil {
		return nil, err
	}
	if req.ParentMessageID != nil {
		_, err := s.repo.Message.GetByID(ctx, *req.ParentMessageID)
		if err := checkRef(err, "Message", *req.ParentMessageID); err != nil {
			return nil, err
		}
	}

	m := &model.Message{
		SenderID:        senderID,
		RecipientID:     req.RecipientID,
		Subject:         req.Subject,
		Content:         req.Content,
		ParentMessageID: req.ParentMessageID,
	}
	if err := s.repo.Message.Create(ctx, m); err != nil {
		s.logger.Error("failed to send message",
			zap.Int("sender_id", senderID), zap.Int("recipient_id", req.RecipientID), zap.Error(err))
		return nil, err
	}
	return toMessageView(m), nil
}

func (s *messageService) Get(ctx context.Context, id, userID int) (*dto.MessageView, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.SenderID != userID && m.RecipientID != userID {
		return nil, ErrMessageNotFound
	}
	return toMessageView(m), nil
}

func (s *messageService) Inbox(ctx context.Context, userID int, q *dto.MailboxQuery) ([]dto.MessageView, error) {
	list, err := s.repo.Message.ListInbox(ctx, userID, q.UnreadOnly, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list inbox", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toMessageViews(list), nil
}

func (s *messageService) Outbox(ctx context.Context, userID int, q *dto.MailboxQuery) ([]dto.MessageView, error) {
	list, err := s.repo.Message.ListOutbox(ctx, userID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list outbox", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toMessageViews(list), nil
}

func (s *messageService) MarkRead(ctx context.Context, id, userID int) (*dto.MessageView, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if m.IsRead {
		return toMessageView(m), nil
	}
	at := s.now()
	if err := s.repo.Message.MarkRead(ctx, id, at); err != nil {
		s.logger.Error("failed to mark message read", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	m.IsRead = true
	m.ReadAt = &at
	return toMessageView(m), nil
}

func (s *messageService) get(ctx context.Context, id int) (*model.Message, error) {
	m, err := s.repo.Message.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		s.logger.Error("failed to get message", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return m, nil
}

func toMessageViews(list []model.Message) []dto.MessageView {
	result := make([]dto.MessageView, 0, len(list))
	for i := range list {
		result = append(result, *toMessageView(&list[i]))
	}
	return result
}

func toMessageView(m *model.Message) *dto.MessageView {
	return &dto.MessageView{
		ID:              m.ID,
		SenderID:        m.SenderID,
		RecipientID:     m.RecipientID,
		Subject:         m.Subject,
		Content:         m.Content,
		IsRead:          m.IsRead,
		ParentMessageID: m.ParentMessageID,
		ReadAt:          m.ReadAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ════════════════════════ Notification ════════════════════════

// NotificationService per-user notifications
type NotificationService interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	List(ctx context.Context, userID int, q *dto.NotificationListQuery) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID int) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID int) (*dto.MarkAllReadResponse, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	_, err := s.repo.User.GetByID(ctx, req.UserID)
	if err := checkRef(err, "User", req.UserID); err != nil {
		return nil, err
	}

	n := &model.Notification{
		UserID:            req.UserID,
		Title:             req.Title,
		Message:           req.Message,
		NotificationType:  model.NotificationGeneral,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	}
	if req.NotificationType != "" {
		n.NotificationType = req.NotificationType
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("failed to create notification", zap.Int("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (s *notificationService) List(ctx context.Context, userID int, q *dto.NotificationListQuery) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListByUser(ctx, userID, q.UnreadOnly, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list notifications", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *toNotificationResponse(&list[i]))
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID int) (*dto.NotificationResponse, error) {
	n, err := s.repo.Notification.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		s.logger.Error("failed to get notification", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	if !n.IsRead {
		if err := s.repo.Notification.MarkRead(ctx, id); err != nil {
			s.logger.Error("failed to mark notification read", zap.Int("id", id), zap.Error(err))
			return nil, err
		}
		n.IsRead = true
	}
	return toNotificationResponse(n), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int) (*dto.MarkAllReadResponse, error) {
	n, err := s.repo.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("failed to mark notifications read", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: n}, nil
}

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:                n.ID,
		UserID:            n.UserID,
		Title:             n.Title,
		Message:           n.Message,
		NotificationType:  n.NotificationType,
		IsRead:            n.IsRead,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		CreatedAt:         n.CreatedAt,
	}
}
