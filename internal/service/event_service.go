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

var (
	ErrEventNotFound     = pkgerrors.New(pkgerrors.KindNotFound, 25201, "Event not found")
	ErrInvalidEventRange = pkgerrors.New(pkgerrors.KindValidation, 25202, "end_date must not be before start_date")
)

// EventService academic calendar
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID int) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id int) (*dto.EventResponse, error)
	List(ctx context.Context, q *dto.EventListQuery) ([]dto.EventResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id int) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService creates an EventService.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID int) (*dto.EventResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidEventRange
	}

	e := &model.Event{
		Title:            req.Title,
		Description:      req.Description,
		EventType:        req.EventType,
		StartDate:        start,
		EndDate:          end,
		AffectsTimetable: req.AffectsTimetable,
	}
	if callerID > 0 {
		e.CreatedBy = &callerID
	}
	if err := s.repo.Event.Create(ctx, e); err != nil {
		s.logger.Error("failed to create event", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}
	return toEventResponse(e), nil
}

func (s *eventService) GetByID(ctx context.Context, id int) (*dto.EventResponse, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEventResponse(e), nil
}

func (s *eventService) List(ctx context.Context, q *dto.EventListQuery) ([]dto.EventResponse, error) {
	from, err := parseOptionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(q.To)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Event.List(ctx, from, to, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		result = append(result, *toEventResponse(&list[i]))
	}
	return result, nil
}

func (s *eventService) Update(ctx context.Context, id int, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	start, end := e.StartDate, e.EndDate
	if req.StartDate != nil {
		if start, err = parseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if end, err = parseDate(*req.EndDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, ErrInvalidEventRange
	}
	e.StartDate, e.EndDate = start, end
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.AffectsTimetable != nil {
		e.AffectsTimetable = *req.AffectsTimetable
	}
	if err := s.repo.Event.Update(ctx, e); err != nil {
		s.logger.Error("failed to update event", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toEventResponse(e), nil
}

func (s *eventService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete event", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *eventService) get(ctx context.Context, id int) (*model.Event, error) {
	e, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("failed to get event", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		EventType:        e.EventType,
		StartDate:        e.StartDate.Format(model.DateLayout),
		EndDate:          e.EndDate.Format(model.DateLayout),
		AffectsTimetable: e.AffectsTimetable,
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt,
	}
}
