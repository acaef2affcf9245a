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

// ── timetable slot errors ──

var (
	ErrSlotNotFound     = pkgerrors.New(pkgerrors.KindNotFound, 24001, "Timetable slot not found")
	ErrInvalidDay       = pkgerrors.New(pkgerrors.KindValidation, 24002, "day_of_week must be between 1 and 7")
	ErrInvalidTimeRange = pkgerrors.New(pkgerrors.KindValidation, 24003, "end_time must be after start_time")
	ErrInvalidTime      = pkgerrors.New(pkgerrors.KindValidation, 24004, "invalid time, expected HH:MM or HH:MM:SS")
	ErrInvalidSemester  = pkgerrors.New(pkgerrors.KindValidation, 24005, "semester must be 1 or 2")
)

// SlotService recurring weekly timetable
type SlotService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SlotResponse, error)
	List(ctx context.Context, q *dto.SlotListQuery) ([]dto.SlotResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id int) error
}

type slotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotService creates a SlotService.
func NewSlotService(repo *repository.Repository, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *slotService) Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	slot := &model.TimetableSlot{
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		GroupID:      req.GroupID,
		RoomID:       req.RoomID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		IsActive:     true,
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.validate(ctx, slot); err != nil {
		return nil, err
	}
	if err := s.repo.TimetableSlot.Create(ctx, slot); err != nil {
		s.logger.Error("failed to create timetable slot", zap.Int("room_id", slot.RoomID), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

// ────────────────────── Read ──────────────────────

func (s *slotService) GetByID(ctx context.Context, id int) (*dto.SlotResponse, error) {
	slot, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSlotResponse(slot), nil
}

func (s *slotService) List(ctx context.Context, q *dto.SlotListQuery) ([]dto.SlotResponse, error) {
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{
		RoomID:     q.RoomID,
		TeacherID:  q.TeacherID,
		GroupID:    q.GroupID,
		DayOfWeek:  q.DayOfWeek,
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		s.logger.Error("failed to list timetable slots", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *slotService) Update(ctx context.Context, id int, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	slot, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SubjectID != nil {
		slot.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		slot.TeacherID = *req.TeacherID
	}
	if req.GroupID != nil {
		slot.GroupID = *req.GroupID
	}
	if req.RoomID != nil {
		slot.RoomID = *req.RoomID
	}
	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.AcademicYear != nil {
		slot.AcademicYear = *req.AcademicYear
	}
	if req.Semester != nil {
		slot.Semester = *req.Semester
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.validate(ctx, slot); err != nil {
		return nil, err
	}
	if err := s.repo.TimetableSlot.Update(ctx, slot); err != nil {
		s.logger.Error("failed to update timetable slot", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

// ────────────────────── Delete ──────────────────────

func (s *slotService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.TimetableSlot.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete timetable slot", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *slotService) get(ctx context.Context, id int) (*model.TimetableSlot, error) {
	slot, err := s.repo.TimetableSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("failed to get timetable slot", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return slot, nil
}

// validate checks value ranges, normalizes times to HH:MM:SS and verifies
// every referenced row exists.
func (s *slotService) validate(ctx context.Context, slot *model.TimetableSlot) error {
	if slot.DayOfWeek < 1 || slot.DayOfWeek > 7 {
		return ErrInvalidDay
	}
	if slot.Semester != 1 && slot.Semester != 2 {
		return ErrInvalidSemester
	}
	start, err := model.ParseClock(slot.StartTime)
	if err != nil {
		return ErrInvalidTime.WithDetail("start_time %q", slot.StartTime)
	}
	end, err := model.ParseClock(slot.EndTime)
	if err != nil {
		return ErrInvalidTime.WithDetail("end_time %q", slot.EndTime)
	}
	if end <= start {
		return ErrInvalidTimeRange
	}
	slot.StartTime = model.FormatClock(start, model.ClockLayout)
	slot.EndTime = model.FormatClock(end, model.ClockLayout)

	_, err = s.repo.Subject.GetByID(ctx, slot.SubjectID)
	if err := checkRef(err, "Subject", slot.SubjectID); err != nil {
		return err
	}
	_, err = s.repo.Teacher.GetByID(ctx, slot.TeacherID)
	if err := checkRef(err, "Teacher", slot.TeacherID); err != nil {
		return err
	}
	_, err = s.repo.Group.GetByID(ctx, slot.GroupID)
	if err := checkRef(err, "Group", slot.GroupID); err != nil {
		return err
	}
	_, err = s.repo.Room.GetByID(ctx, slot.RoomID)
	return checkRef(err, "Room", slot.RoomID)
}

func toSlotResponse(slot *model.TimetableSlot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:           slot.ID,
		SubjectID:    slot.SubjectID,
		TeacherID:    slot.TeacherID,
		GroupID:      slot.GroupID,
		RoomID:       slot.RoomID,
		DayOfWeek:    slot.DayOfWeek,
		StartTime:    model.ShortClock(slot.StartTime),
		EndTime:      model.ShortClock(slot.EndTime),
		AcademicYear: slot.AcademicYear,
		Semester:     slot.Semester,
		IsActive:     slot.IsActive,
	}
}
