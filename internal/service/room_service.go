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

// ── room errors ──

var (
	ErrRoomNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 23001, "Room not found")
	ErrRoomCodeTaken = pkgerrors.New(pkgerrors.KindConflict, 23002, "room code already exists")
	ErrRoomInUse     = pkgerrors.New(pkgerrors.KindValidation, 23003, "room is referenced by timetable slots")
)

// RoomService room CRUD
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id int) (*dto.RoomResponse, error)
	List(ctx context.Context, q *dto.PageQuery) ([]dto.RoomResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id int) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService creates a RoomService.
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	room := &model.Room{
		Code:         req.Code,
		Name:         req.Name,
		Building:     req.Building,
		Floor:        req.Floor,
		Capacity:     30,
		RoomType:     req.RoomType,
		HasProjector: req.HasProjector,
		HasComputers: req.HasComputers,
		IsAvailable:  true,
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("failed to create room", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *roomService) GetByID(ctx context.Context, id int) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("failed to get room", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) List(ctx context.Context, q *dto.PageQuery) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, toPage(*q))
	if err != nil {
		s.logger.Error("failed to list rooms", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toRoomResponse(&rooms[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *roomService) Update(ctx context.Context, id int, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("failed to get room", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	if req.Code != nil && *req.Code != room.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, room.ID); err != nil {
			return nil, err
		}
		room.Code = *req.Code
	}
	if req.Name != nil {
		room.Name = req.Name
	}
	if req.Building != nil {
		room.Building = req.Building
	}
	if req.Floor != nil {
		room.Floor = req.Floor
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.RoomType != nil {
		room.RoomType = req.RoomType
	}
	if req.HasProjector != nil {
		room.HasProjector = *req.HasProjector
	}
	if req.HasComputers != nil {
		room.HasComputers = *req.HasComputers
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("failed to update room", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *roomService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("failed to get room", zap.Int("id", id), zap.Error(err))
		return err
	}
	n, err := slotReferences(ctx, s.repo, repository.SlotFilter{RoomID: &id})
	if err != nil {
		s.logger.Error("failed to check room references", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrRoomInUse.Messagef("Room is referenced by %d timetable slots", n)
	}
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete room", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *roomService) ensureCodeFree(ctx context.Context, code string, selfID int) error {
	existing, err := s.repo.Room.GetByCode(ctx, code)
	if err == nil && existing.ID != selfID {
		return ErrRoomCodeTaken.Messagef("Room with code %s already exists", code)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check room code", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:           r.ID,
		Code:         r.Code,
		Name:         r.Name,
		Building:     r.Building,
		Floor:        r.Floor,
		Capacity:     r.Capacity,
		RoomType:     r.RoomType,
		HasProjector: r.HasProjector,
		HasComputers: r.HasComputers,
		IsAvailable:  r.IsAvailable,
		CreatedAt:    r.CreatedAt,
	}
}
