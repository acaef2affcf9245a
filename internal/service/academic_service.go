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

// ── specialty / level / group errors ──

var (
	ErrSpecialtyNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 21101, "Specialty not found")
	ErrSpecialtyCodeTaken = pkgerrors.New(pkgerrors.KindConflict, 21102, "specialty code already exists")
	ErrLevelNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 21201, "Level not found")
	ErrGroupNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 21301, "Group not found")
)

// ════════════════════════ Specialty ════════════════════════

// SpecialtyService specialty management
type SpecialtyService interface {
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
	List(ctx context.Context, q *dto.SpecialtyListQuery) ([]dto.SpecialtyResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id int) error
}

type specialtyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpecialtyService creates a SpecialtyService.
func NewSpecialtyService(repo *repository.Repository, logger *zap.Logger) SpecialtyService {
	return &specialtyService{repo: repo, logger: logger}
}

func (s *specialtyService) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	_, err := s.repo.Department.GetByID(ctx, req.DepartmentID)
	if err := checkRef(err, "Department", req.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	sp := &model.Specialty{
		Name:         req.Name,
		Code:         req.Code,
		DepartmentID: req.DepartmentID,
		Description:  req.Description,
	}
	if err := s.repo.Specialty.Create(ctx, sp); err != nil {
		s.logger.Error("failed to create specialty", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toSpecialtyResponse(sp), nil
}

func (s *specialtyService) GetByID(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSpecialtyResponse(sp), nil
}

func (s *specialtyService) List(ctx context.Context, q *dto.SpecialtyListQuery) ([]dto.SpecialtyResponse, error) {
	list, err := s.repo.Specialty.List(ctx, q.DepartmentID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list specialties", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SpecialtyResponse, 0, len(list))
	for i := range list {
		result = append(result, *toSpecialtyResponse(&list[i]))
	}
	return result, nil
}

func (s *specialtyService) Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	sp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DepartmentID != nil {
		_, err := s.repo.Department.GetByID(ctx, *req.DepartmentID)
		if err := checkRef(err, "Department", *req.DepartmentID); err != nil {
			return nil, err
		}
		sp.DepartmentID = *req.DepartmentID
	}
	if req.Code != nil && *req.Code != sp.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, sp.ID); err != nil {
			return nil, err
		}
		sp.Code = *req.Code
	}
	if req.Name != nil {
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = req.Description
	}
	if err := s.repo.Specialty.Update(ctx, sp); err != nil {
		s.logger.Error("failed to update specialty", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toSpecialtyResponse(sp), nil
}

func (s *specialtyService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Specialty.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete specialty", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *specialtyService) get(ctx context.Context, id int) (*model.Specialty, error) {
	sp, err := s.repo.Specialty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpecialtyNotFound
		}
		s.logger.Error("failed to get specialty", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return sp, nil
}

func (s *specialtyService) ensureCodeFree(ctx context.Context, code string, selfID int) error {
	existing, err := s.repo.Specialty.GetByCode(ctx, code)
	if err == nil && existing.ID != selfID {
		return ErrSpecialtyCodeTaken.Messagef("Specialty with code %s already exists", code)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check specialty code", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func toSpecialtyResponse(sp *model.Specialty) *dto.SpecialtyResponse {
	return &dto.SpecialtyResponse{
		ID:           sp.ID,
		Name:         sp.Name,
		Code:         sp.Code,
		DepartmentID: sp.DepartmentID,
		Description:  sp.Description,
		CreatedAt:    sp.CreatedAt,
	}
}

// ════════════════════════ Level ════════════════════════

// LevelService study years of a specialty
type LevelService interface {
	Create(ctx context.Context, req *dto.CreateLevelRequest) (*dto.LevelResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LevelResponse, error)
	List(ctx context.Context, q *dto.LevelListQuery) ([]dto.LevelResponse, error)
	Delete(ctx context.Context, id int) error
}

type levelService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLevelService creates a LevelService.
func NewLevelService(repo *repository.Repository, logger *zap.Logger) LevelService {
	return &levelService{repo: repo, logger: logger}
}

func (s *levelService) Create(ctx context.Context, req *dto.CreateLevelRequest) (*dto.LevelResponse, error) {
	_, err := s.repo.Specialty.GetByID(ctx, req.SpecialtyID)
	if err := checkRef(err, "Specialty", req.SpecialtyID); err != nil {
		return nil, err
	}

	lvl := &model.Level{
		Name:        req.Name,
		Code:        req.Code,
		SpecialtyID: req.SpecialtyID,
		YearNumber:  req.YearNumber,
	}
	if err := s.repo.Level.Create(ctx, lvl); err != nil {
		s.logger.Error("failed to create level", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toLevelResponse(lvl), nil
}

func (s *levelService) GetByID(ctx context.Context, id int) (*dto.LevelResponse, error) {
	lvl, err := s.repo.Level.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		s.logger.Error("failed to get level", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toLevelResponse(lvl), nil
}

func (s *levelService) List(ctx context.Context, q *dto.LevelListQuery) ([]dto.LevelResponse, error) {
	list, err := s.repo.Level.List(ctx, q.SpecialtyID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list levels", zap.Error(err))
		return nil, err
	}
	result := make([]dto.LevelResponse, 0, len(list))
	for i := range list {
		result = append(result, *toLevelResponse(&list[i]))
	}
	return result, nil
}

func (s *levelService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Level.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLevelNotFound
		}
		s.logger.Error("failed to get level", zap.Int("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Level.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete level", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toLevelResponse(l *model.Level) *dto.LevelResponse {
	return &dto.LevelResponse{
		ID:          l.ID,
		Name:        l.Name,
		Code:        l.Code,
		SpecialtyID: l.SpecialtyID,
		YearNumber:  l.YearNumber,
		CreatedAt:   l.CreatedAt,
	}
}

// ════════════════════════ Group ════════════════════════

// GroupService student groups
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetByID(ctx context.Context, id int) (*dto.GroupResponse, error)
	List(ctx context.Context, q *dto.GroupListQuery) ([]dto.GroupResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, id int) error
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService creates a GroupService.
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	_, err := s.repo.Level.GetByID(ctx, req.LevelID)
	if err := checkRef(err, "Level", req.LevelID); err != nil {
		return nil, err
	}

	g := &model.Group{
		Name:        req.Name,
		Code:        req.Code,
		LevelID:     req.LevelID,
		MaxStudents: 30,
	}
	if req.MaxStudents != nil {
		g.MaxStudents = *req.MaxStudents
	}
	if err := s.repo.Group.Create(ctx, g); err != nil {
		s.logger.Error("failed to create group", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toGroupResponse(g), nil
}

func (s *groupService) GetByID(ctx context.Context, id int) (*dto.GroupResponse, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGroupResponse(g), nil
}

func (s *groupService) List(ctx context.Context, q *dto.GroupListQuery) ([]dto.GroupResponse, error) {
	list, err := s.repo.Group.List(ctx, q.LevelID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list groups", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GroupResponse, 0, len(list))
	for i := range list {
		result = append(result, *toGroupResponse(&list[i]))
	}
	return result, nil
}

func (s *groupService) Update(ctx context.Context, id int, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.LevelID != nil {
		_, err := s.repo.Level.GetByID(ctx, *req.LevelID)
		if err := checkRef(err, "Level", *req.LevelID); err != nil {
			return nil, err
		}
		g.LevelID = *req.LevelID
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Code != nil {
		g.Code = *req.Code
	}
	if req.MaxStudents != nil {
		g.MaxStudents = *req.MaxStudents
	}
	if err := s.repo.Group.Update(ctx, g); err != nil {
		s.logger.Error("failed to update group", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toGroupResponse(g), nil
}

func (s *groupService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Group.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete group", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *groupService) get(ctx context.Context, id int) (*model.Group, error) {
	g, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("failed to get group", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return g, nil
}

func toGroupResponse(g *model.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Code:        g.Code,
		LevelID:     g.LevelID,
		MaxStudents: g.MaxStudents,
		CreatedAt:   g.CreatedAt,
	}
}
