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

// ── department errors ──

var (
	ErrDepartmentNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 21001, "Department not found")
	ErrDepartmentHeadGone  = pkgerrors.New(pkgerrors.KindValidation, 21002, "department head does not exist")
	ErrDepartmentCodeTaken = pkgerrors.New(pkgerrors.KindConflict, 21003, "department code already exists")
)

// DepartmentService department management
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error)
	List(ctx context.Context, q *dto.PageQuery) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id int) error
	// ListStudents students enrolled in any specialty of the department.
	ListStudents(ctx context.Context, id int) ([]dto.StudentDetailResponse, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService creates a DepartmentService.
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if req.HeadID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.HeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentHeadGone.Messagef(
					"User with ID %d does not exist. Please leave Department Head ID empty or choose a valid user ID.", *req.HeadID)
			}
			s.logger.Error("failed to check department head", zap.Int("head_id", *req.HeadID), zap.Error(err))
			return nil, err
		}
	}
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	dept := &model.Department{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		HeadID:      req.HeadID,
	}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("failed to create department", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// ────────────────────── Read ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id int) (*dto.DepartmentResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) List(ctx context.Context, q *dto.PageQuery) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx, toPage(*q))
	if err != nil {
		s.logger.Error("failed to list departments", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *toDepartmentResponse(&depts[i]))
	}
	return result, nil
}

func (s *departmentService) ListStudents(ctx context.Context, id int) ([]dto.StudentDetailResponse, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	students, err := s.repo.Student.ListByDepartment(ctx, id)
	if err != nil {
		s.logger.Error("failed to list department students", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	result := make([]dto.StudentDetailResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentDetail(&students[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id int, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HeadID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.HeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentHeadGone.Messagef("User with ID %d does not exist.", *req.HeadID)
			}
			s.logger.Error("failed to check department head", zap.Int("head_id", *req.HeadID), zap.Error(err))
			return nil, err
		}
		dept.HeadID = req.HeadID
	}
	if req.Code != nil && *req.Code != dept.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, dept.ID); err != nil {
			return nil, err
		}
		dept.Code = *req.Code
	}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = req.Description
	}

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("failed to update department", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete department", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *departmentService) get(ctx context.Context, id int) (*model.Department, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("failed to get department", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) ensureCodeFree(ctx context.Context, code string, selfID int) error {
	existing, err := s.repo.Department.GetByCode(ctx, code)
	if err == nil && existing.ID != selfID {
		return ErrDepartmentCodeTaken.Messagef("Department with code %s already exists", code)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check department code", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func toDepartmentResponse(d *model.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		HeadID:      d.HeadID,
		CreatedAt:   d.CreatedAt,
	}
}
