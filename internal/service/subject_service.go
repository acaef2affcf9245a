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

// ── subject errors ──

var (
	ErrSubjectNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 23101, "Subject not found")
	ErrSubjectCodeTaken = pkgerrors.New(pkgerrors.KindConflict, 23102, "subject code already exists")
)

// SubjectService subject catalogue
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SubjectResponse, error)
	List(ctx context.Context, q *dto.SubjectListQuery) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id int) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService creates a SubjectService.
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	_, err := s.repo.Level.GetByID(ctx, req.LevelID)
	if err := checkRef(err, "Level", req.LevelID); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, 0); err != nil {
		return nil, err
	}

	subj := &model.Subject{
		Name:         req.Name,
		Code:         req.Code,
		LevelID:      req.LevelID,
		Credits:      3,
		HoursPerWeek: 3,
		SubjectType:  model.SubjectTypeTheory,
		Description:  req.Description,
	}
	if req.Credits != nil {
		subj.Credits = *req.Credits
	}
	if req.HoursPerWeek != nil {
		subj.HoursPerWeek = *req.HoursPerWeek
	}
	if req.SubjectType != "" {
		subj.SubjectType = req.SubjectType
	}

	if err := s.repo.Subject.Create(ctx, subj); err != nil {
		s.logger.Error("failed to create subject", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subj), nil
}

func (s *subjectService) GetByID(ctx context.Context, id int) (*dto.SubjectResponse, error) {
	subj, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubjectResponse(subj), nil
}

func (s *subjectService) List(ctx context.Context, q *dto.SubjectListQuery) ([]dto.SubjectResponse, error) {
	list, err := s.repo.Subject.List(ctx, q.LevelID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list subjects", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(list))
	for i := range list {
		result = append(result, *toSubjectResponse(&list[i]))
	}
	return result, nil
}

func (s *subjectService) Update(ctx context.Context, id int, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subj, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.LevelID != nil {
		_, err := s.repo.Level.GetByID(ctx, *req.LevelID)
		if err := checkRef(err, "Level", *req.LevelID); err != nil {
			return nil, err
		}
		subj.LevelID = *req.LevelID
	}
	if req.Code != nil && *req.Code != subj.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, subj.ID); err != nil {
			return nil, err
		}
		subj.Code = *req.Code
	}
	if req.Name != nil {
		subj.Name = *req.Name
	}
	if req.Credits != nil {
		subj.Credits = *req.Credits
	}
	if req.HoursPerWeek != nil {
		subj.HoursPerWeek = *req.HoursPerWeek
	}
	if req.SubjectType != nil {
		subj.SubjectType = *req.SubjectType
	}
	if req.Description != nil {
		subj.Description = req.Description
	}
	if err := s.repo.Subject.Update(ctx, subj); err != nil {
		s.logger.Error("failed to update subject", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subj), nil
}

func (s *subjectService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete subject", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *subjectService) get(ctx context.Context, id int) (*model.Subject, error) {
	subj, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("failed to get subject", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return subj, nil
}

func (s *subjectService) ensureCodeFree(ctx context.Context, code string, selfID int) error {
	existing, err := s.repo.Subject.GetByCode(ctx, code)
	if err == nil && existing.ID != selfID {
		return ErrSubjectCodeTaken.Messagef("Subject with code %s already exists", code)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check subject code", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func toSubjectResponse(s *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		LevelID:      s.LevelID,
		Credits:      s.Credits,
		HoursPerWeek: s.HoursPerWeek,
		SubjectType:  s.SubjectType,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt,
	}
}
