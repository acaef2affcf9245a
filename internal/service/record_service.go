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

// ── academic record errors ──

var (
	ErrAbsenceNotFound = pkgerrors.New(pkgerrors.KindNotFound, 25001, "Absence not found")
	ErrAbsenceExists   = pkgerrors.New(pkgerrors.KindConflict, 25002, "absence already recorded for this session")
	ErrGradeNotFound   = pkgerrors.New(pkgerrors.KindNotFound, 25101, "Grade not found")
	ErrScoreOutOfRange = pkgerrors.New(pkgerrors.KindValidation, 25102, "score must be between 0 and max_score")
	ErrInvalidMaxScore = pkgerrors.New(pkgerrors.KindValidation, 25103, "max_score must be between 0 and 20")
)

// ════════════════════════ Absence ════════════════════════

// AbsenceService attendance records
type AbsenceService interface {
	Create(ctx context.Context, req *dto.CreateAbsenceRequest, callerID int) (*dto.AbsenceResponse, error)
	GetByID(ctx context.Context, id int) (*dto.AbsenceResponse, error)
	List(ctx context.Context, q *dto.AbsenceListQuery) ([]dto.AbsenceResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAbsenceRequest) (*dto.AbsenceResponse, error)
	Delete(ctx context.Context, id int) error
}

type absenceService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewAbsenceService creates an AbsenceService.
func NewAbsenceService(repo *repository.Repository, now Clock, logger *zap.Logger) AbsenceService {
	return &absenceService{repo: repo, now: now, logger: logger}
}

func (s *absenceService) Create(ctx context.Context, req *dto.CreateAbsenceRequest, callerID int) (*dto.AbsenceResponse, error) {
	_, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err := checkRef(err, "Student", req.StudentID); err != nil {
		return nil, err
	}
	_, err = s.repo.Session.GetByID(ctx, req.SessionID)
	if err := checkRef(err, "Session", req.SessionID); err != nil {
		return nil, err
	}

	markedBy := req.MarkedBy
	if markedBy == nil && callerID > 0 {
		markedBy = &callerID
	}
	if markedBy != nil {
		_, err := s.repo.User.GetByID(ctx, *markedBy)
		if err := checkRef(err, "User", *markedBy); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.Absence.GetByStudentSession(ctx, req.StudentID, req.SessionID); err == nil {
		return nil, ErrAbsenceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check absence", zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}

	a := &model.Absence{
		StudentID:          req.StudentID,
		SessionID:          req.SessionID,
		AbsenceType:        model.AbsenceUnjustified,
		MarkedAt:           s.now(),
		MarkedBy:           markedBy,
		Reason:             req.Reason,
		SupportingDocument: req.SupportingDocument,
	}
	if req.AbsenceType != "" {
		a.AbsenceType = req.AbsenceType
	}
	if err := s.repo.Absence.Create(ctx, a); err != nil {
		s.logger.Error("failed to create absence", zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	return toAbsenceResponse(a), nil
}

func (s *absenceService) GetByID(ctx context.Context, id int) (*dto.AbsenceResponse, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAbsenceResponse(a), nil
}

func (s *absenceService) List(ctx context.Context, q *dto.AbsenceListQuery) ([]dto.AbsenceResponse, error) {
	list, err := s.repo.Absence.List(ctx, q.StudentID, q.SessionID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list absences", zap.Error(err))
		return nil, err
	}
	result := make([]dto.AbsenceResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAbsenceResponse(&list[i]))
	}
	return result, nil
}

func (s *absenceService) Update(ctx context.Context, id int, req *dto.UpdateAbsenceRequest) (*dto.AbsenceResponse, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.AbsenceType != nil {
		a.AbsenceType = *req.AbsenceType
	}
	if req.Reason != nil {
		a.Reason = req.Reason
	}
	if req.SupportingDocument != nil {
		a.SupportingDocument = req.SupportingDocument
	}
	if err := s.repo.Absence.Update(ctx, a); err != nil {
		s.logger.Error("failed to update absence", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toAbsenceResponse(a), nil
}

func (s *absenceService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Absence.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete absence", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *absenceService) get(ctx context.Context, id int) (*model.Absence, error) {
	a, err := s.repo.Absence.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsenceNotFound
		}
		s.logger.Error("failed to get absence", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func toAbsenceResponse(a *model.Absence) *dto.AbsenceResponse {
	return &dto.AbsenceResponse{
		ID:                 a.ID,
		StudentID:          a.StudentID,
		SessionID:          a.SessionID,
		AbsenceType:        a.AbsenceType,
		MarkedAt:           a.MarkedAt,
		MarkedBy:           a.MarkedBy,
		Reason:             a.Reason,
		SupportingDocument: a.SupportingDocument,
	}
}

// ════════════════════════ Grade ════════════════════════

// GradeService exam results
type GradeService interface {
	Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error)
	GetByID(ctx context.Context, id int) (*dto.GradeResponse, error)
	List(ctx context.Context, q *dto.GradeListQuery) ([]dto.GradeResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error)
	Delete(ctx context.Context, id int) error
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradeService creates a GradeService.
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger}
}

func (s *gradeService) Create(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	maxScore := model.MaxScore
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}
	if err := checkScore(*req.Score, maxScore); err != nil {
		return nil, err
	}
	examDate, err := parseOptionalDate(req.ExamDate)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.Student.GetByID(ctx, req.StudentID)
	if err := checkRef(err, "Student", req.StudentID); err != nil {
		return nil, err
	}
	_, err = s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err := checkRef(err, "Subject", req.SubjectID); err != nil {
		return nil, err
	}

	g := &model.Grade{
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		ExamType:     req.ExamType,
		Score:        *req.Score,
		MaxScore:     maxScore,
		ExamDate:     examDate,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
	}
	if err := s.repo.Grade.Create(ctx, g); err != nil {
		s.logger.Error("failed to create grade", zap.Int("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	return toGradeResponse(g), nil
}

func (s *gradeService) GetByID(ctx context.Context, id int) (*dto.GradeResponse, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGradeResponse(g), nil
}

func (s *gradeService) List(ctx context.Context, q *dto.GradeListQuery) ([]dto.GradeResponse, error) {
	list, err := s.repo.Grade.List(ctx, q.StudentID, q.SubjectID, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list grades", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GradeResponse, 0, len(list))
	for i := range list {
		result = append(result, *toGradeResponse(&list[i]))
	}
	return result, nil
}

func (s *gradeService) Update(ctx context.Context, id int, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	g, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Score != nil {
		if err := checkScore(*req.Score, g.MaxScore); err != nil {
			return nil, err
		}
		g.Score = *req.Score
	}
	if req.ExamType != nil {
		g.ExamType = *req.ExamType
	}
	if req.ExamDate != nil {
		d, err := parseOptionalDate(*req.ExamDate)
		if err != nil {
			return nil, err
		}
		g.ExamDate = d
	}
	if err := s.repo.Grade.Update(ctx, g); err != nil {
		s.logger.Error("failed to update grade", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toGradeResponse(g), nil
}

func (s *gradeService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Grade.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete grade", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *gradeService) get(ctx context.Context, id int) (*model.Grade, error) {
	g, err := s.repo.Grade.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("failed to get grade", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return g, nil
}

func checkScore(score, maxScore float64) error {
	if maxScore <= 0 || maxScore > model.MaxScore {
		return ErrInvalidMaxScore
	}
	if score < 0 || score > maxScore {
		return ErrScoreOutOfRange.WithDetail("%.2f / %.2f", score, maxScore)
	}
	return nil
}

func toGradeResponse(g *model.Grade) *dto.GradeResponse {
	return &dto.GradeResponse{
		ID:           g.ID,
		StudentID:    g.StudentID,
		SubjectID:    g.SubjectID,
		ExamType:     g.ExamType,
		Score:        g.Score,
		MaxScore:     g.MaxScore,
		ExamDate:     model.FormatOptionalDate(g.ExamDate),
		AcademicYear: g.AcademicYear,
		Semester:     g.Semester,
	}
}
