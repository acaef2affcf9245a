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
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
)

// ── teacher errors ──

var (
	ErrTeacherNotFound = pkgerrors.New(pkgerrors.KindNotFound, 22101, "Teacher not found")
	ErrEmployeeIDTaken = pkgerrors.New(pkgerrors.KindConflict, 22102, "employee id already exists")
	ErrTeacherInUse    = pkgerrors.New(pkgerrors.KindValidation, 22103, "teacher is referenced by timetable slots")
)

// TeacherService teaching staff
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDetailResponse, error)
	GetByID(ctx context.Context, id int) (*dto.TeacherDetailResponse, error)
	List(ctx context.Context, q *dto.PageQuery) ([]dto.TeacherDetailResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateTeacherRequest) (*dto.TeacherDetailResponse, error)
	Delete(ctx context.Context, id int) error
}

type teacherService struct {
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
}

// NewTeacherService creates a TeacherService.
func NewTeacherService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, hasher: hasher, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherDetailResponse, error) {
	hired, err := parseOptionalDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	var teacher *model.Teacher
	err = inTx(ctx, s.repo, func(r *repository.Repository) error {
		user, err := resolveAccount(ctx, r, s.hasher, req.UserID, identity{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			CIN:       req.CIN,
			Password:  req.Password,
		}, model.RoleTeacher)
		if err != nil {
			return err
		}

		dept, err := r.Department.GetByID(ctx, req.DepartmentID)
		if err := checkRef(err, "Department", req.DepartmentID); err != nil {
			return err
		}
		if err := ensureEmployeeIDFree(ctx, r, req.EmployeeID, 0); err != nil {
			return err
		}

		teacher = &model.Teacher{
			UserID:         user.ID,
			EmployeeID:     req.EmployeeID,
			DepartmentID:   req.DepartmentID,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			HireDate:       hired,
		}
		if err := r.Teacher.Create(ctx, teacher); err != nil {
			return err
		}
		teacher.User = user
		teacher.Department = dept
		return nil
	})
	if err != nil {
		if !isBusiness(err) {
			s.logger.Error("failed to create teacher", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		}
		return nil, err
	}

	resp := toTeacherDetail(teacher)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, id int) (*dto.TeacherDetailResponse, error) {
	teacher, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTeacherDetail(teacher)
	return &resp, nil
}

func (s *teacherService) List(ctx context.Context, q *dto.PageQuery) ([]dto.TeacherDetailResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx, toPage(*q))
	if err != nil {
		s.logger.Error("failed to list teachers", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeacherDetailResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, toTeacherDetail(&teachers[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, id int, req *dto.UpdateTeacherRequest) (*dto.TeacherDetailResponse, error) {
	teacher, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = inTx(ctx, s.repo, func(r *repository.Repository) error {
		if teacher.User != nil {
			changed, err := applyIdentity(ctx, r, teacher.User, req.FirstName, req.LastName, req.Email)
			if err != nil {
				return err
			}
			if changed {
				if err := r.User.Update(ctx, teacher.User); err != nil {
					return err
				}
			}
		}

		if req.EmployeeID != nil && *req.EmployeeID != teacher.EmployeeID {
			if err := ensureEmployeeIDFree(ctx, r, *req.EmployeeID, teacher.ID); err != nil {
				return err
			}
			teacher.EmployeeID = *req.EmployeeID
		}
		if req.DepartmentID != nil {
			dept, err := r.Department.GetByID(ctx, *req.DepartmentID)
			if err := checkRef(err, "Department", *req.DepartmentID); err != nil {
				return err
			}
			teacher.DepartmentID = dept.ID
			teacher.Department = dept
		}
		if req.Specialization != nil {
			teacher.Specialization = req.Specialization
		}
		if req.Phone != nil {
			teacher.Phone = req.Phone
		}
		if req.HireDate != nil {
			d, err := parseOptionalDate(*req.HireDate)
			if err != nil {
				return err
			}
			teacher.HireDate = d
		}
		return r.Teacher.Update(ctx, teacher)
	})
	if err != nil {
		if !isBusiness(err) {
			s.logger.Error("failed to update teacher", zap.Int("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toTeacherDetail(teacher)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the teacher profile. Slots keep the teacher by RESTRICT, so
// a teacher still on the timetable is refused with a 400 naming the count
// instead of failing on the foreign key.
func (s *teacherService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	n, err := slotReferences(ctx, s.repo, repository.SlotFilter{TeacherID: &id})
	if err != nil {
		s.logger.Error("failed to check teacher references", zap.Int("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrTeacherInUse.Messagef("Teacher is referenced by %d timetable slots", n)
	}
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete teacher", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *teacherService) get(ctx context.Context, id int) (*model.Teacher, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("failed to get teacher", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

func ensureEmployeeIDFree(ctx context.Context, r *repository.Repository, employeeID string, selfID int) error {
	existing, err := r.Teacher.GetByEmployeeID(ctx, employeeID)
	if err == nil && existing.ID != selfID {
		return ErrEmployeeIDTaken.Messagef("Employee ID %s already exists", employeeID)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func toTeacherDetail(t *model.Teacher) dto.TeacherDetailResponse {
	resp := dto.TeacherDetailResponse{
		TeacherResponse: dto.TeacherResponse{
			ID:             t.ID,
			UserID:         t.UserID,
			EmployeeID:     t.EmployeeID,
			DepartmentID:   t.DepartmentID,
			Specialization: t.Specialization,
			Phone:          t.Phone,
			HireDate:       model.FormatOptionalDate(t.HireDate),
			CreatedAt:      t.CreatedAt,
		},
	}
	if t.User != nil {
		resp.FirstName = t.User.FirstName
		resp.LastName = t.User.LastName
		resp.Email = t.User.Email
	}
	if t.Department != nil {
		resp.DepartmentName = t.Department.Name
		resp.DepartmentCode = t.Department.Code
	}
	return resp
}
