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

// ── student errors ──

var (
	ErrStudentNotFound    = pkgerrors.New(pkgerrors.KindNotFound, 22001, "Student not found")
	ErrStudentNumberTaken = pkgerrors.New(pkgerrors.KindConflict, 22002, "student number already exists")
)

// StudentService student enrollment
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDetailResponse, error)
	GetByID(ctx context.Context, id int) (*dto.StudentDetailResponse, error)
	List(ctx context.Context, q *dto.PageQuery) ([]dto.StudentDetailResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateStudentRequest) (*dto.StudentDetailResponse, error)
	Delete(ctx context.Context, id int) error
}

type studentService struct {
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, hasher: hasher, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentDetailResponse, error) {
	enrolled, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	born, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	var student *model.Student
	err = inTx(ctx, s.repo, func(r *repository.Repository) error {
		user, err := resolveAccount(ctx, r, s.hasher, req.UserID, identity{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			CIN:       req.CIN,
			Password:  req.Password,
		}, model.RoleStudent)
		if err != nil {
			return err
		}

		_, err = r.Group.GetByID(ctx, req.GroupID)
		if err := checkRef(err, "Group", req.GroupID); err != nil {
			return err
		}
		specialty, err := r.Specialty.GetByID(ctx, req.SpecialtyID)
		if err := checkRef(err, "Specialty", req.SpecialtyID); err != nil {
			return err
		}
		if err := ensureStudentNumberFree(ctx, r, req.StudentNumber, 0); err != nil {
			return err
		}

		student = &model.Student{
			UserID:         user.ID,
			StudentNumber:  req.StudentNumber,
			GroupID:        req.GroupID,
			SpecialtyID:    req.SpecialtyID,
			EnrollmentDate: enrolled,
			DateOfBirth:    born,
			Phone:          req.Phone,
			Address:        req.Address,
		}
		if err := r.Student.Create(ctx, student); err != nil {
			return err
		}
		student.User = user
		student.Specialty = specialty
		return nil
	})
	if err != nil {
		if !isBusiness(err) {
			s.logger.Error("failed to create student", zap.String("student_number", req.StudentNumber), zap.Error(err))
		}
		return nil, err
	}

	resp := toStudentDetail(student)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id int) (*dto.StudentDetailResponse, error) {
	student, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentDetail(student)
	return &resp, nil
}

func (s *studentService) List(ctx context.Context, q *dto.PageQuery) ([]dto.StudentDetailResponse, error) {
	students, err := s.repo.Student.List(ctx, toPage(*q))
	if err != nil {
		s.logger.Error("failed to list students", zap.Error(err))
		return nil, err
	}
	result := make([]dto.StudentDetailResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentDetail(&students[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id int, req *dto.UpdateStudentRequest) (*dto.StudentDetailResponse, error) {
	student, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = inTx(ctx, s.repo, func(r *repository.Repository) error {
		if student.User != nil {
			changed, err := applyIdentity(ctx, r, student.User, req.FirstName, req.LastName, req.Email)
			if err != nil {
				return err
			}
			if changed {
				if err := r.User.Update(ctx, student.User); err != nil {
					return err
				}
			}
		}

		if req.StudentNumber != nil && *req.StudentNumber != student.StudentNumber {
			if err := ensureStudentNumberFree(ctx, r, *req.StudentNumber, student.ID); err != nil {
				return err
			}
			student.StudentNumber = *req.StudentNumber
		}
		if req.GroupID != nil {
			_, err := r.Group.GetByID(ctx, *req.GroupID)
			if err := checkRef(err, "Group", *req.GroupID); err != nil {
				return err
			}
			student.GroupID = *req.GroupID
		}
		if req.SpecialtyID != nil {
			sp, err := r.Specialty.GetByID(ctx, *req.SpecialtyID)
			if err := checkRef(err, "Specialty", *req.SpecialtyID); err != nil {
				return err
			}
			student.SpecialtyID = sp.ID
			student.Specialty = sp
		}
		if req.EnrollmentDate != nil {
			d, err := parseDate(*req.EnrollmentDate)
			if err != nil {
				return err
			}
			student.EnrollmentDate = d
		}
		if req.DateOfBirth != nil {
			d, err := parseOptionalDate(*req.DateOfBirth)
			if err != nil {
				return err
			}
			student.DateOfBirth = d
		}
		if req.Phone != nil {
			student.Phone = req.Phone
		}
		if req.Address != nil {
			student.Address = req.Address
		}
		return r.Student.Update(ctx, student)
	})
	if err != nil {
		if !isBusiness(err) {
			s.logger.Error("failed to update student", zap.Int("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toStudentDetail(student)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id int) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete student", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *studentService) get(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("failed to get student", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func ensureStudentNumberFree(ctx context.Context, r *repository.Repository, number string, selfID int) error {
	existing, err := r.Student.GetByStudentNumber(ctx, number)
	if err == nil && existing.ID != selfID {
		return ErrStudentNumberTaken.Messagef("Student number %s already exists", number)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func toStudentDetail(st *model.Student) dto.StudentDetailResponse {
	resp := dto.StudentDetailResponse{
		StudentResponse: dto.StudentResponse{
			ID:             st.ID,
			UserID:         st.UserID,
			StudentNumber:  st.StudentNumber,
			GroupID:        st.GroupID,
			SpecialtyID:    st.SpecialtyID,
			EnrollmentDate: st.EnrollmentDate.Format(model.DateLayout),
			DateOfBirth:    model.FormatOptionalDate(st.DateOfBirth),
			Phone:          st.Phone,
			Address:        st.Address,
			CreatedAt:      st.CreatedAt,
		},
	}
	if st.User != nil {
		resp.FirstName = st.User.FirstName
		resp.LastName = st.User.LastName
		resp.Email = st.User.Email
	}
	if st.Specialty != nil {
		resp.SpecialtyName = st.Specialty.Name
		resp.SpecialtyCode = st.Specialty.Code
	}
	return resp
}
