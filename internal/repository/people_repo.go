package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// TeacherRepository teacher data access. Reads preload User and Department.
type TeacherRepository interface {
	Create(ctx context.Context, t *model.Teacher) error
	GetByID(ctx context.Context, id int) (*model.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.Teacher, error)
	List(ctx context.Context, page Page) ([]model.Teacher, error)
	// ListFirst returns the n lowest-id teachers with their users.
	ListFirst(ctx context.Context, n int) ([]model.Teacher, error)
	Update(ctx context.Context, t *model.Teacher) error
	Delete(ctx context.Context, id int) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates a TeacherRepository.
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	var t model.Teacher
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Teacher, error) {
	var t model.Teacher
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) List(ctx context.Context, page Page) ([]model.Teacher, error) {
	var list []model.Teacher
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Order("id ASC")
	err := page.apply(db).Find(&list).Error
	return list, err
}

func (r *teacherRepo) ListFirst(ctx context.Context, n int) ([]model.Teacher, error) {
	var list []model.Teacher
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("id ASC").
		Limit(n).
		Find(&list).Error
	return list, err
}

func (r *teacherRepo) Update(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Omit("User", "Department").Save(t).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Teacher{}, id).Error
}

// ── students ──

// StudentRepository student data access. Reads preload User and Specialty.
type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByStudentNumber(ctx context.Context, number string) (*model.Student, error)
	GetByUserID(ctx context.Context, userID int) (*model.Student, error)
	List(ctx context.Context, page Page) ([]model.Student, error)
	ListByDepartment(ctx context.Context, departmentID int) ([]model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates a StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, s *model.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var s model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) GetByStudentNumber(ctx context.Context, number string) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID int) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) List(ctx context.Context, page Page) ([]model.Student, error) {
	var list []model.Student
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Order("id ASC")
	err := page.apply(db).Find(&list).Error
	return list, err
}

func (r *studentRepo) ListByDepartment(ctx context.Context, departmentID int) ([]model.Student, error) {
	var list []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Joins("JOIN specialties ON specialties.id = students.specialty_id").
		Where("specialties.department_id = ?", departmentID).
		Order("students.id ASC").
		Find(&list).Error
	return list, err
}

func (r *studentRepo) Update(ctx context.Context, s *model.Student) error {
	return r.db.WithContext(ctx).Omit("User", "Group", "Specialty").Save(s).Error
}

func (r *studentRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Student{}, id).Error
}
