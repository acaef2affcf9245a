package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// DepartmentRepository department data access
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id int) (*model.Department, error)
	GetByCode(ctx context.Context, code string) (*model.Department, error)
	List(ctx context.Context, page Page) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id int) error
}

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo creates a DepartmentRepository.
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id int) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByCode(ctx context.Context, code string) (*model.Department, error) {
	var dept model.Department
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context, page Page) ([]model.Department, error) {
	var depts []model.Department
	err := page.apply(r.db.WithContext(ctx).Order("id ASC")).Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Department{}, id).Error
}

// ── specialties ──

// SpecialtyRepository specialty data access
type SpecialtyRepository interface {
	Create(ctx context.Context, s *model.Specialty) error
	GetByID(ctx context.Context, id int) (*model.Specialty, error)
	GetByCode(ctx context.Context, code string) (*model.Specialty, error)
	List(ctx context.Context, departmentID *int, page Page) ([]model.Specialty, error)
	Update(ctx context.Context, s *model.Specialty) error
	Delete(ctx context.Context, id int) error
}

type specialtyRepo struct {
	db *gorm.DB
}

// NewSpecialtyRepo creates a SpecialtyRepository.
func NewSpecialtyRepo(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepo{db: db}
}

func (r *specialtyRepo) Create(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *specialtyRepo) GetByID(ctx context.Context, id int) (*model.Specialty, error) {
	var s model.Specialty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepo) GetByCode(ctx context.Context, code string) (*model.Specialty, error) {
	var s model.Specialty
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepo) List(ctx context.Context, departmentID *int, page Page) ([]model.Specialty, error) {
	var list []model.Specialty
	db := r.db.WithContext(ctx)
	if departmentID != nil {
		db = db.Where("department_id = ?", *departmentID)
	}
	err := page.apply(db.Order("id ASC")).Find(&list).Error
	return list, err
}

func (r *specialtyRepo) Update(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *specialtyRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Specialty{}, id).Error
}
