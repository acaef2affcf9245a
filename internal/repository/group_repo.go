package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// LevelRepository level data access
type LevelRepository interface {
	Create(ctx context.Context, l *model.Level) error
	GetByID(ctx context.Context, id int) (*model.Level, error)
	List(ctx context.Context, specialtyID *int, page Page) ([]model.Level, error)
	Delete(ctx context.Context, id int) error
}

type levelRepo struct {
	db *gorm.DB
}

// NewLevelRepo creates a LevelRepository.
func NewLevelRepo(db *gorm.DB) LevelRepository {
	return &levelRepo{db: db}
}

func (r *levelRepo) Create(ctx context.Context, l *model.Level) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *levelRepo) GetByID(ctx context.Context, id int) (*model.Level, error) {
	var l model.Level
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *levelRepo) List(ctx context.Context, specialtyID *int, page Page) ([]model.Level, error) {
	var list []model.Level
	db := r.db.WithContext(ctx)
	if specialtyID != nil {
		db = db.Where("specialty_id = ?", *specialtyID)
	}
	err := page.apply(db.Order("specialty_id ASC, year_number ASC, id ASC")).Find(&list).Error
	return list, err
}

func (r *levelRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Level{}, id).Error
}

// ── groups ──

// GroupRepository group data access
type GroupRepository interface {
	Create(ctx context.Context, g *model.Group) error
	GetByID(ctx context.Context, id int) (*model.Group, error)
	List(ctx context.Context, levelID *int, page Page) ([]model.Group, error)
	Update(ctx context.Context, g *model.Group) error
	Delete(ctx context.Context, id int) error
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates a GroupRepository.
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, g *model.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id int) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) List(ctx context.Context, levelID *int, page Page) ([]model.Group, error) {
	var list []model.Group
	db := r.db.WithContext(ctx)
	if levelID != nil {
		db = db.Where("level_id = ?", *levelID)
	}
	err := page.apply(db.Order("id ASC")).Find(&list).Error
	return list, err
}

func (r *groupRepo) Update(ctx context.Context, g *model.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *groupRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}
