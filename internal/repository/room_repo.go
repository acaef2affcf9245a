package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// RoomRepository room data access
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	// CreateIfAbsent inserts rooms whose code is not taken yet.
	CreateIfAbsent(ctx context.Context, rooms []model.Room) error
	GetByID(ctx context.Context, id int) (*model.Room, error)
	GetByCode(ctx context.Context, code string) (*model.Room, error)
	List(ctx context.Context, page Page) ([]model.Room, error)
	// ListAll returns every room ordered by id.
	ListAll(ctx context.Context) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo creates a RoomRepository.
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) CreateIfAbsent(ctx context.Context, rooms []model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rooms).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id int) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, page Page) ([]model.Room, error) {
	var rooms []model.Room
	err := page.apply(r.db.WithContext(ctx).Order("id ASC")).Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, id).Error
}

// ── subjects ──

// SubjectRepository subject data access
type SubjectRepository interface {
	Create(ctx context.Context, s *model.Subject) error
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	List(ctx context.Context, levelID *int, page Page) ([]model.Subject, error)
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id int) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates a SubjectRepository.
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	var s model.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	var s model.Subject
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) List(ctx context.Context, levelID *int, page Page) ([]model.Subject, error) {
	var list []model.Subject
	db := r.db.WithContext(ctx)
	if levelID != nil {
		db = db.Where("level_id = ?", *levelID)
	}
	err := page.apply(db.Order("id ASC")).Find(&list).Error
	return list, err
}

func (r *subjectRepo) Update(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Subject{}, id).Error
}
