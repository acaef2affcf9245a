package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// AbsenceRepository absence data access
type AbsenceRepository interface {
	Create(ctx context.Context, a *model.Absence) error
	GetByID(ctx context.Context, id int) (*model.Absence, error)
	GetByStudentSession(ctx context.Context, studentID, sessionID int) (*model.Absence, error)
	List(ctx context.Context, studentID, sessionID *int, page Page) ([]model.Absence, error)
	Update(ctx context.Context, a *model.Absence) error
	Delete(ctx context.Context, id int) error
}

type absenceRepo struct {
	db *gorm.DB
}

// NewAbsenceRepo creates an AbsenceRepository.
func NewAbsenceRepo(db *gorm.DB) AbsenceRepository {
	return &absenceRepo{db: db}
}

func (r *absenceRepo) Create(ctx context.Context, a *model.Absence) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *absenceRepo) GetByID(ctx context.Context, id int) (*model.Absence, error) {
	var a model.Absence
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *absenceRepo) GetByStudentSession(ctx context.Context, studentID, sessionID int) (*model.Absence, error) {
	var a model.Absence
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *absenceRepo) List(ctx context.Context, studentID, sessionID *int, page Page) ([]model.Absence, error) {
	var list []model.Absence
	db := r.db.WithContext(ctx)
	if studentID != nil {
		db = db.Where("student_id = ?", *studentID)
	}
	if sessionID != nil {
		db = db.Where("session_id = ?", *sessionID)
	}
	err := page.apply(db.Order("marked_at DESC, id DESC")).Find(&list).Error
	return list, err
}

func (r *absenceRepo) Update(ctx context.Context, a *model.Absence) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *absenceRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Absence{}, id).Error
}

// ── grades ──

// GradeRepository grade data access
type GradeRepository interface {
	Create(ctx context.Context, g *model.Grade) error
	GetByID(ctx context.Context, id int) (*model.Grade, error)
	List(ctx context.Context, studentID, subjectID *int, page Page) ([]model.Grade, error)
	Update(ctx context.Context, g *model.Grade) error
	Delete(ctx context.Context, id int) error
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo creates a GradeRepository.
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, g *model.Grade) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gradeRepo) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	var g model.Grade
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gradeRepo) List(ctx context.Context, studentID, subjectID *int, page Page) ([]model.Grade, error) {
	var list []model.Grade
	db := r.db.WithContext(ctx)
	if studentID != nil {
		db = db.Where("student_id = ?", *studentID)
	}
	if subjectID != nil {
		db = db.Where("subject_id = ?", *subjectID)
	}
	err := page.apply(db.Order("id ASC")).Find(&list).Error
	return list, err
}

func (r *gradeRepo) Update(ctx context.Context, g *model.Grade) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gradeRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Grade{}, id).Error
}

// ── events ──

// EventRepository calendar event data access
type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id int) (*model.Event, error)
	// List returns events overlapping [from, to]; nil bounds are open.
	List(ctx context.Context, from, to *time.Time, page Page) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id int) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) List(ctx context.Context, from, to *time.Time, page Page) ([]model.Event, error) {
	var list []model.Event
	db := r.db.WithContext(ctx)
	if from != nil {
		db = db.Where("end_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("start_date <= ?", *to)
	}
	err := page.apply(db.Order("start_date ASC, id ASC")).Find(&list).Error
	return list, err
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}
