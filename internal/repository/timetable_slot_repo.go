package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
)

// SlotFilter narrows TimetableSlotRepository.List. Nil fields do not filter.
type SlotFilter struct {
	RoomID     *int
	TeacherID  *int
	GroupID    *int
	DayOfWeek  *int
	ActiveOnly bool
}

// TimetableSlotRepository timetable slot data access
type TimetableSlotRepository interface {
	Create(ctx context.Context, slot *model.TimetableSlot) error
	GetByID(ctx context.Context, id int) (*model.TimetableSlot, error)
	List(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error)
	// ListActiveByRooms returns active slots of the given rooms with
	// Teacher.User preloaded, ordered by id.
	ListActiveByRooms(ctx context.Context, roomIDs []int) ([]model.TimetableSlot, error)
	// ListDetailed returns slots with Subject, Teacher.User, Group and Room preloaded.
	ListDetailed(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error)
	Update(ctx context.Context, slot *model.TimetableSlot) error
	Delete(ctx context.Context, id int) error
}

type timetableSlotRepo struct {
	db *gorm.DB
}

// NewTimetableSlotRepo creates a TimetableSlotRepository.
func NewTimetableSlotRepo(db *gorm.DB) TimetableSlotRepository {
	return &timetableSlotRepo{db: db}
}

func (r *timetableSlotRepo) Create(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timetableSlotRepo) GetByID(ctx context.Context, id int) (*model.TimetableSlot, error) {
	var slot model.TimetableSlot
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timetableSlotRepo) filtered(ctx context.Context, f SlotFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	if f.RoomID != nil {
		db = db.Where("room_id = ?", *f.RoomID)
	}
	if f.TeacherID != nil {
		db = db.Where("teacher_id = ?", *f.TeacherID)
	}
	if f.GroupID != nil {
		db = db.Where("group_id = ?", *f.GroupID)
	}
	if f.DayOfWeek != nil {
		db = db.Where("day_of_week = ?", *f.DayOfWeek)
	}
	if f.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	return db
}

func (r *timetableSlotRepo) List(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	err := r.filtered(ctx, filter).
		Order("day_of_week ASC, start_time ASC, id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) ListActiveByRooms(ctx context.Context, roomIDs []int) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	if len(roomIDs) == 0 {
		return slots, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Where("room_id IN ?", roomIDs).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) ListDetailed(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	err := r.filtered(ctx, filter).
		Preload("Subject").
		Preload("Teacher.User").
		Preload("Group").
		Preload("Room").
		Order("day_of_week ASC, start_time ASC, id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) Update(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).
		Omit("Subject", "Teacher", "Group", "Room").
		Save(slot).Error
}

func (r *timetableSlotRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.TimetableSlot{}, id).Error
}

// ── sessions ──

// SessionFilter narrows SessionRepository.List.
type SessionFilter struct {
	TimetableSlotID *int
	RoomID          *int
	From            *time.Time
	To              *time.Time
	Status          string
}

// SessionRepository session data access
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id int) (*model.Session, error)
	List(ctx context.Context, filter SessionFilter, page Page) ([]model.Session, error)
	Update(ctx context.Context, s *model.Session) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id int) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) List(ctx context.Context, f SessionFilter, page Page) ([]model.Session, error) {
	var list []model.Session
	db := r.db.WithContext(ctx)
	if f.TimetableSlotID != nil {
		db = db.Where("timetable_slot_id = ?", *f.TimetableSlotID)
	}
	if f.RoomID != nil {
		db = db.Where("room_id = ?", *f.RoomID)
	}
	if f.From != nil {
		db = db.Where("session_date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("session_date <= ?", *f.To)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	err := page.apply(db.Order("session_date ASC, start_time ASC, id ASC")).Find(&list).Error
	return list, err
}

func (r *sessionRepo) Update(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Omit("TimetableSlot", "Room").Save(s).Error
}
