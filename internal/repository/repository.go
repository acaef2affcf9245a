package repository

import (
	"context"

	"gorm.io/gorm"
)

// Page offset pagination; Limit <= 0 means DefaultLimit.
type Page struct {
	Skip  int
	Limit int
}

// DefaultLimit mirrors the list endpoints' default page size.
const DefaultLimit = 100

func (p Page) apply(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return db.Offset(skip).Limit(limit)
}

// Repository aggregates every table repository.
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Department    DepartmentRepository
	Specialty     SpecialtyRepository
	Level         LevelRepository
	Group         GroupRepository
	Teacher       TeacherRepository
	Student       StudentRepository
	Subject       SubjectRepository
	Room          RoomRepository
	TimetableSlot TimetableSlotRepository
	Session       SessionRepository
	Absence       AbsenceRepository
	Grade         GradeRepository
	Message       MessageRepository
	Notification  NotificationRepository
	Event         EventRepository
}

// NewRepository builds all repositories on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Department:    NewDepartmentRepo(db),
		Specialty:     NewSpecialtyRepo(db),
		Level:         NewLevelRepo(db),
		Group:         NewGroupRepo(db),
		Teacher:       NewTeacherRepo(db),
		Student:       NewStudentRepo(db),
		Subject:       NewSubjectRepo(db),
		Room:          NewRoomRepo(db),
		TimetableSlot: NewTimetableSlotRepo(db),
		Session:       NewSessionRepo(db),
		Absence:       NewAbsenceRepo(db),
		Grade:         NewGradeRepo(db),
		Message:       NewMessageRepo(db),
		Notification:  NewNotificationRepo(db),
		Event:         NewEventRepo(db),
	}
}

// BeginTx starts a transaction. A Repository assembled without a database
// (unit tests with in-memory fakes) returns a nil tx and no error.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns a Repository whose repositories run on tx.
// A nil tx returns r unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
