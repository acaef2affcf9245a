package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/jwt"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/redis"
)

// Service aggregates every domain service.
type Service struct {
	Auth         AuthService
	User         UserService
	Department   DepartmentService
	Specialty    SpecialtyService
	Level        LevelService
	Group        GroupService
	Student      StudentService
	Teacher      TeacherService
	Subject      SubjectService
	Room         RoomService
	Availability AvailabilityService
	Export       ExportService
	Slot         SlotService
	Calendar     CalendarService
	Session      SessionService
	Absence      AbsenceService
	Grade        GradeService
	Event        EventService
	Message      MessageService
	Notification NotificationService
}

// NewService wires all services. rdb may be nil, in which case token
// revocation is disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	clock := NewClock(cfg.Server.Location())

	policy := EmptyAvailabilityPolicy()
	if cfg.Feature.DemoAvailability {
		policy = DefaultAvailabilityPolicy()
	}
	availability := NewAvailabilityService(repo, policy, clock, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, hasher, logger),
		User:         NewUserService(repo, hasher, logger),
		Department:   NewDepartmentService(repo, logger),
		Specialty:    NewSpecialtyService(repo, logger),
		Level:        NewLevelService(repo, logger),
		Group:        NewGroupService(repo, logger),
		Student:      NewStudentService(repo, hasher, logger),
		Teacher:      NewTeacherService(repo, hasher, logger),
		Subject:      NewSubjectService(repo, logger),
		Room:         NewRoomService(repo, logger),
		Availability: availability,
		Export:       NewExportService(availability, logger),
		Slot:         NewSlotService(repo, logger),
		Calendar:     NewCalendarService(repo, clock, logger),
		Session:      NewSessionService(repo, logger),
		Absence:      NewAbsenceService(repo, clock, logger),
		Grade:        NewGradeService(repo, logger),
		Event:        NewEventService(repo, logger),
		Message:      NewMessageService(repo, clock, logger),
		Notification: NewNotificationService(repo, logger),
	}
}

// ── shared helpers ──

// Clock yields the current instant in the configured zone.
type Clock func() time.Time

// NewClock returns a wall clock in loc.
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func toPage(q dto.PageQuery) repository.Page {
	return repository.Page{Skip: q.Skip, Limit: q.Limit}
}

// checkRef converts a lookup failure on a referenced row into a 400 naming it.
func checkRef(err error, entity string, id int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.ErrMissingReference.Messagef("%s with id %d not found", entity, id)
	}
	return fmt.Errorf("lookup %s %d: %w", entity, id, err)
}

// slotReferences counts the timetable slots, active or not, matching filter.
// Rooms and teachers cannot be deleted while any slot still points at them.
func slotReferences(ctx context.Context, repo *repository.Repository, filter repository.SlotFilter) (int, error) {
	slots, err := repo.TimetableSlot.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count timetable slots: %w", err)
	}
	return len(slots), nil
}

// isBusiness reports whether err is a client-facing error that should not be logged.
func isBusiness(err error) bool {
	e, ok := pkgerrors.As(err)
	return ok && e.Kind != pkgerrors.KindInternal
}

func parseDate(s string) (time.Time, error) {
	t, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, pkgerrors.ErrInvalidDate.WithDetail("%q", s)
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	t, err := model.ParseOptionalDate(s)
	if err != nil {
		return nil, pkgerrors.ErrInvalidDate.WithDetail("%q", s)
	}
	return t, nil
}

// inTx runs fn on a transactional Repository. A Repository without a database
// runs fn directly.
func inTx(ctx context.Context, repo *repository.Repository, fn func(r *repository.Repository) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
	}
	return nil
}
