package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/metrics"
)

// Availability statuses
const (
	StatusAvailable         = "Available"
	StatusHeavilyBooked     = "Available (Heavily Booked)"
	StatusModeratelyBooked  = "Available (Moderately Booked)"
	StatusNoAssignments     = "Available (No Assignments)"
	busyStatusPrefix        = "Busy - "
	heavilyBookedThreshold  = 25
	moderateBookedThreshold = 15
)

var dayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the English weekday for an ISO day number, or "Unknown".
func DayName(day int) string {
	if day < 1 || day > 7 {
		return "Unknown"
	}
	return dayNames[day]
}

// ────────────────────── Policy ──────────────────────

// PlaceholderAssignment is synthesized for a room without real assignments.
// TeacherIndex points into the first teachers ordered by id; Fallback is used
// when TeacherIndex is out of range (-1 for none).
type PlaceholderAssignment struct {
	TeacherIndex int
	Fallback     int
	SubjectID    int
	DayOfWeek    int
	StartTime    string // HH:MM
	EndTime      string // HH:MM
	AcademicYear string
}

// PlaceholderRule applies only when at least MinTeachers teachers exist.
type PlaceholderRule struct {
	MinTeachers int
	Assignments []PlaceholderAssignment
}

// OverrideRule forces a room busy for FromHour <= hour < ToHour and resets the
// status to "Available" outside that window. The boolean is left untouched
// outside the window.
type OverrideRule struct {
	FromHour int
	ToHour   int
	Status   string
}

// AvailabilityPolicy holds the per-room-code demo tables.
type AvailabilityPolicy struct {
	Placeholders map[string]PlaceholderRule
	Overrides    map[string]OverrideRule
}

// EmptyAvailabilityPolicy lets only persisted slots drive availability.
func EmptyAvailabilityPolicy() AvailabilityPolicy {
	return AvailabilityPolicy{}
}

// DefaultAvailabilityPolicy the demo tables shipped with the campus dataset.
func DefaultAvailabilityPolicy() AvailabilityPolicy {
	const year = "2024-2025"
	return AvailabilityPolicy{
		Placeholders: map[string]PlaceholderRule{
			"B205": {
				MinTeachers: 1,
				Assignments: []PlaceholderAssignment{
					{TeacherIndex: 0, Fallback: -1, SubjectID: 1, DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00", AcademicYear: year},
					{TeacherIndex: 1, Fallback: 0, SubjectID: 2, DayOfWeek: 4, StartTime: "14:00", EndTime: "17:00", AcademicYear: year},
				},
			},
			"C301": {
				MinTeachers: 2,
				Assignments: []PlaceholderAssignment{
					{TeacherIndex: 1, Fallback: -1, SubjectID: 3, DayOfWeek: 2, StartTime: "10:00", EndTime: "12:00", AcademicYear: year},
				},
			},
			"A101": {
				MinTeachers: 3,
				Assignments: []PlaceholderAssignment{
					{TeacherIndex: 2, Fallback: -1, SubjectID: 4, DayOfWeek: 3, StartTime: "09:00", EndTime: "11:00", AcademicYear: year},
				},
			},
		},
		Overrides: map[string]OverrideRule{
			"B205": {FromHour: 8, ToHour: 12, Status: "Busy - Dr. Sarah Wilson (Programming Course)"},
			"C301": {FromHour: 13, ToHour: 16, Status: "Busy - Prof. Michael Brown (Mathematics)"},
			"A101": {FromHour: 17, ToHour: 19, Status: "Busy - Dr. Emily Davis (Physics Lecture)"},
		},
	}
}

// teacherPool is how many teachers the placeholder rules may reference.
func (p AvailabilityPolicy) teacherPool() int {
	n := 0
	for _, rule := range p.Placeholders {
		if rule.MinTeachers > n {
			n = rule.MinTeachers
		}
		for _, a := range rule.Assignments {
			if a.TeacherIndex+1 > n {
				n = a.TeacherIndex + 1
			}
		}
	}
	return n
}

// placeholders synthesizes the rule's assignments from teachers.
func (r PlaceholderRule) placeholders(teachers []model.Teacher) []dto.AssignmentView {
	if len(teachers) < r.MinTeachers {
		return []dto.AssignmentView{}
	}
	views := make([]dto.AssignmentView, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		idx := a.TeacherIndex
		if idx >= len(teachers) {
			idx = a.Fallback
		}
		if idx < 0 || idx >= len(teachers) {
			continue
		}
		t := teachers[idx]
		views = append(views, dto.AssignmentView{
			TeacherID:         t.ID,
			TeacherName:       t.User.FullName(),
			TeacherEmployeeID: t.EmployeeID,
			SubjectID:         a.SubjectID,
			DayOfWeek:         a.DayOfWeek,
			DayName:           DayName(a.DayOfWeek),
			StartTime:         a.StartTime,
			EndTime:           a.EndTime,
			AcademicYear:      a.AcademicYear,
		})
	}
	return views
}

// Evaluate derives the live availability of room at now from its assignments.
func (p AvailabilityPolicy) Evaluate(room *model.Room, assignments []dto.AssignmentView, now time.Time) (bool, string, error) {
	available := room.IsAvailable
	status := StatusAvailable

	day := isoWeekday(now)
	clock := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())

	for _, a := range assignments {
		if a.DayOfWeek != day {
			continue
		}
		start, err := model.ParseClock(a.StartTime)
		if err != nil {
			return false, "", fmt.Errorf("room %s: %w", room.Code, err)
		}
		end, err := model.ParseClock(a.EndTime)
		if err != nil {
			return false, "", fmt.Errorf("room %s: %w", room.Code, err)
		}
		if start <= clock && clock <= end {
			available = false
			status = busyStatusPrefix + a.TeacherName
			break
		}
	}

	switch n := len(assignments); {
	case n >= heavilyBookedThreshold:
		if available {
			status = StatusHeavilyBooked
		}
	case n >= moderateBookedThreshold:
		if available {
			status = StatusModeratelyBooked
		}
	case n == 0:
		status = StatusNoAssignments
	}

	if rule, ok := p.Overrides[room.Code]; ok {
		if h := now.Hour(); rule.FromHour <= h && h < rule.ToHour {
			available = false
			status = rule.Status
		} else {
			status = StatusAvailable
		}
	}

	return available, status, nil
}

// isoWeekday 1 = Monday … 7 = Sunday
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ────────────────────── Service ──────────────────────

// ErrIncompleteSlot a slot references a teacher or user row that failed to load.
var ErrIncompleteSlot = errors.New("timetable slot without teacher user")

// AvailabilityService derives live room occupancy.
type AvailabilityService interface {
	Compute(ctx context.Context, q *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	policy AvailabilityPolicy
	now    Clock
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(repo *repository.Repository, policy AvailabilityPolicy, now Clock, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, policy: policy, now: now, logger: logger}
}

// Compute builds the live view of every room, ordered by id.
//
// Slots are fetched in one query for all rooms. A room without any active slot
// borrows the placeholder assignments of its code, built from the first
// teachers by id, which are loaded lazily and at most once per call. The busy
// gauge is set to the number of rooms not currently available.
//
// A slot whose teacher or teacher user is missing, or whose times do not
// parse, fails the whole request rather than hiding the room.
func (s *availabilityService) Compute(ctx context.Context, q *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	now := s.now()
	if q != nil && (q.Date != "" || q.TimeSlot != "") {
		s.logger.Debug("availability filters are ignored",
			zap.String("date", q.Date), zap.String("time_slot", q.TimeSlot))
	}

	rooms, err := s.repo.Room.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list rooms", zap.Error(err))
		return nil, err
	}

	byRoom := make(map[int][]model.TimetableSlot, len(rooms))
	if len(rooms) > 0 {
		ids := make([]int, 0, len(rooms))
		for i := range rooms {
			ids = append(ids, rooms[i].ID)
		}
		slots, err := s.repo.TimetableSlot.ListActiveByRooms(ctx, ids)
		if err != nil {
			s.logger.Error("failed to list active slots", zap.Error(err))
			return nil, err
		}
		for _, slot := range slots {
			byRoom[slot.RoomID] = append(byRoom[slot.RoomID], slot)
		}
	}

	var (
		teachers     []model.Teacher
		teachersRead bool
		busy         int
	)
	result := make([]dto.RoomAvailabilityResponse, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]

		assignments, err := slotAssignments(byRoom[room.ID])
		if err != nil {
			s.logger.Error("failed to build assignments", zap.String("room", room.Code), zap.Error(err))
			return nil, err
		}

		if len(assignments) == 0 {
			if rule, ok := s.policy.Placeholders[room.Code]; ok {
				if !teachersRead {
					teachers, err = s.firstTeachers(ctx)
					if err != nil {
						return nil, err
					}
					teachersRead = true
				}
				assignments = rule.placeholders(teachers)
			}
		}

		available, status, err := s.policy.Evaluate(room, assignments, now)
		if err != nil {
			s.logger.Error("failed to evaluate availability", zap.String("room", room.Code), zap.Error(err))
			return nil, err
		}
		if !available {
			busy++
		}

		s.logger.Debug("room availability",
			zap.String("room", room.Code),
			zap.String("status", status),
			zap.Int("assignments", len(assignments)))

		result = append(result, dto.RoomAvailabilityResponse{
			RoomResponse:         toRoomResponse(room),
			IsCurrentlyAvailable: available,
			AvailabilityStatus:   status,
			AssignmentsCount:     len(assignments),
			CurrentAssignments:   assignments,
		})
	}

	metrics.AvailabilityComputations.Inc()
	metrics.RoomsBusy.Set(float64(busy))

	return &dto.AvailabilityResponse{
		Timestamp:  now.Format(time.RFC3339Nano),
		TotalRooms: len(result),
		Rooms:      result,
	}, nil
}

// firstTeachers loads the placeholder pool, skipping teachers without a user row.
func (s *availabilityService) firstTeachers(ctx context.Context) ([]model.Teacher, error) {
	n := s.policy.teacherPool()
	if n == 0 {
		return nil, nil
	}
	list, err := s.repo.Teacher.ListFirst(ctx, n)
	if err != nil {
		s.logger.Error("failed to list teachers", zap.Error(err))
		return nil, err
	}
	out := list[:0]
	for _, t := range list {
		if t.User != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// slotAssignments renders persisted slots; every slot must carry its teacher and user.
func slotAssignments(slots []model.TimetableSlot) ([]dto.AssignmentView, error) {
	views := make([]dto.AssignmentView, 0, len(slots))
	for _, slot := range slots {
		if slot.Teacher == nil || slot.Teacher.User == nil {
			return nil, fmt.Errorf("slot %d: %w", slot.ID, ErrIncompleteSlot)
		}
		start, err := model.ParseClock(slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot.ID, err)
		}
		end, err := model.ParseClock(slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot.ID, err)
		}
		views = append(views, dto.AssignmentView{
			TeacherID:         slot.Teacher.ID,
			TeacherName:       slot.Teacher.User.FullName(),
			TeacherEmployeeID: slot.Teacher.EmployeeID,
			SubjectID:         slot.SubjectID,
			DayOfWeek:         slot.DayOfWeek,
			DayName:           DayName(slot.DayOfWeek),
			StartTime:         model.FormatClock(start, model.ShortClockLayout),
			EndTime:           model.FormatClock(end, model.ShortClockLayout),
			AcademicYear:      slot.AcademicYear,
		})
	}
	return views, nil
}
