package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
)

// ── iCalendar feeds ─────────────────────────────────────────
//
// Active slots are exported as weekly recurring VEVENTs. The first
// occurrence falls in the week that contains the anchor date.
// ─────────────────────────────────────────────────────────────

const calendarProductID = "-//Tununiversity//Timetable//EN"

// slotNamespace keeps event UIDs stable across exports.
var slotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tununiversity/timetable-slot"))

var icsWeekdays = [...]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// CalendarService renders timetables as iCalendar.
type CalendarService interface {
	GroupTimetable(ctx context.Context, groupID int, q *dto.CalendarQuery) (string, error)
	TeacherTimetable(ctx context.Context, teacherID int, q *dto.CalendarQuery) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, now Clock, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, now: now, logger: logger}
}

func (s *calendarService) GroupTimetable(ctx context.Context, groupID int, q *dto.CalendarQuery) (string, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrGroupNotFound
		}
		s.logger.Error("failed to get group", zap.Int("id", groupID), zap.Error(err))
		return "", err
	}
	slots, err := s.repo.TimetableSlot.ListDetailed(ctx, repository.SlotFilter{GroupID: &groupID, ActiveOnly: true})
	if err != nil {
		s.logger.Error("failed to list group slots", zap.Int("group_id", groupID), zap.Error(err))
		return "", err
	}
	return s.render("Timetable "+group.Code, slots, q)
}

func (s *calendarService) TeacherTimetable(ctx context.Context, teacherID int, q *dto.CalendarQuery) (string, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTeacherNotFound
		}
		s.logger.Error("failed to get teacher", zap.Int("id", teacherID), zap.Error(err))
		return "", err
	}
	slots, err := s.repo.TimetableSlot.ListDetailed(ctx, repository.SlotFilter{TeacherID: &teacherID, ActiveOnly: true})
	if err != nil {
		s.logger.Error("failed to list teacher slots", zap.Int("teacher_id", teacherID), zap.Error(err))
		return "", err
	}
	name := teacher.EmployeeID
	if teacher.User != nil {
		name = teacher.User.FullName()
	}
	return s.render("Timetable "+name, slots, q)
}

func (s *calendarService) render(title string, slots []model.TimetableSlot, q *dto.CalendarQuery) (string, error) {
	now := s.now()
	anchor := now
	if q != nil && q.From != "" {
		d, err := parseDate(q.From)
		if err != nil {
			return "", err
		}
		anchor = d
	}
	loc := now.Location()
	monday := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(isoWeekday(anchor) - 1))

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(title)
	cal.SetXWRTimezone(loc.String())

	for i := range slots {
		slot := &slots[i]
		start, err := model.ParseClock(slot.StartTime)
		if err != nil {
			return "", fmt.Errorf("slot %d: %w", slot.ID, err)
		}
		end, err := model.ParseClock(slot.EndTime)
		if err != nil {
			return "", fmt.Errorf("slot %d: %w", slot.ID, err)
		}
		if slot.DayOfWeek < 1 || slot.DayOfWeek > 7 {
			continue
		}
		day := monday.AddDate(0, 0, slot.DayOfWeek-1)

		event := cal.AddEvent(uuid.NewSHA1(slotNamespace, []byte(fmt.Sprintf("slot-%d", slot.ID))).String())
		event.SetDtStampTime(now)
		event.SetStartAt(day.Add(start))
		event.SetEndAt(day.Add(end))
		event.SetSummary(slotSummary(slot))
		if slot.Room != nil {
			event.SetLocation(strings.TrimSpace(slot.Room.Code + " " + deref(slot.Room.Name)))
		}
		if slot.Teacher != nil && slot.Teacher.User != nil {
			event.SetDescription(slot.Teacher.User.FullName())
		}
		event.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;BYDAY="+icsWeekdays[slot.DayOfWeek])
	}

	return cal.Serialize(), nil
}

func slotSummary(slot *model.TimetableSlot) string {
	subject := fmt.Sprintf("Subject %d", slot.SubjectID)
	if slot.Subject != nil {
		subject = slot.Subject.Name
	}
	if slot.Group != nil {
		return subject + " (" + slot.Group.Code + ")"
	}
	return subject
}
