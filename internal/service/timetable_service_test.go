package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// seedTimetable adds subject 1, teacher 1, room 1 on top of seedAcademics.
func seedTimetable(t *testing.T, repo *repository.Repository) (*model.Teacher, *model.Room) {
	t.Helper()
	seedAcademics(t, repo)
	if err := repo.Subject.Create(context.Background(), &model.Subject{Name: "Algorithms", Code: "ALG1", LevelID: 1}); err != nil {
		t.Fatal(err)
	}
	teacher := addTeacher(t, repo, "Mourad", "Khelifi", "EMP-7")
	room := addRoom(t, repo, "B12", true)
	return teacher, room
}

func slotRequest() *dto.CreateSlotRequest {
	return &dto.CreateSlotRequest{
		SubjectID: 1, TeacherID: 1, GroupID: 1, RoomID: 1,
		DayOfWeek: 2, StartTime: "08:30", EndTime: "10:00",
		AcademicYear: "2024-2025", Semester: 1,
	}
}

// ── slots ──

func TestSlotService_Create(t *testing.T) {
	repo := newMockRepository()
	seedTimetable(t, repo)
	svc := NewSlotService(repo, zap.NewNop())

	got, err := svc.Create(context.Background(), slotRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !got.IsActive || got.StartTime != "08:30" || got.EndTime != "10:00" {
		t.Errorf("slot = %+v", got)
	}
	stored, _ := repo.TimetableSlot.GetByID(context.Background(), got.ID)
	if stored.StartTime != "08:30:00" {
		t.Errorf("stored start = %q, want HH:MM:SS", stored.StartTime)
	}
}

func TestSlotService_Validation(t *testing.T) {
	repo := newMockRepository()
	seedTimetable(t, repo)
	svc := NewSlotService(repo, zap.NewNop())

	cases := []struct {
		name   string
		mutate func(r *dto.CreateSlotRequest)
		want   error
	}{
		{"day zero", func(r *dto.CreateSlotRequest) { r.DayOfWeek = 0 }, ErrInvalidDay},
		{"day eight", func(r *dto.CreateSlotRequest) { r.DayOfWeek = 8 }, ErrInvalidDay},
		{"semester", func(r *dto.CreateSlotRequest) { r.Semester = 3 }, ErrInvalidSemester},
		{"bad time", func(r *dto.CreateSlotRequest) { r.StartTime = "8h30" }, ErrInvalidTime},
		{"end before start", func(r *dto.CreateSlotRequest) { r.EndTime = "08:00" }, ErrInvalidTimeRange},
		{"empty range", func(r *dto.CreateSlotRequest) { r.EndTime = "08:30:00" }, ErrInvalidTimeRange},
		{"unknown room", func(r *dto.CreateSlotRequest) { r.RoomID = 5 }, pkgerrors.ErrMissingReference},
		{"unknown teacher", func(r *dto.CreateSlotRequest) { r.TeacherID = 5 }, pkgerrors.ErrMissingReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := slotRequest()
			tc.mutate(req)
			if _, err := svc.Create(context.Background(), req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSlotService_UpdateAndList(t *testing.T) {
	repo := newMockRepository()
	seedTimetable(t, repo)
	svc := NewSlotService(repo, zap.NewNop())
	ctx := context.Background()
	created, err := svc.Create(ctx, slotRequest())
	if err != nil {
		t.Fatal(err)
	}

	inactive := false
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateSlotRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	active, err := svc.List(ctx, &dto.SlotListQuery{ActiveOnly: true})
	if err != nil || len(active) != 0 {
		t.Errorf("active slots = %+v, %v", active, err)
	}
	all, _ := svc.List(ctx, &dto.SlotListQuery{})
	if len(all) != 1 {
		t.Errorf("all slots = %d", len(all))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("expected ErrSlotNotFound, got %v", err)
	}
}

// ── sessions ──

func setupSessions(t *testing.T) (SessionService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	seedTimetable(t, repo)
	if _, err := NewSlotService(repo, zap.NewNop()).Create(context.Background(), slotRequest()); err != nil {
		t.Fatal(err)
	}
	return NewSessionService(repo, zap.NewNop()), repo
}

func TestSessionService_CreateCopiesSlot(t *testing.T) {
	svc, _ := setupSessions(t)

	got, err := svc.Create(context.Background(), &dto.CreateSessionRequest{TimetableSlotID: 1, SessionDate: "2024-10-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Status != model.SessionScheduled || got.RoomID != 1 || got.StartTime != "08:30" || got.SessionDate != "2024-10-01" {
		t.Errorf("session = %+v", got)
	}

	if _, err := svc.Create(context.Background(), &dto.CreateSessionRequest{TimetableSlotID: 4, SessionDate: "2024-10-01"}); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("unknown slot: %v", err)
	}
}

func TestSessionService_Transitions(t *testing.T) {
	svc, _ := setupSessions(t)
	ctx := context.Background()
	s, err := svc.Create(ctx, &dto.CreateSessionRequest{TimetableSlotID: 1, SessionDate: "2024-10-01"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventCancel}); !errors.Is(err, ErrCancelReasonRequired) {
		t.Errorf("cancel without reason: %v", err)
	}

	reason := "  teacher on sick leave "
	got, err := svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventCancel, Reason: &reason})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != model.SessionCancelled || got.CancellationReason == nil || *got.CancellationReason != "teacher on sick leave" {
		t.Errorf("cancelled = %+v", got)
	}

	if _, err := svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventComplete}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("complete a cancelled session: %v", err)
	}

	got, err = svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventRestore})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.Status != model.SessionScheduled || got.CancellationReason != nil {
		t.Errorf("restored = %+v", got)
	}

	got, err = svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventComplete})
	if err != nil || got.Status != model.SessionCompleted {
		t.Fatalf("complete: %+v, %v", got, err)
	}
	if _, err := svc.Transition(ctx, s.ID, &dto.SessionTransitionRequest{Event: SessionEventRestore}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed sessions are final: %v", err)
	}
}

func TestSessionService_ListFilters(t *testing.T) {
	svc, _ := setupSessions(t)
	ctx := context.Background()
	for _, d := range []string{"2024-10-01", "2024-10-08", "2024-10-15"} {
		if _, err := svc.Create(ctx, &dto.CreateSessionRequest{TimetableSlotID: 1, SessionDate: d}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.List(ctx, &dto.SessionListQuery{From: "2024-10-05", To: "2024-10-31"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("sessions in range = %d", len(list))
	}
	if _, err := svc.List(ctx, &dto.SessionListQuery{From: "yesterday"}); !errors.Is(err, pkgerrors.ErrInvalidDate) {
		t.Errorf("bad from: %v", err)
	}
}

// ── calendar ──

func TestCalendarService_GroupTimetable(t *testing.T) {
	repo := newMockRepository()
	seedTimetable(t, repo)
	if _, err := NewSlotService(repo, zap.NewNop()).Create(context.Background(), slotRequest()); err != nil {
		t.Fatal(err)
	}
	svc := NewCalendarService(repo, fixedClock(monday(9, 0, 0)), zap.NewNop())

	out, err := svc.GroupTimetable(context.Background(), 1, &dto.CalendarQuery{From: "2024-09-04"})
	if err != nil {
		t.Fatalf("GroupTimetable: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"X-WR-CALNAME:Timetable L1-A",
		"BEGIN:VEVENT",
		"RRULE:FREQ=WEEKLY",
		"BYDAY=TU",
		"DTSTART:20240903T083000Z",
		"DTEND:20240903T100000Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}

	if _, err := svc.GroupTimetable(context.Background(), 9, nil); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("unknown group: %v", err)
	}
}

func TestCalendarService_TeacherTimetableStableUID(t *testing.T) {
	repo := newMockRepository()
	seedTimetable(t, repo)
	if _, err := NewSlotService(repo, zap.NewNop()).Create(context.Background(), slotRequest()); err != nil {
		t.Fatal(err)
	}
	svc := NewCalendarService(repo, fixedClock(monday(9, 0, 0)), zap.NewNop())

	first, err := svc.TeacherTimetable(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("TeacherTimetable: %v", err)
	}
	second, _ := svc.TeacherTimetable(context.Background(), 1, nil)
	if first != second {
		t.Error("exports of the same timetable should be identical")
	}
	if !strings.Contains(first, "Mourad Khelifi") {
		t.Errorf("calendar should be named after the teacher:\n%s", first)
	}
}

// ── subjects ──

func TestSubjectService_CreateDefaultsAndUniqueness(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewSubjectService(repo, zap.NewNop())
	ctx := context.Background()

	got, err := svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Databases", Code: "DB1", LevelID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Credits != 3 || got.HoursPerWeek != 3 || got.SubjectType != model.SubjectTypeTheory {
		t.Errorf("defaults not applied: %+v", got)
	}

	if _, err := svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Dup", Code: "DB1", LevelID: 1}); !errors.Is(err, ErrSubjectCodeTaken) {
		t.Errorf("duplicate code: %v", err)
	}
	_, err = svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Orphan", Code: "OR1", LevelID: 9})
	if !errors.Is(err, pkgerrors.ErrMissingReference) || !strings.Contains(err.Error(), "Level with id 9 not found") {
		t.Errorf("unknown level: %v", err)
	}
}

func TestSubjectService_UpdateListDelete(t *testing.T) {
	repo := newMockRepository()
	seedAcademics(t, repo)
	svc := NewSubjectService(repo, zap.NewNop())
	ctx := context.Background()

	a, _ := svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Networks", Code: "NET1", LevelID: 1})
	b, _ := svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Compilers", Code: "CMP1", LevelID: 1})

	taken := "NET1"
	if _, err := svc.Update(ctx, b.ID, &dto.UpdateSubjectRequest{Code: &taken}); !errors.Is(err, ErrSubjectCodeTaken) {
		t.Errorf("rename onto taken code: %v", err)
	}
	same := "CMP1"
	credits := 5
	got, err := svc.Update(ctx, b.ID, &dto.UpdateSubjectRequest{Code: &same, Credits: &credits})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Credits != 5 {
		t.Errorf("credits = %d", got.Credits)
	}

	level := 1
	list, err := svc.List(ctx, &dto.SubjectListQuery{LevelID: &level})
	if err != nil || len(list) != 2 {
		t.Fatalf("List: %v %+v", err, list)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, a.ID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("after delete: %v", err)
	}
}

// ── deletes guarded by slots ──

func TestDeleteRefusedWhileSlotsReference(t *testing.T) {
	repo := newMockRepository()
	teacher, room := seedTimetable(t, repo)
	slots := NewSlotService(repo, zap.NewNop())
	rooms := NewRoomService(repo, zap.NewNop())
	teachers := NewTeacherService(repo, testHasher(), zap.NewNop())
	ctx := context.Background()

	slot, err := slots.Create(ctx, slotRequest())
	if err != nil {
		t.Fatal(err)
	}
	// Inactive slots still hold the reference.
	inactive := false
	if _, err := slots.Update(ctx, slot.ID, &dto.UpdateSlotRequest{IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}

	err = rooms.Delete(ctx, room.ID)
	if !errors.Is(err, ErrRoomInUse) || !strings.Contains(err.Error(), "referenced by 1 timetable slots") {
		t.Errorf("room delete: %v", err)
	}
	if e, ok := pkgerrors.As(err); !ok || e.Kind.HTTPStatus() != 400 {
		t.Errorf("room in use should map to 400, got %v", err)
	}
	if err := teachers.Delete(ctx, teacher.ID); !errors.Is(err, ErrTeacherInUse) {
		t.Errorf("teacher delete: %v", err)
	}
	if _, err := repo.Teacher.GetByID(ctx, teacher.ID); err != nil {
		t.Errorf("teacher must survive a refused delete: %v", err)
	}

	spare := addRoom(t, repo, "Z9", true)
	if err := rooms.Delete(ctx, spare.ID); err != nil {
		t.Errorf("unreferenced room delete: %v", err)
	}

	if err := slots.Delete(ctx, slot.ID); err != nil {
		t.Fatal(err)
	}
	if err := rooms.Delete(ctx, room.ID); err != nil {
		t.Errorf("room delete after slot removal: %v", err)
	}
	if err := teachers.Delete(ctx, teacher.ID); err != nil {
		t.Errorf("teacher delete after slot removal: %v", err)
	}
}
