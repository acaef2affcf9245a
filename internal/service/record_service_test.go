package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// seedRecords creates student 1 and session 1; teacher user 1 marks absences.
func seedRecords(t *testing.T) *repository.Repository {
	t.Helper()
	repo := newMockRepository()
	seedTimetable(t, repo)
	ctx := context.Background()
	if err := repo.Student.Create(ctx, &model.Student{UserID: 50, StudentNumber: "S1", GroupID: 1, SpecialtyID: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Session.Create(ctx, &model.Session{
		TimetableSlotID: 1, SessionDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "08:30:00", EndTime: "10:00:00", RoomID: 1, Status: model.SessionScheduled,
	}); err != nil {
		t.Fatal(err)
	}
	return repo
}

func floatPtr(f float64) *float64 { return &f }

// ── absences ──

func TestAbsenceService_Create(t *testing.T) {
	repo := seedRecords(t)
	markedAt := monday(10, 5, 0)
	svc := NewAbsenceService(repo, fixedClock(markedAt), zap.NewNop())
	ctx := context.Background()

	got, err := svc.Create(ctx, &dto.CreateAbsenceRequest{StudentID: 1, SessionID: 1}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.AbsenceType != model.AbsenceUnjustified {
		t.Errorf("default type = %q", got.AbsenceType)
	}
	if got.MarkedBy == nil || *got.MarkedBy != 1 {
		t.Errorf("marked_by should default to the caller, got %v", got.MarkedBy)
	}
	if !got.MarkedAt.Equal(markedAt) {
		t.Errorf("marked_at = %v", got.MarkedAt)
	}

	if _, err := svc.Create(ctx, &dto.CreateAbsenceRequest{StudentID: 1, SessionID: 1}, 1); !errors.Is(err, ErrAbsenceExists) {
		t.Errorf("duplicate absence: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateAbsenceRequest{StudentID: 2, SessionID: 1}, 1); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("unknown student: %v", err)
	}
	ghost := 77
	if _, err := svc.Create(ctx, &dto.CreateAbsenceRequest{StudentID: 1, SessionID: 1, MarkedBy: &ghost}, 1); !errors.Is(err, pkgerrors.ErrMissingReference) {
		t.Errorf("unknown marker: %v", err)
	}
}

func TestAbsenceService_UpdateDelete(t *testing.T) {
	repo := seedRecords(t)
	svc := NewAbsenceService(repo, fixedClock(monday(10, 0, 0)), zap.NewNop())
	ctx := context.Background()
	created, err := svc.Create(ctx, &dto.CreateAbsenceRequest{StudentID: 1, SessionID: 1}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if created.MarkedBy != nil {
		t.Error("no caller and no marked_by leaves marked_by empty")
	}

	justified := model.AbsenceJustified
	got, err := svc.Update(ctx, created.ID, &dto.UpdateAbsenceRequest{AbsenceType: &justified})
	if err != nil || got.AbsenceType != model.AbsenceJustified {
		t.Fatalf("Update: %+v, %v", got, err)
	}

	list, _ := svc.List(ctx, &dto.AbsenceListQuery{})
	if len(list) != 1 {
		t.Errorf("absences = %d", len(list))
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrAbsenceNotFound) {
		t.Errorf("expected ErrAbsenceNotFound, got %v", err)
	}
}

// ── grades ──

func TestGradeService_Create(t *testing.T) {
	repo := seedRecords(t)
	svc := NewGradeService(repo, zap.NewNop())
	ctx := context.Background()
	req := &dto.CreateGradeRequest{
		StudentID: 1, SubjectID: 1, ExamType: model.ExamFinal,
		Score: floatPtr(14.5), ExamDate: "2025-01-10", AcademicYear: "2024-2025", Semester: 1,
	}

	got, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.MaxScore != 20 || got.ExamDate == nil || *got.ExamDate != "2025-01-10" {
		t.Errorf("grade = %+v", got)
	}

	cases := []struct {
		name  string
		score float64
		max   *float64
		want  error
	}{
		{"negative", -1, nil, ErrScoreOutOfRange},
		{"above max", 21, nil, ErrScoreOutOfRange},
		{"above custom max", 11, floatPtr(10), ErrScoreOutOfRange},
		{"max above twenty", 5, floatPtr(40), ErrInvalidMaxScore},
		{"zero max", 0, floatPtr(0), ErrInvalidMaxScore},
	}
	for _, tc := range cases {
		bad := *req
		bad.Score, bad.MaxScore = floatPtr(tc.score), tc.max
		if _, err := svc.Create(ctx, &bad); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestGradeService_UpdateChecksScore(t *testing.T) {
	repo := seedRecords(t)
	svc := NewGradeService(repo, zap.NewNop())
	ctx := context.Background()
	created, err := svc.Create(ctx, &dto.CreateGradeRequest{
		StudentID: 1, SubjectID: 1, ExamType: model.ExamQuiz,
		Score: floatPtr(8), MaxScore: floatPtr(10), AcademicYear: "2024-2025", Semester: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, created.ID, &dto.UpdateGradeRequest{Score: floatPtr(12)}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
	got, err := svc.Update(ctx, created.ID, &dto.UpdateGradeRequest{Score: floatPtr(9.5)})
	if err != nil || got.Score != 9.5 {
		t.Errorf("Update: %+v, %v", got, err)
	}
}

// ── events ──

func TestEventService_CreateAndRange(t *testing.T) {
	svc := NewEventService(newMockRepository(), zap.NewNop())
	ctx := context.Background()

	exams, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Final exams", EventType: "exam", StartDate: "2025-01-06", EndDate: "2025-01-18", AffectsTimetable: true,
	}, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if exams.CreatedBy == nil || *exams.CreatedBy != 3 {
		t.Errorf("created_by should be the caller, got %v", exams.CreatedBy)
	}
	if exams.StartDate != "2025-01-06" || exams.EndDate != "2025-01-18" {
		t.Errorf("dates = %s..%s", exams.StartDate, exams.EndDate)
	}

	if _, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Same day", EventType: "holiday", StartDate: "2025-03-20", EndDate: "2025-03-20",
	}, 3); err != nil {
		t.Errorf("single-day event: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Backwards", EventType: "closure", StartDate: "2025-02-10", EndDate: "2025-02-01",
	}, 3); !errors.Is(err, ErrInvalidEventRange) {
		t.Errorf("end before start: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Bad", EventType: "exam", StartDate: "06/01/2025", EndDate: "2025-01-18",
	}, 3); !errors.Is(err, pkgerrors.ErrInvalidDate) {
		t.Errorf("malformed date: %v", err)
	}

	list, err := svc.List(ctx, &dto.EventListQuery{From: "2025-01-10", To: "2025-01-31"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != exams.ID {
		t.Errorf("expected only the overlapping exam period, got %+v", list)
	}
	if _, err := svc.List(ctx, &dto.EventListQuery{From: "soon"}); !errors.Is(err, pkgerrors.ErrInvalidDate) {
		t.Errorf("bad from: %v", err)
	}
}

func TestEventService_UpdateDelete(t *testing.T) {
	svc := NewEventService(newMockRepository(), zap.NewNop())
	ctx := context.Background()
	e, err := svc.Create(ctx, &dto.CreateEventRequest{
		Title: "Workshop", EventType: "workshop", StartDate: "2025-04-01", EndDate: "2025-04-02",
	}, 1)
	if err != nil {
		t.Fatal(err)
	}

	early := "2025-03-01"
	if _, err := svc.Update(ctx, e.ID, &dto.UpdateEventRequest{EndDate: &early}); !errors.Is(err, ErrInvalidEventRange) {
		t.Errorf("merged range check: %v", err)
	}

	title := "Go workshop"
	got, err := svc.Update(ctx, e.ID, &dto.UpdateEventRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != title || got.EndDate != "2025-04-02" {
		t.Errorf("unexpected update result %+v", got)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, e.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("after delete: %v", err)
	}
	if err := svc.Delete(ctx, e.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete: %v", err)
	}
}
