package service

import (
	"context"
	"errors"
	"strings"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
)

// ── session errors ──

var (
	ErrSessionNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 24101, "Session not found")
	ErrInvalidTransition    = pkgerrors.New(pkgerrors.KindValidation, 24102, "invalid session status transition")
	ErrCancelReasonRequired = pkgerrors.New(pkgerrors.KindValidation, 24103, "a cancellation reason is required")
)

// Session events
const (
	SessionEventComplete   = "complete"
	SessionEventCancel     = "cancel"
	SessionEventReschedule = "reschedule"
	SessionEventRestore    = "restore"
)

var sessionEvents = fsm.Events{
	{Name: SessionEventComplete, Src: []string{model.SessionScheduled}, Dst: model.SessionCompleted},
	{Name: SessionEventCancel, Src: []string{model.SessionScheduled}, Dst: model.SessionCancelled},
	{Name: SessionEventReschedule, Src: []string{model.SessionScheduled}, Dst: model.SessionRescheduled},
	{Name: SessionEventRestore, Src: []string{model.SessionCancelled, model.SessionRescheduled}, Dst: model.SessionScheduled},
}

// newSessionFSM binds a status machine to session; entering a state writes it back.
func newSessionFSM(session *model.Session) *fsm.FSM {
	return fsm.NewFSM(
		session.Status,
		sessionEvents,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				session.Status = e.Dst
			},
			"enter_" + model.SessionCancelled: func(_ context.Context, e *fsm.Event) {
				if len(e.Args) > 0 {
					if reason, ok := e.Args[0].(string); ok {
						session.CancellationReason = &reason
					}
				}
			},
			"enter_" + model.SessionScheduled: func(_ context.Context, _ *fsm.Event) {
				session.CancellationReason = nil
			},
		},
	)
}

// SessionService dated occurrences of timetable slots
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SessionResponse, error)
	List(ctx context.Context, q *dto.SessionListQuery) ([]dto.SessionResponse, error)
	Transition(ctx context.Context, id int, req *dto.SessionTransitionRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	date, err := parseDate(req.SessionDate)
	if err != nil {
		return nil, err
	}
	slot, err := s.repo.TimetableSlot.GetByID(ctx, req.TimetableSlotID)
	if err := checkRef(err, "Timetable slot", req.TimetableSlotID); err != nil {
		return nil, err
	}

	session := &model.Session{
		TimetableSlotID: slot.ID,
		SessionDate:     date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		RoomID:          slot.RoomID,
		Status:          model.SessionScheduled,
		IsMakeup:        req.IsMakeup,
	}
	if req.StartTime != "" {
		session.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		session.EndTime = req.EndTime
	}
	if req.RoomID != nil {
		_, err := s.repo.Room.GetByID(ctx, *req.RoomID)
		if err := checkRef(err, "Room", *req.RoomID); err != nil {
			return nil, err
		}
		session.RoomID = *req.RoomID
	}

	start, err := model.ParseClock(session.StartTime)
	if err != nil {
		return nil, ErrInvalidTime.WithDetail("start_time %q", session.StartTime)
	}
	end, err := model.ParseClock(session.EndTime)
	if err != nil {
		return nil, ErrInvalidTime.WithDetail("end_time %q", session.EndTime)
	}
	if end <= start {
		return nil, ErrInvalidTimeRange
	}
	session.StartTime = model.FormatClock(start, model.ClockLayout)
	session.EndTime = model.FormatClock(end, model.ClockLayout)

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.Int("slot_id", slot.ID), zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── Read ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id int) (*dto.SessionResponse, error) {
	session, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, q *dto.SessionListQuery) ([]dto.SessionResponse, error) {
	from, err := parseOptionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(q.To)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.Session.List(ctx, repository.SessionFilter{
		TimetableSlotID: q.TimetableSlotID,
		RoomID:          q.RoomID,
		From:            from,
		To:              to,
		Status:          q.Status,
	}, toPage(q.PageQuery))
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		return nil, err
	}
	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Transition ──────────────────────

// Transition fires req.Event on the session's status machine and persists the
// new state. Cancelling requires a reason, restoring clears it. Events that
// the current state does not accept come back as ErrInvalidTransition (400).
func (s *sessionService) Transition(ctx context.Context, id int, req *dto.SessionTransitionRequest) (*dto.SessionResponse, error) {
	session, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var args []interface{}
	if req.Event == SessionEventCancel {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return nil, ErrCancelReasonRequired
		}
		args = append(args, strings.TrimSpace(*req.Reason))
	}

	from := session.Status
	if err := newSessionFSM(session).Event(ctx, req.Event, args...); err != nil {
		return nil, ErrInvalidTransition.WithDetail("cannot %s a %s session", req.Event, from)
	}

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("failed to update session status",
			zap.Int("id", id), zap.String("from", from), zap.String("to", session.Status), zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ── helpers ──

func (s *sessionService) get(ctx context.Context, id int) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to get session", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func toSessionResponse(s *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:                 s.ID,
		TimetableSlotID:    s.TimetableSlotID,
		SessionDate:        s.SessionDate.Format(model.DateLayout),
		StartTime:          model.ShortClock(s.StartTime),
		EndTime:            model.ShortClock(s.EndTime),
		RoomID:             s.RoomID,
		Status:             s.Status,
		CancellationReason: s.CancellationReason,
		IsMakeup:           s.IsMakeup,
	}
}
