package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"focusflow/internal/modules/session/domain"
	sessionout "focusflow/internal/modules/session/port/out"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
)

type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.SessionStore
	projector sessionout.SessionIndexProjector
	log       *slog.Logger
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, projector sessionout.SessionIndexProjector, log *slog.Logger) *SessionService {
	if log == nil {
		log = slog.Default()
	}
	return &SessionService{clock: clock, idGen: idGen, store: store, projector: projector, log: log}
}

func (s *SessionService) Start(_ context.Context, subject, topic string, plannedEnd *domain.TimeOfDay, startMood string) (domain.ActiveSession, error) {
	return domain.ActiveSession{
		ID:             s.idGen.New(),
		Subject:        subject,
		Topic:          topic,
		StartedAt:      s.clock.Now(),
		PlannedEndTime: plannedEnd,
		StartMood:      startMood,
	}, nil
}

func (s *SessionService) Stop(ctx context.Context, active domain.ActiveSession, endMood string, productivity int, notes string) (domain.Session, error) {
	if active.IsZero() {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	session := active.Finish(s.clock.Now(), endMood, productivity, notes)
	if err := s.append(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Log records a session entered after the fact. The record timestamp is
// always the current instant.
func (s *SessionService) Log(ctx context.Context, session domain.Session) (domain.Session, error) {
	session.Timestamp = s.clock.Now().Truncate(time.Second)
	if err := s.append(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SessionService) LoadAll(ctx context.Context) (domain.Log, error) {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return domain.Log{}, err
	}
	if log.Defaulted > 0 || log.Skipped > 0 {
		s.log.Warn("session log contains malformed rows",
			"defaulted", log.Defaulted,
			"skipped", log.Skipped,
			"loaded", len(log.Sessions))
	}
	return log, nil
}

func (s *SessionService) List(ctx context.Context, filter domain.Filter) ([]domain.Session, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("session index is not configured")
	}
	filter.Subject = strings.TrimSpace(filter.Subject)
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", apperrors.ErrInvalidInput,
			filter.To.Format(domain.DateLayout), filter.From.Format(domain.DateLayout))
	}
	return s.projector.Query(ctx, filter)
}

func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	if s.projector != nil {
		if err := s.projector.Reset(ctx); err != nil {
			s.log.Warn("session index reset failed", "err", err)
		}
	}
	return nil
}

// Reindex rebuilds the index from the log and reports how many sessions it holds.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("session index is not configured")
	}
	log, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range log.Sessions {
		if err := s.projector.Insert(ctx, session); err != nil {
			return 0, err
		}
	}
	return len(log.Sessions), nil
}

// append writes to the log first; the index is best effort and can be
// rebuilt with Reindex.
func (s *SessionService) append(ctx context.Context, session domain.Session) error {
	if err := s.store.Append(ctx, session); err != nil {
		return err
	}
	s.log.Debug("session appended",
		"date", session.Date.Format(domain.DateLayout),
		"subject", session.Subject,
		"hours", session.Hours)
	if s.projector == nil || session.Hours < 0 {
		return nil
	}
	if err := s.projector.Insert(ctx, session); err != nil {
		s.log.Warn("session index update failed", "err", err)
	}
	return nil
}
