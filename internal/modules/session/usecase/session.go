package usecase

import (
	"context"
	"fmt"
	"strings"

	"focusflow/internal/modules/session/domain"
	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
	"focusflow/internal/modules/session/service"
	"focusflow/internal/platform/dates"
	apperrors "focusflow/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.ActiveSession, error) {
	planned, err := optionalTime("planned end time", input.PlannedEndTime)
	if err != nil {
		return sessiondto.ActiveSession{}, err
	}
	active, err := i.svc.Start(ctx, strings.TrimSpace(input.Subject), strings.TrimSpace(input.Topic), planned, input.StartMood)
	if err != nil {
		return sessiondto.ActiveSession{}, err
	}
	return sessiondto.ActiveSession{
		ID:             active.ID,
		Subject:        active.Subject,
		Topic:          active.Topic,
		StartedAt:      active.StartedAt,
		PlannedEndTime: toTimeDTO(active.PlannedEndTime),
		StartMood:      active.StartMood,
	}, nil
}

func (i *Interactor) Stop(ctx context.Context, input sessiondto.StopInput) (sessiondto.SessionOutput, error) {
	active := domain.ActiveSession{
		ID:             input.Active.ID,
		Subject:        input.Active.Subject,
		Topic:          input.Active.Topic,
		StartedAt:      input.Active.StartedAt,
		PlannedEndTime: fromTimeDTO(input.Active.PlannedEndTime),
		StartMood:      input.Active.StartMood,
	}
	session, err := i.svc.Stop(ctx, active, input.EndMood, input.Productivity, input.Notes)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Log(ctx context.Context, input sessiondto.LogInput) (sessiondto.SessionOutput, error) {
	if input.Date.IsZero() {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	start, err := optionalTime("start time", input.StartTime)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	end, err := optionalTime("end time", input.EndTime)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	planned, err := optionalTime("planned end time", input.PlannedEndTime)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	session, err := i.svc.Log(ctx, domain.Session{
		Date:           dates.Day(input.Date),
		Subject:        strings.TrimSpace(input.Subject),
		Topic:          strings.TrimSpace(input.Topic),
		StartTime:      start,
		EndTime:        end,
		PlannedEndTime: planned,
		Hours:          input.Hours,
		Productivity:   input.Productivity,
		StartMood:      input.StartMood,
		EndMood:        input.EndMood,
		Notes:          input.Notes,
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) LoadAll(ctx context.Context) (sessiondto.LoadOutput, error) {
	log, err := i.svc.LoadAll(ctx)
	if err != nil {
		return sessiondto.LoadOutput{}, err
	}
	return sessiondto.LoadOutput{
		Sessions:  toOutputs(log.Sessions),
		Defaulted: log.Defaulted,
		Skipped:   log.Skipped,
	}, nil
}

func (i *Interactor) List(ctx context.Context, input sessiondto.ListInput) ([]sessiondto.SessionOutput, error) {
	if input.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrInvalidInput)
	}
	filter := domain.Filter{Subject: input.Subject, Limit: input.Limit}
	if !input.From.IsZero() {
		filter.From = dates.Day(input.From)
	}
	if !input.To.IsZero() {
		filter.To = dates.Day(input.To)
	}
	sessions, err := i.svc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toOutputs(sessions), nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	return sessiondto.ReindexOutput{Indexed: n}, nil
}

func optionalTime(field, raw string) (*domain.TimeOfDay, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, field, err)
	}
	return &t, nil
}

func toOutputs(sessions []domain.Session) []sessiondto.SessionOutput {
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		Date:           s.Date,
		Subject:        s.Subject,
		Topic:          s.Topic,
		StartTime:      toTimeDTO(s.StartTime),
		EndTime:        toTimeDTO(s.EndTime),
		PlannedEndTime: toTimeDTO(s.PlannedEndTime),
		Hours:          s.Hours,
		Productivity:   s.Productivity,
		StartMood:      s.StartMood,
		EndMood:        s.EndMood,
		Notes:          s.Notes,
		Timestamp:      s.Timestamp,
	}
}

func toTimeDTO(t *domain.TimeOfDay) *sessiondto.TimeOfDay {
	if t == nil {
		return nil
	}
	return &sessiondto.TimeOfDay{Hour: t.Hour, Minute: t.Minute, Second: t.Second}
}

func fromTimeDTO(t *sessiondto.TimeOfDay) *domain.TimeOfDay {
	if t == nil {
		return nil
	}
	return &domain.TimeOfDay{Hour: t.Hour, Minute: t.Minute, Second: t.Second}
}
