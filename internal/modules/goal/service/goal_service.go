package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"focusflow/internal/modules/goal/domain"
	goalout "focusflow/internal/modules/goal/port/out"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
)

type GoalService struct {
	clock   clock.Clock
	store   goalout.GoalStore
	actuals goalout.ActualHours
	log     *slog.Logger
}

func NewGoalService(clock clock.Clock, store goalout.GoalStore, actuals goalout.ActualHours, log *slog.Logger) *GoalService {
	if log == nil {
		log = slog.Default()
	}
	return &GoalService{clock: clock, store: store, actuals: actuals, log: log}
}

// LoadGoals returns the stored goals. When none are stored the defaults are
// written first.
func (s *GoalService) LoadGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(goals) > 0 {
		return goals, nil
	}
	goals = domain.DefaultGoals()
	if err := s.store.Save(ctx, goals); err != nil {
		return nil, err
	}
	s.log.Info("goal file initialised with defaults", "goals", len(goals))
	return goals, nil
}

func (s *GoalService) SaveGoals(ctx context.Context, goals []domain.Goal) error {
	cleaned := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		cleaned = append(cleaned, domain.Goal{Subject: strings.TrimSpace(g.Subject), TargetHours: g.TargetHours})
	}
	if err := domain.Validate(cleaned); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.store.Save(ctx, cleaned)
}

func (s *GoalService) SetGoal(ctx context.Context, goal domain.Goal) ([]domain.Goal, error) {
	goals, err := s.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	goal.Subject = strings.TrimSpace(goal.Subject)
	goals = domain.Upsert(goals, goal)
	if err := s.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *GoalService) RemoveGoal(ctx context.Context, subject string) ([]domain.Goal, error) {
	goals, err := s.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	goals, found := domain.Remove(goals, strings.TrimSpace(subject))
	if !found {
		return nil, fmt.Errorf("%w: no goal for %q", apperrors.ErrNotFound, subject)
	}
	if err := s.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// ResetToDefault overwrites every stored goal with the defaults.
func (s *GoalService) ResetToDefault(ctx context.Context) ([]domain.Goal, error) {
	goals := domain.DefaultGoals()
	if err := s.store.Save(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *GoalService) Progress(ctx context.Context, today time.Time, window string) ([]domain.Progress, error) {
	goals, err := s.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	if today.IsZero() {
		today = s.clock.Now()
	}
	actuals, err := s.actuals.BySubject(ctx, today, window)
	if err != nil {
		return nil, err
	}
	return domain.ComputeProgress(goals, actuals), nil
}
