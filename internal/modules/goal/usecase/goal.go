package usecase

import (
	"context"

	"focusflow/internal/modules/goal/domain"
	"focusflow/internal/modules/goal/dto"
	goalin "focusflow/internal/modules/goal/port/in"
	"focusflow/internal/modules/goal/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadGoals(ctx context.Context) ([]dto.Goal, error) {
	goals, err := i.svc.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(goals), nil
}

func (i *Interactor) SaveGoals(ctx context.Context, goals []dto.Goal) error {
	return i.svc.SaveGoals(ctx, fromDTO(goals))
}

func (i *Interactor) SetGoal(ctx context.Context, goal dto.Goal) ([]dto.Goal, error) {
	goals, err := i.svc.SetGoal(ctx, domain.Goal{Subject: goal.Subject, TargetHours: goal.TargetHours})
	if err != nil {
		return nil, err
	}
	return toDTO(goals), nil
}

func (i *Interactor) RemoveGoal(ctx context.Context, subject string) ([]dto.Goal, error) {
	goals, err := i.svc.RemoveGoal(ctx, subject)
	if err != nil {
		return nil, err
	}
	return toDTO(goals), nil
}

func (i *Interactor) ResetToDefault(ctx context.Context) ([]dto.Goal, error) {
	goals, err := i.svc.ResetToDefault(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(goals), nil
}

func (i *Interactor) Progress(ctx context.Context, input dto.ProgressInput) ([]dto.ProgressOutput, error) {
	progress, err := i.svc.Progress(ctx, input.Today, input.Window)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProgressOutput, 0, len(progress))
	for _, p := range progress {
		out = append(out, dto.ProgressOutput{Subject: p.Subject, Target: p.Target, Actual: p.Actual, Percent: p.Percent})
	}
	return out, nil
}

func toDTO(goals []domain.Goal) []dto.Goal {
	out := make([]dto.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, dto.Goal{Subject: g.Subject, TargetHours: g.TargetHours})
	}
	return out
}

func fromDTO(goals []dto.Goal) []domain.Goal {
	out := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.Goal{Subject: g.Subject, TargetHours: g.TargetHours})
	}
	return out
}
