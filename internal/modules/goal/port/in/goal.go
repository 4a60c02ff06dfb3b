package in

import (
	"context"

	"focusflow/internal/modules/goal/dto"
)

type Usecase interface {
	LoadGoals(ctx context.Context) ([]dto.Goal, error)
	SaveGoals(ctx context.Context, goals []dto.Goal) error
	SetGoal(ctx context.Context, goal dto.Goal) ([]dto.Goal, error)
	RemoveGoal(ctx context.Context, subject string) ([]dto.Goal, error)
	ResetToDefault(ctx context.Context) ([]dto.Goal, error)
	Progress(ctx context.Context, input dto.ProgressInput) ([]dto.ProgressOutput, error)
}
