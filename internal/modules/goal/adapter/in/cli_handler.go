package in

import (
	"context"
	"time"

	"focusflow/internal/modules/goal/dto"
	goalin "focusflow/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) ([]dto.Goal, error) {
	return h.usecase.LoadGoals(ctx)
}

func (h CLIHandler) Set(ctx context.Context, subject string, target float64) ([]dto.Goal, error) {
	return h.usecase.SetGoal(ctx, dto.Goal{Subject: subject, TargetHours: target})
}

func (h CLIHandler) Remove(ctx context.Context, subject string) ([]dto.Goal, error) {
	return h.usecase.RemoveGoal(ctx, subject)
}

func (h CLIHandler) Reset(ctx context.Context) ([]dto.Goal, error) {
	return h.usecase.ResetToDefault(ctx)
}

func (h CLIHandler) Progress(ctx context.Context, today time.Time, window string) ([]dto.ProgressOutput, error) {
	return h.usecase.Progress(ctx, dto.ProgressInput{Today: today, Window: window})
}
