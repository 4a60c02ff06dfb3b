package in

import (
	"context"

	"focusflow/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.ActiveSession, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.SessionOutput, error)
	Log(ctx context.Context, input dto.LogInput) (dto.SessionOutput, error)
	LoadAll(ctx context.Context) (dto.LoadOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error)
	Clear(ctx context.Context) error
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
