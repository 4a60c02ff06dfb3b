package in

import (
	"context"

	sessiondto "focusflow/internal/modules/session/dto"
	sessionin "focusflow/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, subject, topic, plannedEnd, startMood string) (sessiondto.ActiveSession, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Subject: subject, Topic: topic, PlannedEndTime: plannedEnd, StartMood: startMood})
}

func (h CLIHandler) Stop(ctx context.Context, active sessiondto.ActiveSession, endMood string, productivity int, notes string) (sessiondto.SessionOutput, error) {
	return h.usecase.Stop(ctx, sessiondto.StopInput{Active: active, EndMood: endMood, Productivity: productivity, Notes: notes})
}

func (h CLIHandler) Log(ctx context.Context, input sessiondto.LogInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Log(ctx, input)
}

func (h CLIHandler) LoadAll(ctx context.Context) (sessiondto.LoadOutput, error) {
	return h.usecase.LoadAll(ctx)
}

func (h CLIHandler) List(ctx context.Context, input sessiondto.ListInput) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, input)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
