package in

import (
	"context"
	"time"

	"focusflow/internal/modules/analytics/dto"
	analyticsin "focusflow/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context, today time.Time) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, dto.DashboardInput{Today: today})
}

func (h CLIHandler) SubjectTotals(ctx context.Context, today time.Time, window string) ([]dto.SubjectTotal, error) {
	return h.usecase.SubjectTotals(ctx, dto.TotalsInput{Today: today, Window: window})
}

func (h CLIHandler) ExportReport(ctx context.Context, today time.Time) (dto.ReportOutput, error) {
	return h.usecase.ExportReport(ctx, dto.ReportInput{Today: today})
}
