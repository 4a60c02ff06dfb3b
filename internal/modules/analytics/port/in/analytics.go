package in

import (
	"context"

	"focusflow/internal/modules/analytics/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error)
	SubjectTotals(ctx context.Context, input dto.TotalsInput) ([]dto.SubjectTotal, error)
	ExportReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}
