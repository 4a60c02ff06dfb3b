package out

import (
	"context"

	"focusflow/internal/modules/analytics/domain"
)

// History is what the aggregations read: the usable sessions plus the number
// of rows that needed lenient handling.
type History struct {
	Sessions []domain.Session
	Warnings int
}

type SessionSource interface {
	Load(ctx context.Context) (History, error)
}

type ReportWriter interface {
	Write(ctx context.Context, report domain.Report) (string, error)
}
