package out

import (
	"context"
	"time"

	"focusflow/internal/modules/goal/domain"
)

type GoalStore interface {
	// Load returns nil when no goals are stored.
	Load(ctx context.Context) ([]domain.Goal, error)
	Save(ctx context.Context, goals []domain.Goal) error
}

// ActualHours reports logged hours per subject for a window ending today.
type ActualHours interface {
	BySubject(ctx context.Context, today time.Time, window string) (map[string]float64, error)
}
