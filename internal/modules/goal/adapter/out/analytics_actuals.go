package out

import (
	"context"
	"time"

	analyticsdto "focusflow/internal/modules/analytics/dto"
	analyticsin "focusflow/internal/modules/analytics/port/in"
	goalout "focusflow/internal/modules/goal/port/out"
)

// AnalyticsActuals reads per-subject totals from the analytics module.
type AnalyticsActuals struct {
	analytics analyticsin.Usecase
}

func NewAnalyticsActuals(analytics analyticsin.Usecase) goalout.ActualHours {
	return &AnalyticsActuals{analytics: analytics}
}

func (a *AnalyticsActuals) BySubject(ctx context.Context, today time.Time, window string) (map[string]float64, error) {
	totals, err := a.analytics.SubjectTotals(ctx, analyticsdto.TotalsInput{Today: today, Window: window})
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(totals))
	for _, t := range totals {
		out[t.Subject] = t.Hours
	}
	return out, nil
}
