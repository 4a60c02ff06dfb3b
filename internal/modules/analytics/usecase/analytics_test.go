package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/modules/analytics/domain"
	"focusflow/internal/modules/analytics/dto"
	analyticsout "focusflow/internal/modules/analytics/port/out"
	"focusflow/internal/modules/analytics/service"
	"focusflow/internal/modules/analytics/usecase"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/logging"
)

type fakeSource struct {
	sessions []domain.Session
}

func (f fakeSource) Load(context.Context) (analyticsout.History, error) {
	return analyticsout.History{Sessions: f.sessions}, nil
}

func TestDashboardOutput(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	start := 6 * time.Hour
	uc := usecase.NewInteractor(service.NewAnalyticsService(clock.Fixed(today), fakeSource{sessions: []domain.Session{
		{Date: today, Subject: "DSA", Hours: 1, Productivity: 9, StartMood: "Calm", Start: &start},
	}}, nil, logging.Discard()))

	out, err := uc.Dashboard(context.Background(), dto.DashboardInput{Today: today})
	require.NoError(t, err)
	require.NotNil(t, out.PeakHour)
	assert.Equal(t, 6, *out.PeakHour)
	assert.Empty(t, out.BestMood)
	assert.Equal(t, 1, out.Streak)
	require.Len(t, out.ByMood, 1)
}

func TestDashboardOutputEmpty(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewAnalyticsService(clock.Fixed(time.Now()), fakeSource{}, nil, logging.Discard()))

	out, err := uc.Dashboard(context.Background(), dto.DashboardInput{})
	require.NoError(t, err)
	assert.Nil(t, out.PeakHour)
	assert.Equal(t, "N/A", out.BestSubject)
	assert.NotNil(t, out.Daily)
}

func TestSubjectTotalsRejectsUnknownWindow(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewAnalyticsService(clock.Fixed(time.Now()), fakeSource{}, nil, logging.Discard()))
	_, err := uc.SubjectTotals(context.Background(), dto.TotalsInput{Window: "fortnight"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
