package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/modules/analytics/domain"
	analyticsout "focusflow/internal/modules/analytics/port/out"
	"focusflow/internal/modules/analytics/service"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/logging"
)

type fakeSource struct {
	history analyticsout.History
	err     error
}

func (f fakeSource) Load(context.Context) (analyticsout.History, error) {
	return f.history, f.err
}

type recordingWriter struct {
	reports []domain.Report
}

func (w *recordingWriter) Write(_ context.Context, report domain.Report) (string, error) {
	w.reports = append(w.reports, report)
	return "reports/weekly.md", nil
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func history() analyticsout.History {
	return analyticsout.History{
		Sessions: []domain.Session{
			{Date: day(5, 1), Subject: "DSA", Hours: 3},
			{Date: day(5, 19), Subject: "GATE", Hours: 1},
			{Date: day(5, 20), Subject: "DSA", Hours: 2},
		},
		Warnings: 1,
	}
}

func TestDashboardUsesClockWhenTodayIsZero(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 20, 21, 0, 0, 0, time.UTC)
	svc := service.NewAnalyticsService(clock.Fixed(now), fakeSource{history: history()}, nil, logging.Discard())

	d, warnings, err := svc.Dashboard(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 2, d.Streak)
	assert.InDelta(t, 3.0, d.WeekHours, 1e-9)
	assert.Equal(t, "DSA", d.BestSubject)
}

func TestSubjectTotalsWindow(t *testing.T) {
	t.Parallel()
	svc := service.NewAnalyticsService(clock.Fixed(day(5, 20)), fakeSource{history: history()}, nil, logging.Discard())

	all, err := svc.SubjectTotals(context.Background(), day(5, 20), domain.WindowAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.InDelta(t, 5.0, all[0].Hours, 1e-9)

	week, err := svc.SubjectTotals(context.Background(), day(5, 20), domain.WindowWeek)
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.InDelta(t, 2.0, week[0].Hours, 1e-9)
}

func TestExportReport(t *testing.T) {
	t.Parallel()
	writer := &recordingWriter{}
	now := time.Date(2024, 5, 20, 21, 0, 0, 0, time.UTC)
	svc := service.NewAnalyticsService(clock.Fixed(now), fakeSource{history: history()}, writer, logging.Discard())

	report, path, err := svc.ExportReport(context.Background(), day(5, 20))
	require.NoError(t, err)
	assert.Equal(t, "reports/weekly.md", path)
	require.Len(t, writer.reports, 1)
	assert.True(t, report.From.Equal(day(5, 14)))
	assert.True(t, report.Generated.Equal(now))
	assert.InDelta(t, 3.0, report.Week.TotalHours, 1e-9)
}

func TestSourceErrorsPropagate(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk gone")
	svc := service.NewAnalyticsService(clock.Fixed(day(5, 20)), fakeSource{err: boom}, &recordingWriter{}, logging.Discard())

	_, _, err := svc.Dashboard(context.Background(), time.Time{})
	assert.ErrorIs(t, err, boom)
	_, _, err = svc.ExportReport(context.Background(), time.Time{})
	assert.ErrorIs(t, err, boom)
}
