package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"focusflow/internal/modules/analytics/domain"
	analyticsout "focusflow/internal/modules/analytics/port/out"
	"focusflow/internal/platform/clock"
)

type AnalyticsService struct {
	clock  clock.Clock
	source analyticsout.SessionSource
	writer analyticsout.ReportWriter
	log    *slog.Logger
}

func NewAnalyticsService(clock clock.Clock, source analyticsout.SessionSource, writer analyticsout.ReportWriter, log *slog.Logger) *AnalyticsService {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsService{clock: clock, source: source, writer: writer, log: log}
}

// Dashboard aggregates the whole history as of today. A zero today means the
// current date.
func (s *AnalyticsService) Dashboard(ctx context.Context, today time.Time) (domain.Dashboard, int, error) {
	history, err := s.source.Load(ctx)
	if err != nil {
		return domain.Dashboard{}, 0, err
	}
	return domain.BuildDashboard(history.Sessions, s.today(today)), history.Warnings, nil
}

func (s *AnalyticsService) SubjectTotals(ctx context.Context, today time.Time, window domain.Window) ([]domain.SubjectTotal, error) {
	history, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SubjectTotals(window.Apply(history.Sessions, s.today(today))), nil
}

// ExportReport writes the weekly report and returns it with its path. An
// empty history still produces a report.
func (s *AnalyticsService) ExportReport(ctx context.Context, today time.Time) (domain.Report, string, error) {
	if s.writer == nil {
		return domain.Report{}, "", fmt.Errorf("report writer is not configured")
	}
	history, err := s.source.Load(ctx)
	if err != nil {
		return domain.Report{}, "", err
	}
	report := domain.BuildReport(history.Sessions, s.today(today), s.clock.Now())
	path, err := s.writer.Write(ctx, report)
	if err != nil {
		return domain.Report{}, "", err
	}
	s.log.Info("weekly report written", "path", path, "week_hours", report.Week.TotalHours)
	return report, path, nil
}

func (s *AnalyticsService) today(today time.Time) time.Time {
	if today.IsZero() {
		return s.clock.Now()
	}
	return today
}
