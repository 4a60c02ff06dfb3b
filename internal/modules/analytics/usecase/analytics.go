package usecase

import (
	"context"
	"fmt"

	"focusflow/internal/modules/analytics/domain"
	"focusflow/internal/modules/analytics/dto"
	analyticsin "focusflow/internal/modules/analytics/port/in"
	"focusflow/internal/modules/analytics/service"
	apperrors "focusflow/internal/platform/errors"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error) {
	d, warnings, err := i.svc.Dashboard(ctx, input.Today)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	out := dto.DashboardOutput{
		Today:        d.Today,
		Sessions:     d.Sessions,
		TotalHours:   d.TotalHours,
		WeekHours:    d.WeekHours,
		Streak:       d.Streak,
		BestSubject:  d.BestSubject,
		Daily:        toDayTotals(d.Daily),
		Cumulative:   toDayTotals(d.Cumulative),
		Hourly:       d.Hourly,
		Subjects:     toSubjectTotals(d.Subjects),
		WeekSubjects: toSubjectTotals(d.WeekSubjects),
		ByHour:       make([]dto.HourProductivity, 0, len(d.ByHour)),
		ByMood:       make([]dto.MoodProductivity, 0, len(d.ByMood)),
		Warnings:     warnings,
	}
	if d.HasPeakHour {
		peak := d.PeakHour
		out.PeakHour = &peak
	}
	if d.HasRecommend {
		out.BestMood = d.Recommendation.Best
		out.WorstMood = d.Recommendation.Worst
	}
	for _, h := range d.ByHour {
		out.ByHour = append(out.ByHour, dto.HourProductivity{Hour: h.Hour, Mean: h.Mean, Sessions: h.Sessions})
	}
	for _, m := range d.ByMood {
		out.ByMood = append(out.ByMood, dto.MoodProductivity{Mood: m.Mood, Mean: m.Mean, Sessions: m.Sessions})
	}
	return out, nil
}

func (i *Interactor) SubjectTotals(ctx context.Context, input dto.TotalsInput) ([]dto.SubjectTotal, error) {
	window, err := domain.ParseWindow(input.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	totals, err := i.svc.SubjectTotals(ctx, input.Today, window)
	if err != nil {
		return nil, err
	}
	return toSubjectTotals(totals), nil
}

func (i *Interactor) ExportReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	report, path, err := i.svc.ExportReport(ctx, input.Today)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return dto.ReportOutput{Path: path, From: report.From, To: report.To, WeekHours: report.Week.TotalHours}, nil
}

func toDayTotals(in []domain.DayTotal) []dto.DayTotal {
	out := make([]dto.DayTotal, 0, len(in))
	for _, d := range in {
		out = append(out, dto.DayTotal{Date: d.Date, Hours: d.Hours})
	}
	return out
}

func toSubjectTotals(in []domain.SubjectTotal) []dto.SubjectTotal {
	out := make([]dto.SubjectTotal, 0, len(in))
	for _, s := range in {
		out = append(out, dto.SubjectTotal{Subject: s.Subject, Hours: s.Hours, Share: s.Share})
	}
	return out
}
