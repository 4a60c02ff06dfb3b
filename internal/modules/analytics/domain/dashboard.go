package domain

import (
	"fmt"
	"strings"
	"time"
)

// Window selects which sessions count towards a total.
type Window string

const (
	WindowAll  Window = "all"
	WindowWeek Window = "week"
)

func ParseWindow(raw string) (Window, error) {
	switch Window(strings.ToLower(strings.TrimSpace(raw))) {
	case "", WindowAll:
		return WindowAll, nil
	case WindowWeek:
		return WindowWeek, nil
	default:
		return "", fmt.Errorf("unknown window %q", raw)
	}
}

// Apply narrows sessions to the window ending today.
func (w Window) Apply(sessions []Session, today time.Time) []Session {
	if w == WindowWeek {
		return Within(sessions, today, RollingWindowDays)
	}
	return sessions
}

// Dashboard is every aggregate of a history as of one day.
type Dashboard struct {
	Today          time.Time
	Sessions       int
	TotalHours     float64
	WeekHours      float64
	Streak         int
	BestSubject    string
	PeakHour       int
	HasPeakHour    bool
	Recommendation Recommendation
	HasRecommend   bool
	Daily          []DayTotal
	Cumulative     []DayTotal
	Hourly         [24]int
	Subjects       []SubjectTotal
	WeekSubjects   []SubjectTotal
	ByHour         []HourProductivity
	ByMood         []MoodProductivity
}

func BuildDashboard(sessions []Session, today time.Time) Dashboard {
	week := Within(sessions, today, RollingWindowDays)
	d := Dashboard{
		Today:        day(today),
		Sessions:     len(sessions),
		TotalHours:   TotalHours(sessions),
		WeekHours:    TotalHours(week),
		Streak:       Streak(sessions, today),
		BestSubject:  BestSubject(sessions),
		Daily:        DailyTotals(sessions),
		Cumulative:   CumulativeTotals(sessions),
		Hourly:       HourlyDistribution(sessions),
		Subjects:     SubjectTotals(sessions),
		WeekSubjects: SubjectTotals(week),
		ByHour:       ProductivityByHour(sessions),
		ByMood:       ProductivityByMood(sessions),
	}
	d.PeakHour, d.HasPeakHour = PeakHour(d.ByHour)
	d.Recommendation, d.HasRecommend = Recommend(d.ByMood)
	return d
}

// Report is a weekly summary ready to be rendered.
type Report struct {
	Generated time.Time
	From      time.Time
	To        time.Time
	Week      Dashboard
	Overall   Dashboard
}

func BuildReport(sessions []Session, today, generated time.Time) Report {
	to := day(today)
	week := Within(sessions, today, RollingWindowDays)
	return Report{
		Generated: generated,
		From:      to.AddDate(0, 0, -(RollingWindowDays - 1)),
		To:        to,
		Week:      BuildDashboard(week, today),
		Overall:   BuildDashboard(sessions, today),
	}
}
