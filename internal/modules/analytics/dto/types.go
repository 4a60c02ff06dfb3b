package dto

import "time"

type DashboardInput struct {
	Today time.Time
}

type TotalsInput struct {
	Today  time.Time
	Window string
}

type ReportInput struct {
	Today time.Time
}

type DayTotal struct {
	Date  time.Time
	Hours float64
}

type SubjectTotal struct {
	Subject string
	Hours   float64
	Share   float64
}

type HourProductivity struct {
	Hour     int
	Mean     float64
	Sessions int
}

type MoodProductivity struct {
	Mood     string
	Mean     float64
	Sessions int
}

type DashboardOutput struct {
	Today        time.Time
	Sessions     int
	TotalHours   float64
	WeekHours    float64
	Streak       int
	BestSubject  string
	PeakHour     *int
	BestMood     string
	WorstMood    string
	Daily        []DayTotal
	Cumulative   []DayTotal
	Hourly       [24]int
	Subjects     []SubjectTotal
	WeekSubjects []SubjectTotal
	ByHour       []HourProductivity
	ByMood       []MoodProductivity
	// Warnings counts log rows that were defaulted or skipped while loading.
	Warnings int
}

type ReportOutput struct {
	Path      string
	From      time.Time
	To        time.Time
	WeekHours float64
}
