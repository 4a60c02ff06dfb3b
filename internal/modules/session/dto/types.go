package dto

import "time"

type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

type StartInput struct {
	Subject        string
	Topic          string
	PlannedEndTime string
	StartMood      string
}

// ActiveSession is returned by Start and must be handed back to Stop.
type ActiveSession struct {
	ID             string
	Subject        string
	Topic          string
	StartedAt      time.Time
	PlannedEndTime *TimeOfDay
	StartMood      string
}

type StopInput struct {
	Active       ActiveSession
	EndMood      string
	Productivity int
	Notes        string
}

type LogInput struct {
	Date           time.Time
	Subject        string
	Topic          string
	StartTime      string
	EndTime        string
	PlannedEndTime string
	Hours          float64
	Productivity   int
	StartMood      string
	EndMood        string
	Notes          string
}

type ListInput struct {
	Subject string
	From    time.Time
	To      time.Time
	Limit   int
}

type SessionOutput struct {
	Date           time.Time
	Subject        string
	Topic          string
	StartTime      *TimeOfDay
	EndTime        *TimeOfDay
	PlannedEndTime *TimeOfDay
	Hours          float64
	Productivity   int
	StartMood      string
	EndMood        string
	Notes          string
	Timestamp      time.Time
}

type LoadOutput struct {
	Sessions  []SessionOutput
	Defaulted int
	Skipped   int
}

type ReindexOutput struct {
	Indexed int
}
