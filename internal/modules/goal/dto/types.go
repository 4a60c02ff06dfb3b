package dto

import "time"

type Goal struct {
	Subject     string
	TargetHours float64
}

type ProgressInput struct {
	Today  time.Time
	Window string
}

type ProgressOutput struct {
	Subject string
	Target  float64
	Actual  float64
	Percent float64
}
