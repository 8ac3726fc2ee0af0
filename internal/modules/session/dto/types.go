package dto

import "time"

type StartInput struct {
	Kind          string
	Name          string
	TargetMinutes int
}

type StartOutput struct {
	SessionID     string
	Kind          string
	Name          string
	TargetMinutes int
	Amount        float64
	Partial       bool
	Charged       bool
	StartedAt     time.Time
}

type TickOutput struct {
	SessionID        string
	Kind             string
	Name             string
	TargetMinutes    int
	Amount           float64
	RemainingSeconds int
	Fraction         float64
	Completed        bool
}

type ActiveOutput struct {
	SessionID     string
	Kind          string
	Name          string
	TargetMinutes int
	Amount        float64
	StartedAt     time.Time
}
