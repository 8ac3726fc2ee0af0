package dto

import "time"

type RecordInput struct {
	At      time.Time
	Kind    string
	Name    string
	Minutes int
	Amount  float64
}

type EntryOutput struct {
	At      time.Time
	Kind    string
	Name    string
	Minutes int
	Amount  float64
}

type PointOutput struct {
	At      time.Time
	Balance float64
}

type NameTotalOutput struct {
	Name string
	XP   float64
}

type DayTotalsOutput struct {
	Date   time.Time
	Earned float64
	Spent  float64
}
