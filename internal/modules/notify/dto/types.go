package dto

import "time"

type NotifierOutput struct {
	Name    string
	Binary  string
	Enabled bool
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	Error           string
}

type AnnounceInput struct {
	Kind        string
	Name        string
	Minutes     int
	Amount      float64
	CompletedAt time.Time
}
