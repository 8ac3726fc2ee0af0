package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind says what a session does to the balance when it completes.
// Earn sessions award XP at completion; Spend sessions are charged up
// front when they start.
type Kind string

const (
	KindEarn  Kind = "earn"
	KindSpend Kind = "spend"
)

func (k Kind) Validate() error {
	switch k {
	case KindEarn, KindSpend:
		return nil
	default:
		return fmt.Errorf("unsupported session kind %q", string(k))
	}
}

// ActiveSession is the single in-flight timed activity. At most one
// exists at any time; starting another while one is active is rejected.
type ActiveSession struct {
	SessionID     string    `json:"session_id"`
	Kind          Kind      `json:"kind"`
	Name          string    `json:"name"`
	TargetMinutes int       `json:"target_minutes"`
	Amount        float64   `json:"amount"`
	StartedAt     time.Time `json:"started_at"`
}

func (s ActiveSession) Validate() error {
	if err := s.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("session name is required")
	}
	if s.TargetMinutes < 1 {
		return fmt.Errorf("target minutes must be at least 1")
	}
	if s.Amount < 0 {
		return fmt.Errorf("session amount must be non-negative")
	}
	if s.StartedAt.IsZero() {
		return fmt.Errorf("session start time is required")
	}
	return nil
}

// Progress is a read-only countdown observation.
type Progress struct {
	RemainingSeconds int
	Fraction         float64
	Completed        bool
}

// ProgressAt derives the countdown from wall-clock deltas, never from a
// counted number of ticks, so callers may poll at any cadence.
func (s ActiveSession) ProgressAt(now time.Time) Progress {
	target := float64(s.TargetMinutes) * 60
	elapsed := now.Sub(s.StartedAt).Seconds()
	remaining := target - elapsed
	if remaining < 0 {
		remaining = 0
	}
	if remaining > target {
		remaining = target
	}
	fraction := 1.0
	if target > 0 {
		fraction = elapsed / target
	}
	if fraction > 1 {
		fraction = 1
	}
	if fraction < 0 {
		fraction = 0
	}
	return Progress{
		RemainingSeconds: int(remaining),
		Fraction:         fraction,
		Completed:        remaining <= 0,
	}
}
