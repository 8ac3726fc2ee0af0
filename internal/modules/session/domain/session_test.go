package domain_test

import (
	"testing"
	"time"

	"questlog/internal/modules/session/domain"
)

func TestProgressAtTracksWallClock(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	session := domain.ActiveSession{
		SessionID:     "s1",
		Kind:          domain.KindEarn,
		Name:          "Read",
		TargetMinutes: 30,
		Amount:        12,
		StartedAt:     start,
	}

	cases := []struct {
		name      string
		at        time.Time
		remaining int
		fraction  float64
		completed bool
	}{
		{name: "at start", at: start, remaining: 1800, fraction: 0, completed: false},
		{name: "halfway", at: start.Add(15 * time.Minute), remaining: 900, fraction: 0.5, completed: false},
		{name: "exact end", at: start.Add(30 * time.Minute), remaining: 0, fraction: 1, completed: true},
		{name: "past end", at: start.Add(45 * time.Minute), remaining: 0, fraction: 1, completed: true},
		{name: "clock behind start", at: start.Add(-time.Minute), remaining: 1800, fraction: 0, completed: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			progress := session.ProgressAt(tc.at)
			if progress.Completed != tc.completed {
				t.Fatalf("completed = %v, want %v", progress.Completed, tc.completed)
			}
			if progress.Fraction != tc.fraction {
				t.Fatalf("fraction = %v, want %v", progress.Fraction, tc.fraction)
			}
			if progress.RemainingSeconds != tc.remaining {
				t.Fatalf("remaining = %d, want %d", progress.RemainingSeconds, tc.remaining)
			}
		})
	}
}

func TestActiveSessionValidate(t *testing.T) {
	t.Parallel()
	valid := domain.ActiveSession{
		SessionID:     "s1",
		Kind:          domain.KindSpend,
		Name:          "Movie",
		TargetMinutes: 90,
		Amount:        45,
		StartedAt:     time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}

	broken := []func(s *domain.ActiveSession){
		func(s *domain.ActiveSession) { s.Kind = "gamble" },
		func(s *domain.ActiveSession) { s.SessionID = " " },
		func(s *domain.ActiveSession) { s.Name = "" },
		func(s *domain.ActiveSession) { s.TargetMinutes = 0 },
		func(s *domain.ActiveSession) { s.Amount = -1 },
		func(s *domain.ActiveSession) { s.StartedAt = time.Time{} },
	}
	for i, mutate := range broken {
		session := valid
		mutate(&session)
		if err := session.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
