package domain_test

import (
	"math"
	"testing"
	"time"

	"questlog/internal/modules/ledger/domain"
)

func entryAt(t time.Time, kind domain.Kind, name string, minutes int, amount float64) domain.Entry {
	return domain.Entry{At: t, Kind: kind, Name: name, Minutes: minutes, Amount: amount}
}

func sampleEntries() []domain.Entry {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	return []domain.Entry{
		entryAt(base, domain.KindEarn, "Read", 10, 5),
		entryAt(base.Add(2*time.Hour), domain.KindEarn, "Exercise", 30, 15),
		entryAt(base.Add(3*time.Hour), domain.KindSpend, "Game", 30, 10),
		entryAt(base.Add(26*time.Hour), domain.KindEarn, "Read", 20, 12),
		entryAt(base.Add(27*time.Hour), domain.KindSpend, "Game", 15, 5),
	}
}

func TestBalanceIsSignedSum(t *testing.T) {
	t.Parallel()
	entries := sampleEntries()
	if got := domain.Balance(entries); got != 17 {
		t.Fatalf("expected balance 17, got %.2f", got)
	}
	if got := domain.Balance(nil); got != 0 {
		t.Fatalf("empty ledger balance must be 0, got %.2f", got)
	}
}

func TestCumulativeSeriesRunsSignedSum(t *testing.T) {
	t.Parallel()
	points := domain.CumulativeSeries(sampleEntries())
	want := []float64{5, 20, 10, 22, 17}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, balance := range want {
		if math.Abs(points[i].Balance-balance) > 1e-9 {
			t.Fatalf("point %d: expected %.2f, got %.2f", i, balance, points[i].Balance)
		}
	}
	for i := 1; i < len(points); i++ {
		if points[i].At.Before(points[i-1].At) {
			t.Fatalf("series must stay in timestamp order")
		}
	}
}

func TestTotalsByNameSortsLargestFirst(t *testing.T) {
	t.Parallel()
	totals := domain.TotalsByName(sampleEntries(), domain.KindEarn)
	if len(totals) != 2 {
		t.Fatalf("expected 2 earning names, got %d", len(totals))
	}
	if totals[0].Name != "Read" || totals[0].XP != 17 {
		t.Fatalf("expected Read 17 first, got %+v", totals[0])
	}
	if totals[1].Name != "Exercise" || totals[1].XP != 15 {
		t.Fatalf("expected Exercise 15 second, got %+v", totals[1])
	}

	spend := domain.TotalsByName(sampleEntries(), domain.KindSpend)
	if len(spend) != 1 || spend[0].XP != 15 {
		t.Fatalf("expected Game 15 spend total, got %+v", spend)
	}
}

func TestTotalsByDateSplitsLocalDays(t *testing.T) {
	t.Parallel()
	days := domain.TotalsByDate(sampleEntries())
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	first, second := days[0], days[1]
	if !first.Date.Before(second.Date) {
		t.Fatalf("days must be ascending")
	}
	if first.Earned != 20 || first.Spent != 10 {
		t.Fatalf("day 1: expected earned 20 spent 10, got %+v", first)
	}
	if second.Earned != 12 || second.Spent != 5 {
		t.Fatalf("day 2: expected earned 12 spent 5, got %+v", second)
	}
	if h, m, s := first.Date.Clock(); h+m+s != 0 {
		t.Fatalf("date key must be midnight, got %v", first.Date)
	}
}

func TestRecentIsMostRecentFirst(t *testing.T) {
	t.Parallel()
	entries := sampleEntries()
	recent := domain.Recent(entries, 3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	if recent[0].Name != "Game" || recent[0].Minutes != 15 {
		t.Fatalf("expected latest spend first, got %+v", recent[0])
	}
	if recent[2].Name != "Game" || recent[2].Minutes != 30 {
		t.Fatalf("unexpected third entry %+v", recent[2])
	}
	if got := domain.Recent(entries, 50); len(got) != len(entries) {
		t.Fatalf("oversized n must clamp to ledger size")
	}
	if got := domain.Recent(entries, 0); got != nil {
		t.Fatalf("n=0 must return nothing")
	}
}
