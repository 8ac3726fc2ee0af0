package domain

import (
	"sort"
	"time"
)

// Aggregations are pure functions of the entry sequence. Nothing here
// caches across calls, so results can never drift from the ledger.

// Balance is the signed running total over all entries.
func Balance(entries []Entry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += entry.Signed()
	}
	return total
}

// Point is one step of the cumulative balance series.
type Point struct {
	At      time.Time
	Balance float64
}

// CumulativeSeries yields the running balance after each entry, in
// timestamp order.
func CumulativeSeries(entries []Entry) []Point {
	points := make([]Point, 0, len(entries))
	total := 0.0
	for _, entry := range entries {
		total += entry.Signed()
		points = append(points, Point{At: entry.At, Balance: total})
	}
	return points
}

// NameTotal is a per-name amount sum for breakdown reporting.
type NameTotal struct {
	Name string
	XP   float64
}

// TotalsByName sums amounts of the given kind per subject name,
// largest first. Names with equal totals sort alphabetically so the
// breakdown is deterministic.
func TotalsByName(entries []Entry, kind Kind) []NameTotal {
	sums := map[string]float64{}
	for _, entry := range entries {
		if entry.Kind == kind {
			sums[entry.Name] += entry.Amount
		}
	}
	out := make([]NameTotal, 0, len(sums))
	for name, xp := range sums {
		out = append(out, NameTotal{Name: name, XP: xp})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].XP != out[j].XP {
			return out[i].XP > out[j].XP
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DayTotals is the earned/spent split for one local calendar day.
// Date is midnight in the entry's location.
type DayTotals struct {
	Date   time.Time
	Earned float64
	Spent  float64
}

// TotalsByDate groups entries by local calendar day, ascending.
func TotalsByDate(entries []Entry) []DayTotals {
	sums := map[time.Time]DayTotals{}
	for _, entry := range entries {
		year, month, day := entry.At.Date()
		date := time.Date(year, month, day, 0, 0, 0, 0, entry.At.Location())
		totals := sums[date]
		totals.Date = date
		switch entry.Kind {
		case KindEarn:
			totals.Earned += entry.Amount
		case KindSpend:
			totals.Spent += entry.Amount
		}
		sums[date] = totals
	}
	out := make([]DayTotals, 0, len(sums))
	for _, totals := range sums {
		out = append(out, totals)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Recent returns up to n entries, most recent first.
func Recent(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}
